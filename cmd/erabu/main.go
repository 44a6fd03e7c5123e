// Package main is the Erabu CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/cli"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/docstore"
	"github.com/hyperjump/erabu/internal/extract"
	"github.com/hyperjump/erabu/internal/ingest"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/search"
	"github.com/hyperjump/erabu/internal/server"
	"github.com/hyperjump/erabu/internal/storage"
	"github.com/hyperjump/erabu/internal/watcher"
	"github.com/hyperjump/erabu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/erabu/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so "erabu server" from the project dir uses the project config.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "patterns":
		runPatterns()
	case "summary":
		runSummary()
	case "status":
		runStatus()
	case "seed":
		runSeed()
	case "version", "--version", "-v":
		fmt.Printf("erabu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (ingestion, watcher events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	docs := docstore.New()
	extractor := extract.NewExtractor()

	ingestOpts := []ingest.IngesterOption{}
	if debugMode {
		ingestOpts = append(ingestOpts, ingest.WithLogger(logger))
	}
	ingester := ingest.NewIngester(store, docs, extractor, cfg.Storage.DataDir, ingestOpts...)

	ingestCtx, ingestCancel := context.WithCancel(context.Background())
	defer ingestCancel()
	go func() {
		if err := ingester.Run(ingestCtx); err != nil && ingestCtx.Err() == nil {
			logger.Error("ingestion failed", zap.Error(err))
		}
	}()

	if cfg.Ingest.WatchOrDefault() {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watch := watcher.New(cfg.Storage.DataDir, cfg.Ingest.Extensions, func(path string) {
			if _, err := ingester.IngestFile(context.Background(), path); err != nil {
				logger.Warn("watch ingest failed", zap.String("path", path), zap.Error(err))
			}
		}, watchOpts...)
		if err := watch.Start(ingestCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watch.Stop()
	}

	svcOpts := []search.ServiceOption{}
	if debugMode {
		svcOpts = append(svcOpts, search.WithLogger(logger))
	}
	svc := search.NewService(docs, store, &cfg.Search, svcOpts...)

	srv := server.NewServer(svc, docs, store, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ingestCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	algorithm := fs.String("algorithm", "", "exact-match algorithm: kmp, bm, or ac (default from server config)")
	topN := fs.Int("top", 0, "number of results (default from server config)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: erabu search [flags] <keywords>\n\n")
		fmt.Fprintf(fs.Output(), "Keywords are comma-separated; remaining arguments are joined.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	keywords := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if keywords == "" {
		fs.Usage()
		os.Exit(1)
	}

	format, ok := parseFormat(*outputFormat)
	if !ok {
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	query := &models.SearchQuery{Keywords: keywords, Algorithm: *algorithm, TopN: *topN}
	response, err := postSearch(*serverURL+"/api/v1/search", query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runPatterns() {
	fs := flag.NewFlagSet("patterns", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	algorithm := fs.String("algorithm", "ac", "exact-match algorithm: kmp, bm, or ac")
	topN := fs.Int("top", 0, "number of results (default from server config)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: erabu patterns [flags] <pattern> [pattern...]\n\n")
		fmt.Fprintf(fs.Output(), "Each argument is one pattern; with -algorithm ac all patterns\nare matched in a single pass per CV.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	format, ok := parseFormat(*outputFormat)
	if !ok {
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	query := &models.PatternQuery{Patterns: fs.Args(), Algorithm: *algorithm, TopN: *topN}
	response, err := postSearch(*serverURL+"/api/v1/search/patterns", query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func postSearch(url string, query interface{}) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runSummary() {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: erabu summary [flags] <detail-id>")
		os.Exit(1)
	}

	format, ok := parseFormat(*outputFormat)
	if !ok {
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	resp, err := http.Get(*serverURL + "/api/v1/summary/" + fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var summary models.CVSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		fmt.Fprintf(os.Stderr, "Decode response failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSummary(os.Stdout, &summary, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Ingestion    models.IngestionProgress `json:"ingestion"`
	Documents    int                      `json:"documents"`
	Applications int64                    `json:"applications"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Decode response failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("applications:  %d   # application rows in the database\n", status.Applications)
		fmt.Printf("documents:     %d   # CVs parsed into memory\n", status.Documents)
		fmt.Printf("ingestion:     %d/%d (done: %t)\n",
			status.Ingestion.Processed, status.Ingestion.Total, status.Ingestion.Done)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dataDir := fs.String("data", "", "CV corpus directory (default from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	dir := cfg.Storage.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	created, err := storage.Seed(context.Background(), store, dir, cfg.Ingest.Extensions)
	if err != nil {
		fmt.Printf("Seeding failed after %d application(s): %v\n", created, err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d application(s) from %s\n", created, dir)
}

func parseFormat(s string) (cli.SearchOutputFormat, bool) {
	switch s {
	case "json":
		return cli.OutputJSON, true
	case "text":
		return cli.OutputText, true
	default:
		return cli.OutputText, false
	}
}

func printUsage() {
	fmt.Println(`erabu - CV keyword search server

Usage:
  erabu server [flags]                 Start the HTTP server
  erabu search [flags] <keywords>      Search CVs (comma-separated keywords)
  erabu patterns [flags] <pattern>...  Multi-pattern search
  erabu summary [flags] <detail-id>    Show one applicant's CV summary
  erabu status [flags]                 Show ingestion and storage status
  erabu seed [flags]                   Create applicant rows for CV files
  erabu version                        Show version
  erabu help                           Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/erabu/config.yaml)
  --debug            Enable debug logging (ingestion, watcher events, etc.)

Search Flags:
  --server string     Server URL (default: http://localhost:8080)
  --algorithm string  Exact-match algorithm: kmp, bm, or ac
  --top int           Number of results
  --output string     Output format: text or json (default: text)

Seed Flags:
  --config string    Config file path
  --data string      CV corpus directory (default from config)

Examples:
  erabu server
  erabu search "python, sql, react"
  erabu search --algorithm bm --top 5 golang
  erabu patterns --algorithm ac python sql react
  erabu summary 42
  erabu status --output json
  erabu seed --data ./data`)
}
