package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/docstore"
	"github.com/hyperjump/erabu/internal/fuzzy"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/pattern"
	"github.com/hyperjump/erabu/internal/search"
	"github.com/hyperjump/erabu/internal/storage"
)

// benchText builds a CV-like body around seq so documents differ but share
// vocabulary with the benchmark queries.
func benchText(seq int) string {
	skills := []string{"python", "java", "sql", "react", "golang", "docker", "kubernetes", "terraform"}
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("experienced engineer working with ")
		b.WriteString(skills[(seq+i)%len(skills)])
		b.WriteString(" on production systems ")
	}
	return b.String()
}

func newBenchService(b *testing.B, docCount int) *search.Service {
	b.Helper()
	docs := docstore.New()
	db, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = db.Close() })

	for i := 1; i <= docCount; i++ {
		docs.Insert(&models.Document{
			DetailID:   int64(i),
			Path:       fmt.Sprintf("data/cv_%d.pdf", i),
			SearchText: benchText(i),
		})
	}
	docs.UpdateProgress(docCount, docCount)

	cfg := &config.SearchConfig{
		DefaultAlgorithm: "kmp",
		DefaultTopN:      10,
		MaxTopN:          100,
		FuzzyThreshold:   0.85,
	}
	return search.NewService(docs, db, cfg)
}

func BenchmarkSearch(b *testing.B) {
	for _, algorithm := range []string{"kmp", "bm", "ac"} {
		b.Run(algorithm, func(b *testing.B) {
			svc := newBenchService(b, 500)
			ctx := context.Background()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := svc.Search(ctx, &models.SearchQuery{
					Keywords:  "python, sql, docker",
					Algorithm: algorithm,
				})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSearchPatterns_AC(b *testing.B) {
	svc := newBenchService(b, 500)
	ctx := context.Background()
	query := &models.PatternQuery{
		Patterns:  []string{"python", "java", "sql", "react", "golang"},
		Algorithm: "ac",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.SearchPatterns(ctx, query); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFuzzyFindBestMatch(b *testing.B) {
	text := benchText(3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fuzzy.FindBestMatch("pythn", text, 0.85)
	}
}

func BenchmarkCountOccurrences(b *testing.B) {
	text := benchText(1)
	for _, algorithm := range []string{"kmp", "bm"} {
		b.Run(algorithm, func(b *testing.B) {
			m, err := pattern.New(algorithm)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.CountOccurrences(text, "kubernetes")
			}
		})
	}
}
