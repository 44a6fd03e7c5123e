// Package cli provides CLI output utilities for Erabu.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results for %q (%s) — scanned %d CVs exact, %d fuzzy, in %dms + %dms\n\n",
		len(response.Results), response.Query, response.Algorithm,
		response.DocsScanned, response.FuzzyScanned,
		response.ExactTimeMs, response.FuzzyTimeMs)
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
}

func writeOneResult(w io.Writer, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "[%s] Rank: %d | Score: %.0f\n", result.Kind, result.Rank, result.TotalScore)
	fmt.Fprintf(w, "Applicant: %s (detail %d)\n", result.ApplicantName, result.DetailID)
	fmt.Fprintf(w, "Role: %s\n", result.Role)
	if result.CVPath != "" {
		fmt.Fprintf(w, "CV: %s\n", result.CVPath)
	}
	if len(result.TermCounts) > 0 {
		fmt.Fprintf(w, "Matched: %s\n", formatTermCounts(result.TermCounts))
	}
	for _, hit := range result.FuzzyHits {
		fmt.Fprintf(w, "Fuzzy: %q ~ %q (%.2f)\n", hit.Term, hit.Word, hit.Similarity)
	}
	fmt.Fprintln(w)
}

// formatTermCounts renders term counts as "term (n), term (n)" in term order.
func formatTermCounts(counts map[string]int) string {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	parts := make([]string, len(terms))
	for i, term := range terms {
		parts[i] = fmt.Sprintf("%s (%d)", term, counts[term])
	}
	return strings.Join(parts, ", ")
}

// WriteSummary writes a CV summary to w in the given format.
func WriteSummary(w io.Writer, summary *models.CVSummary, format SearchOutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	fmt.Fprintf(w, "\n%s — %s (detail %d)\n", summary.ApplicantName, summary.Role, summary.DetailID)
	if summary.BirthDate != "" {
		fmt.Fprintf(w, "Born: %s\n", summary.BirthDate)
	}
	if summary.Address != "" {
		fmt.Fprintf(w, "Address: %s\n", summary.Address)
	}
	if summary.Phone != "" {
		fmt.Fprintf(w, "Phone: %s\n", summary.Phone)
	}
	if summary.Overview != "" {
		fmt.Fprintf(w, "\nSummary:\n%s\n", summary.Overview)
	}
	writeList(w, "Skills", summary.Skills)
	writeList(w, "Experience", summary.Experience)
	writeList(w, "Education", summary.Education)
	if summary.CVPath != "" {
		fmt.Fprintf(w, "\nCV: %s\n", summary.CVPath)
	}
	return nil
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
