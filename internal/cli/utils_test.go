package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Query:       "python, sql",
		Algorithm:   "kmp",
		DocsScanned: 12,
		ExactTimeMs: 3,
		Results: []*models.SearchResult{
			{
				MatchRecord: models.MatchRecord{
					DetailID:   4,
					Kind:       models.MatchExact,
					TermCounts: map[string]int{"python": 2, "sql": 1},
					TotalScore: 3,
				},
				ApplicantID:   9,
				ApplicantName: "Ava Chen",
				Role:          "backend",
				CVPath:        "data/backend/cv_4.pdf",
				Rank:          1,
			},
			{
				MatchRecord: models.MatchRecord{
					DetailID:   7,
					Kind:       models.MatchFuzzy,
					FuzzyHits:  []models.FuzzyHit{{Term: "python", Word: "pyton", Similarity: 0.86}},
					TotalScore: 1,
				},
				ApplicantID:   11,
				ApplicantName: "Ben Baker",
				Role:          "data",
				Rank:          2,
			},
		},
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != "python, sql" || len(decoded.Results) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Results[0].Kind != models.MatchExact {
		t.Errorf("Kind did not round-trip: %v", decoded.Results[0].Kind)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{
		"Found 2 results", "kmp", "Ava Chen", "Rank: 1",
		"python (2), sql (1)", `"python" ~ "pyton"`, "[fuzzy]",
	} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_unknownFormatTreatedAsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, &models.SearchResponse{Query: "x"}, SearchOutputFormat("unknown")); err != nil {
		t.Fatalf("WriteSearchResults(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "Found") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestWriteSummary_text(t *testing.T) {
	summary := &models.CVSummary{
		DetailID:      3,
		ApplicantName: "Chloe Dawson",
		Role:          "frontend",
		BirthDate:     "1991-04-02",
		Skills:        []string{"react", "css"},
		Overview:      "frontend engineer",
		CVPath:        "data/frontend/cv_3.pdf",
	}
	var buf bytes.Buffer
	if err := WriteSummary(&buf, summary, OutputText); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Chloe Dawson", "frontend", "1991-04-02", "- react", "- css", "frontend engineer"} {
		if !strings.Contains(out, sub) {
			t.Errorf("summary output missing %q:\n%s", sub, out)
		}
	}
	if strings.Contains(out, "Experience:") {
		t.Errorf("empty sections should be omitted:\n%s", out)
	}
}

func TestFormatTermCounts(t *testing.T) {
	got := formatTermCounts(map[string]int{"sql": 1, "go": 4})
	if got != "go (4), sql (1)" {
		t.Errorf("formatTermCounts = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"empty", "", 5, ""},
		{"short", "hi", 5, "hi"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"maxLen zero", "ab", 0, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
