package fuzzy

import (
	"math"
	"testing"
)

func TestFindBestMatch(t *testing.T) {
	tests := []struct {
		name      string
		keyword   string
		text      string
		threshold float64
		wantWord  string
		wantSim   float64
		wantOK    bool
	}{
		{
			name:      "typo keyword",
			keyword:   "pythn",
			text:      "I use python daily",
			threshold: 0.8,
			wantWord:  "python",
			wantSim:   1 - 1.0/6,
			wantOK:    true,
		},
		{
			name:      "exact word present",
			keyword:   "sql",
			text:      "postgres sql redis",
			threshold: 0.85,
			wantWord:  "sql",
			wantSim:   1,
			wantOK:    true,
		},
		{
			name:      "below threshold",
			keyword:   "haskell",
			text:      "plumbing carpentry welding",
			threshold: 0.85,
			wantOK:    false,
		},
		{
			name:      "empty text",
			keyword:   "go",
			text:      "",
			threshold: 0.5,
			wantOK:    false,
		},
		{
			name:      "case insensitive",
			keyword:   "Python",
			text:      "PYTHON developer",
			threshold: 0.9,
			wantWord:  "python",
			wantSim:   1,
			wantOK:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindBestMatch(tt.keyword, tt.text, tt.threshold)
			if ok != tt.wantOK {
				t.Fatalf("FindBestMatch(%q, %q, %v) ok = %v, want %v", tt.keyword, tt.text, tt.threshold, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Word != tt.wantWord {
				t.Errorf("word = %q, want %q", got.Word, tt.wantWord)
			}
			if math.Abs(got.Similarity-tt.wantSim) > 1e-9 {
				t.Errorf("similarity = %v, want %v", got.Similarity, tt.wantSim)
			}
		})
	}
}

// Equal-similarity candidates must resolve the same way regardless of the
// order they appear in the text.
func TestFindBestMatch_TieBreakDeterministic(t *testing.T) {
	// "cat" and "car" are both distance 1 from "cab".
	a, okA := FindBestMatch("cab", "cat car", 0.5)
	b, okB := FindBestMatch("cab", "car cat", 0.5)
	if !okA || !okB {
		t.Fatal("expected matches in both orders")
	}
	if a.Word != b.Word {
		t.Fatalf("tie-break depends on word order: %q vs %q", a.Word, b.Word)
	}
	if a.Word != "car" {
		t.Errorf("tie should resolve lexicographically, got %q", a.Word)
	}
}
