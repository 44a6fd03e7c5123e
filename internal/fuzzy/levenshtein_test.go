package fuzzy

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"identical empty", "", "", 0},
		{"identical word", "hello", "hello", 0},
		{"identical unicode", "こんにちは", "こんにちは", 0},

		// Empty string cases
		{"empty a", "", "hello", 5},
		{"empty b", "hello", "", 5},

		// Single character differences
		{"one substitution", "cat", "bat", 1},
		{"one insertion", "cat", "cart", 1},
		{"one deletion", "cart", "cat", 1},

		// Multiple differences
		{"kitten to sitting", "kitten", "sitting", 3},
		{"saturday to sunday", "saturday", "sunday", 3},

		// Common CV typos
		{"pythn to python", "pythn", "python", 1},
		{"javasript to javascript", "javasript", "javascript", 1},
		{"enginer to engineer", "enginer", "engineer", 1},

		// Case-insensitive by contract
		{"case difference", "Hello", "hello", 0},
		{"all caps", "PYTHON", "python", 0},

		// Unicode
		{"unicode substitution", "café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Distance(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
			// Symmetry: distance(a,b) == distance(b,a)
			reverse := Distance(tt.b, tt.a)
			if result != reverse {
				t.Errorf("Distance is not symmetric: (%q,%q)=%d, (%q,%q)=%d",
					tt.a, tt.b, result, tt.b, tt.a, reverse)
			}
		})
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	words := []string{"", "go", "golang", "python", "pythn", "sql", "mysql", "engineer"}
	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				ab := Distance(a, b)
				bc := Distance(b, c)
				ac := Distance(a, c)
				if ac > ab+bc {
					t.Errorf("triangle inequality violated: d(%q,%q)=%d > d(%q,%q)=%d + d(%q,%q)=%d",
						a, c, ac, a, b, ab, b, c, bc)
				}
			}
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "python", "python", 1},
		{"both empty", "", "", 1},
		{"one edit of six", "pythn", "python", 1 - 1.0/6},
		{"disjoint", "ab", "xy", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
