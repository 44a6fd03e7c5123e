package models

// SearchQuery is a keyword search request. Keywords is a comma-separated
// list of terms; Algorithm selects the exact-match engine.
type SearchQuery struct {
	Keywords  string `json:"keywords"`
	Algorithm string `json:"algorithm,omitempty"`
	TopN      int    `json:"top_n,omitempty"`
}

// PatternQuery is a multi-pattern search request. With the Aho-Corasick
// algorithm all patterns are matched in one automaton pass per document.
type PatternQuery struct {
	Patterns  []string `json:"patterns"`
	Algorithm string   `json:"algorithm,omitempty"`
	TopN      int      `json:"top_n,omitempty"`
}

// Normalize clamps TopN into [1, maxTopN], substituting defaultTopN for
// unset values.
func (q *SearchQuery) Normalize(defaultTopN, maxTopN int) {
	q.TopN = clampTopN(q.TopN, defaultTopN, maxTopN)
}

// Normalize clamps TopN into [1, maxTopN], substituting defaultTopN for
// unset values.
func (q *PatternQuery) Normalize(defaultTopN, maxTopN int) {
	q.TopN = clampTopN(q.TopN, defaultTopN, maxTopN)
}

func clampTopN(n, def, max int) int {
	if n <= 0 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
