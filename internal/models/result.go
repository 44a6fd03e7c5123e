package models

// MatchKind distinguishes exact substring hits from edit-distance hits.
type MatchKind int

const (
	// MatchFuzzy marks a document matched only by the fuzzy phase.
	MatchFuzzy MatchKind = iota
	// MatchExact marks a document with at least one exact substring hit.
	MatchExact
)

// String returns "exact" or "fuzzy".
func (k MatchKind) String() string {
	if k == MatchExact {
		return "exact"
	}
	return "fuzzy"
}

// MarshalText implements encoding.TextMarshaler so the kind serializes as
// its name in JSON responses.
func (k MatchKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses "exact" or "fuzzy"; anything else is fuzzy.
func (k *MatchKind) UnmarshalText(text []byte) error {
	if string(text) == "exact" {
		*k = MatchExact
	} else {
		*k = MatchFuzzy
	}
	return nil
}

// FuzzyHit records one approximate term match within a document.
type FuzzyHit struct {
	Term       string  `json:"term"`
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
}

// MatchRecord is the per-document outcome of a search call. It is
// transient: produced per call, never persisted.
type MatchRecord struct {
	DetailID   int64          `json:"detail_id"`
	Kind       MatchKind      `json:"match_kind"`
	TermCounts map[string]int `json:"matched_terms,omitempty"`
	FuzzyHits  []FuzzyHit     `json:"fuzzy_hits,omitempty"`
	TotalScore float64        `json:"total_score"`
}

// Score computes the record's total score. Exact records score the sum of
// per-term occurrence counts. Fuzzy records score the number of distinct
// matched terms, not the sum of similarities, so a document matching two
// keywords approximately always outranks one matching a single keyword.
func (r *MatchRecord) Score() float64 {
	if r.Kind == MatchExact {
		total := 0
		for _, c := range r.TermCounts {
			total += c
		}
		return float64(total)
	}
	seen := make(map[string]struct{}, len(r.FuzzyHits))
	for _, h := range r.FuzzyHits {
		seen[h.Term] = struct{}{}
	}
	return float64(len(seen))
}

// SearchResult is a MatchRecord enriched with applicant identity fields
// from the relational store.
type SearchResult struct {
	MatchRecord
	ApplicantID   int64  `json:"applicant_id"`
	ApplicantName string `json:"applicant_name"`
	Role          string `json:"application_role"`
	CVPath        string `json:"cv_path"`
	Rank          int    `json:"rank"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results []*SearchResult `json:"results"`
	// Query echoes the search input (comma-joined for pattern queries).
	Query     string `json:"query"`
	Algorithm string `json:"algorithm"`
	// DocsScanned is the number of documents visited in the exact phase;
	// FuzzyScanned the number visited in the fuzzy phase (0 when the
	// exact phase already produced enough hits).
	DocsScanned int   `json:"docs_scanned"`
	FuzzyScanned int  `json:"fuzzy_scanned"`
	ExactTimeMs int64 `json:"exact_time_ms"`
	FuzzyTimeMs int64 `json:"fuzzy_time_ms"`
}
