// Package search implements the search orchestrator: an exact phase over
// the whole document store, a conditional fuzzy phase over the documents
// the exact phase missed, then ranking, truncation, and enrichment with
// applicant identity data.
package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/docstore"
	"github.com/hyperjump/erabu/internal/fields"
	"github.com/hyperjump/erabu/internal/fuzzy"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/pattern"
)

// ErrEmptyQuery is returned when no usable terms remain after trimming.
var ErrEmptyQuery = errors.New("no usable search terms")

// ErrDocumentUnavailable is returned when a summary is requested for a
// document the store does not (yet) hold.
var ErrDocumentUnavailable = errors.New("document unavailable")

// Placeholder identity used when enrichment lookups fail; lookup errors
// never fail a search.
const (
	placeholderName = "Unknown Applicant"
	placeholderRole = "Unknown Role"
)

// IdentityLookup is the narrow view of the relational store the
// orchestrator needs for enrichment.
type IdentityLookup interface {
	GetApplication(ctx context.Context, detailID int64) (*models.Application, error)
	GetApplicant(ctx context.Context, id int64) (*models.Applicant, error)
}

// Service orchestrates searches over the document store. It is stateless
// across calls; concurrent searches never interfere.
type Service struct {
	store  *docstore.Store
	lookup IdentityLookup
	config *config.SearchConfig
	logger *zap.Logger // optional; when set, logs skipped documents and lookup failures
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets a logger for debug and warning output.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService creates a search service over the given store and lookup.
func NewService(store *docstore.Store, lookup IdentityLookup, cfg *config.SearchConfig, opts ...ServiceOption) *Service {
	s := &Service{store: store, lookup: lookup, config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SplitKeywords splits a comma-separated keyword string into trimmed,
// lowercased, non-empty terms, deduplicated in input order.
func SplitKeywords(keywords string) []string {
	return normalizeTerms(strings.Split(keywords, ","))
}

func normalizeTerms(raw []string) []string {
	terms := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}

// Search runs a keyword search: comma-separated keywords, one exact-match
// engine call per term and document. Validation errors (unknown algorithm,
// empty query) are returned before any scanning starts.
func (s *Service) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	terms := SplitKeywords(query.Keywords)
	if len(terms) == 0 {
		return nil, ErrEmptyQuery
	}
	algorithm := query.Algorithm
	if algorithm == "" {
		algorithm = s.config.DefaultAlgorithm
	}
	matcher, err := pattern.New(algorithm)
	if err != nil {
		return nil, err
	}
	query.Normalize(s.config.DefaultTopN, s.config.MaxTopN)

	resp := s.run(ctx, terms, matcher, query.TopN)
	resp.Query = query.Keywords
	resp.Algorithm = algorithm
	return resp, nil
}

// SearchPatterns runs a multi-pattern search. With the Aho-Corasick engine
// all patterns are counted in a single automaton pass per document; the
// other engines fall back to one call per pattern.
func (s *Service) SearchPatterns(ctx context.Context, query *models.PatternQuery) (*models.SearchResponse, error) {
	terms := normalizeTerms(query.Patterns)
	if len(terms) == 0 {
		return nil, ErrEmptyQuery
	}
	algorithm := query.Algorithm
	if algorithm == "" {
		algorithm = s.config.DefaultAlgorithm
	}
	matcher, err := pattern.New(algorithm)
	if err != nil {
		return nil, err
	}
	query.Normalize(s.config.DefaultTopN, s.config.MaxTopN)

	resp := s.run(ctx, terms, matcher, query.TopN)
	resp.Query = strings.Join(terms, ", ")
	resp.Algorithm = algorithm
	return resp, nil
}

// run executes the phases shared by both search operations.
func (s *Service) run(ctx context.Context, terms []string, matcher pattern.Matcher, topN int) *models.SearchResponse {
	docs := s.store.All()

	exactStart := time.Now()
	records, paths := s.exactPhase(docs, terms, matcher)
	exactMs := time.Since(exactStart).Milliseconds()

	fuzzyStart := time.Now()
	fuzzyScanned := 0
	if len(records) < topN {
		fuzzyScanned = s.fuzzyPhase(docs, terms, records, paths)
	}
	fuzzyMs := time.Since(fuzzyStart).Milliseconds()

	ranked := rank(records)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	results := make([]*models.SearchResult, 0, len(ranked))
	for i, rec := range ranked {
		res := s.enrich(ctx, rec, paths[rec.DetailID])
		res.Rank = i + 1
		results = append(results, res)
	}

	return &models.SearchResponse{
		Results:      results,
		DocsScanned:  len(docs),
		FuzzyScanned: fuzzyScanned,
		ExactTimeMs:  exactMs,
		FuzzyTimeMs:  fuzzyMs,
	}
}

// exactPhase scans every document for every term. A document is an exact
// match iff the sum of its per-term counts is positive. Documents with
// missing text are skipped, never treated as errors.
func (s *Service) exactPhase(docs []*models.Document, terms []string, matcher pattern.Matcher) (map[int64]*models.MatchRecord, map[int64]string) {
	records := make(map[int64]*models.MatchRecord)
	paths := make(map[int64]string, len(docs))

	multi, batch := matcher.(pattern.MultiMatcher)
	for _, doc := range docs {
		if doc.SearchText == "" {
			if s.logger != nil {
				s.logger.Debug("skipping document with no text", zap.Int64("detail_id", doc.DetailID))
			}
			continue
		}
		paths[doc.DetailID] = doc.Path

		counts := make(map[string]int, len(terms))
		if batch {
			for term, n := range multi.CountPatterns(doc.SearchText, terms) {
				if n > 0 {
					counts[term] = n
				}
			}
		} else {
			for _, term := range terms {
				if n := matcher.CountOccurrences(doc.SearchText, term); n > 0 {
					counts[term] = n
				}
			}
		}
		if len(counts) == 0 {
			continue
		}

		rec := &models.MatchRecord{
			DetailID:   doc.DetailID,
			Kind:       models.MatchExact,
			TermCounts: counts,
		}
		rec.TotalScore = rec.Score()
		records[doc.DetailID] = rec
	}
	return records, paths
}

// fuzzyPhase scans only documents the exact phase did not match, looking
// for the best approximately-matching word per term. Returns the number
// of documents scanned. Exact records are never displaced.
func (s *Service) fuzzyPhase(docs []*models.Document, terms []string, records map[int64]*models.MatchRecord, paths map[int64]string) int {
	scanned := 0
	for _, doc := range docs {
		if doc.SearchText == "" {
			continue
		}
		if _, matched := records[doc.DetailID]; matched {
			continue
		}
		scanned++

		var hits []models.FuzzyHit
		for _, term := range terms {
			if m, ok := fuzzy.FindBestMatch(term, doc.SearchText, s.config.FuzzyThreshold); ok {
				hits = append(hits, models.FuzzyHit{Term: term, Word: m.Word, Similarity: m.Similarity})
			}
		}
		if len(hits) == 0 {
			continue
		}

		paths[doc.DetailID] = doc.Path
		rec := &models.MatchRecord{
			DetailID:  doc.DetailID,
			Kind:      models.MatchFuzzy,
			FuzzyHits: hits,
		}
		rec.TotalScore = rec.Score()
		records[doc.DetailID] = rec
	}
	return scanned
}

// rank orders records by (exact before fuzzy, score descending, detail id
// ascending). The detail-id tie-break makes repeated searches on an
// unmodified store byte-identical.
func rank(records map[int64]*models.MatchRecord) []*models.MatchRecord {
	ranked := make([]*models.MatchRecord, 0, len(records))
	for _, rec := range records {
		ranked = append(ranked, rec)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Kind != b.Kind {
			return a.Kind == models.MatchExact
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return a.DetailID < b.DetailID
	})
	return ranked
}

// enrich attaches applicant identity to a record. Any lookup failure
// degrades to placeholder values; it is logged but never propagated.
func (s *Service) enrich(ctx context.Context, rec *models.MatchRecord, path string) *models.SearchResult {
	res := &models.SearchResult{
		MatchRecord:   *rec,
		ApplicantID:   rec.DetailID,
		ApplicantName: placeholderName,
		Role:          placeholderRole,
		CVPath:        path,
	}

	app, err := s.lookup.GetApplication(ctx, rec.DetailID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("application lookup failed", zap.Int64("detail_id", rec.DetailID), zap.Error(err))
		}
		return res
	}
	res.ApplicantID = app.ApplicantID
	if app.Role != "" {
		res.Role = app.Role
	}

	applicant, err := s.lookup.GetApplicant(ctx, app.ApplicantID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("applicant lookup failed", zap.Int64("applicant_id", app.ApplicantID), zap.Error(err))
		}
		return res
	}
	if name := applicant.FullName(); name != "" {
		res.ApplicantName = name
	}
	return res
}

// Summary builds the detailed view for one CV: identity fields from the
// relational store plus regex-extracted sections from the structured text.
// Identity lookup failures degrade to placeholders; only a missing
// document is an error.
func (s *Service) Summary(ctx context.Context, detailID int64) (*models.CVSummary, error) {
	doc, ok := s.store.Get(detailID)
	if !ok {
		return nil, ErrDocumentUnavailable
	}

	sections := fields.Extract(doc.StructuredText)
	summary := &models.CVSummary{
		DetailID:      detailID,
		ApplicantName: placeholderName,
		Role:          placeholderRole,
		Skills:        sections.Skills,
		Experience:    sections.Experience,
		Education:     sections.Education,
		Overview:      sections.Summary,
		CVPath:        doc.Path,
	}

	app, err := s.lookup.GetApplication(ctx, detailID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("application lookup failed", zap.Int64("detail_id", detailID), zap.Error(err))
		}
		return summary, nil
	}
	if app.Role != "" {
		summary.Role = app.Role
	}
	applicant, err := s.lookup.GetApplicant(ctx, app.ApplicantID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("applicant lookup failed", zap.Int64("applicant_id", app.ApplicantID), zap.Error(err))
		}
		return summary, nil
	}
	if name := applicant.FullName(); name != "" {
		summary.ApplicantName = name
	}
	summary.BirthDate = applicant.BirthDate
	summary.Address = applicant.Address
	summary.Phone = applicant.Phone
	return summary, nil
}

// Progress reports background-ingestion progress for the status endpoint.
func (s *Service) Progress() models.IngestionProgress {
	return s.store.Progress()
}
