// Package docstore provides the thread-safe in-memory store of parsed CV
// documents, with background-ingestion progress tracking and a completion
// signal.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hyperjump/erabu/internal/models"
)

// ErrDuplicateID is returned by Insert for an already-present detail id.
// Documents are immutable once inserted; the ingestion producer never
// re-inserts an id, so a duplicate indicates a caller bug.
var ErrDuplicateID = errors.New("document already inserted")

// Store maps application detail ids to parsed documents. It is populated
// by a single ingestion producer and read by arbitrarily many concurrent
// searchers; readers tolerate a partially-populated map while ingestion
// is still running.
type Store struct {
	mu   sync.RWMutex
	docs map[int64]*models.Document

	processed int
	total     int
	done      bool
	doneCh    chan struct{}
}

// New returns an empty store.
func New() *Store {
	return &Store{
		docs:   make(map[int64]*models.Document),
		doneCh: make(chan struct{}),
	}
}

// Insert adds a fully-populated document. The document becomes visible to
// readers only after this call returns; no reader ever observes a
// half-written document.
func (s *Store) Insert(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.DetailID]; exists {
		return fmt.Errorf("%w: detail id %d", ErrDuplicateID, doc.DetailID)
	}
	s.docs[doc.DetailID] = doc
	return nil
}

// Get returns the document for detailID. A missing document is not an
// error while ingestion is in flight; it may simply not be reached yet.
func (s *Store) Get(detailID int64) (*models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[detailID]
	return doc, ok
}

// All returns a snapshot of all documents, ordered by detail id. The
// slice is owned by the caller; the documents themselves are shared and
// immutable.
func (s *Store) All() []*models.Document {
	s.mu.RLock()
	docs := make([]*models.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].DetailID < docs[j].DetailID })
	return docs
}

// Len returns the number of inserted documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// UpdateProgress records ingestion progress. The first time
// processed >= total with total > 0, the completion signal fires; later
// updates can never clear it.
func (s *Store) UpdateProgress(processed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = processed
	s.total = total
	if !s.done && total > 0 && processed >= total {
		s.done = true
		close(s.doneCh)
	}
}

// Progress returns the current ingestion progress. Once completion has
// been signaled, a stale processed value is clamped up to total so the
// count never under-reports after done.
func (s *Store) Progress() models.IngestionProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := models.IngestionProgress{Processed: s.processed, Total: s.total, Done: s.done}
	if p.Done && p.Processed < p.Total {
		p.Processed = p.Total
	}
	return p
}

// IsComplete reports whether ingestion has finished.
func (s *Store) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Done returns a channel closed when ingestion completes. Callers wanting
// a bounded wait select on it together with their own timeout.
func (s *Store) Done() <-chan struct{} {
	return s.doneCh
}

// Wait blocks until ingestion completes or ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
