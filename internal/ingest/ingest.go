// Package ingest runs background CV parsing: extracting text from each
// application's CV file and publishing it into the in-memory document store.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/docstore"
	"github.com/hyperjump/erabu/internal/extract"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/storage"
	"github.com/hyperjump/erabu/pkg/utils"
)

// Ingester parses CV files listed in storage and inserts the extracted
// documents into the docstore. One Ingester runs as the single producer;
// searches read concurrently while it works.
type Ingester struct {
	storage   storage.Storage
	docs      *docstore.Store
	extractor *extract.Extractor
	dataDir   string
	logger    *zap.Logger // optional; when set, logs per-file events
}

// IngesterOption configures an Ingester.
type IngesterOption func(*Ingester)

// WithLogger sets a logger for ingestion progress and per-file failures.
func WithLogger(l *zap.Logger) IngesterOption {
	return func(in *Ingester) { in.logger = l }
}

// NewIngester creates an ingester. dataDir is the CV corpus root, used to
// derive roles for files the watcher discovers after startup.
func NewIngester(store storage.Storage, docs *docstore.Store, extractor *extract.Extractor, dataDir string, opts ...IngesterOption) *Ingester {
	in := &Ingester{
		storage:   store,
		docs:      docs,
		extractor: extractor,
		dataDir:   dataDir,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run performs the initial ingestion pass: every application row gets its
// CV extracted and inserted. A file that cannot be read or parsed is
// logged and skipped but still counts toward progress, so the completion
// signal fires even with a partially broken corpus. Run returns early only
// when ctx is cancelled.
func (in *Ingester) Run(ctx context.Context) error {
	apps, err := in.storage.ListApplications(ctx)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}
	total := len(apps)
	in.docs.UpdateProgress(0, total)
	if in.logger != nil {
		in.logger.Info("ingestion started", zap.Int("total", total))
	}

	for i, app := range apps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.ingestApplication(app); err != nil && in.logger != nil {
			in.logger.Warn("cv skipped",
				zap.Int64("detail_id", app.DetailID),
				zap.String("path", app.CVPath),
				zap.Error(err))
		}
		in.docs.UpdateProgress(i+1, total)
	}

	if in.logger != nil {
		in.logger.Info("ingestion finished",
			zap.Int("total", total),
			zap.Int("loaded", in.docs.Len()))
	}
	return nil
}

func (in *Ingester) ingestApplication(app *models.Application) error {
	text, err := in.extractor.Extract(app.CVPath)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	doc := &models.Document{
		DetailID:       app.DetailID,
		Path:           app.CVPath,
		SearchText:     utils.NormalizeText(text),
		StructuredText: text,
	}
	if err := in.docs.Insert(doc); err != nil {
		if errors.Is(err, docstore.ErrDuplicateID) {
			return nil
		}
		return err
	}
	if in.logger != nil {
		in.logger.Debug("cv ingested",
			zap.Int64("detail_id", app.DetailID),
			zap.String("path", app.CVPath))
	}
	return nil
}

// IngestFile handles one CV file discovered after the initial pass, e.g.
// by the directory watcher. If no application row exists for the path yet,
// a generated applicant profile is seeded first. A file already ingested
// is a no-op; documents are immutable once published. Returns the
// application's detail id.
func (in *Ingester) IngestFile(ctx context.Context, path string) (int64, error) {
	app, err := in.storage.GetApplicationByPath(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		count, countErr := in.storage.CountApplications(ctx)
		if countErr != nil {
			return 0, fmt.Errorf("count applications: %w", countErr)
		}
		detailID, seedErr := storage.SeedApplication(ctx, in.storage, in.dataDir, path, int(count))
		if seedErr != nil {
			return 0, seedErr
		}
		app, err = in.storage.GetApplication(ctx, detailID)
	}
	if err != nil {
		return 0, err
	}
	if err := in.ingestApplication(app); err != nil {
		return app.DetailID, err
	}
	return app.DetailID, nil
}
