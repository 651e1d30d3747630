package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veilleproject/veille/internal/config"
	"github.com/veilleproject/veille/internal/feed"
	"github.com/veilleproject/veille/internal/normalize"
	"github.com/veilleproject/veille/internal/store"
	"github.com/veilleproject/veille/pkg/models"
)

// Fetcher retrieves the raw entries of one source.
type Fetcher interface {
	Fetch(ctx context.Context, source config.Source) []feed.Entry
}

// Normalizer turns a raw entry into a canonical record candidate.
type Normalizer interface {
	Normalize(ctx context.Context, entry feed.Entry, source config.Source) (models.ArticleRecord, error)
}

// Result holds what one ingestion run added. The per-category accumulation
// is scoped to the run; the store remains the authoritative view.
type Result struct {
	ByCategory map[string][]models.ArticleRecord
	Stored     int
	Duplicates int
	Rejected   int
	Duration   time.Duration
}

// Pipeline orchestrates fetch, normalize, fingerprint and store for a set
// of configured sources.
type Pipeline struct {
	fetcher    Fetcher
	normalizer Normalizer
	store      *store.Store
	workers    int
}

// New creates a Pipeline writing into st. workers bounds the number of
// sources fetched in parallel.
func New(fetcher Fetcher, normalizer Normalizer, st *store.Store, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		fetcher:    fetcher,
		normalizer: normalizer,
		store:      st,
		workers:    workers,
	}
}

// Ingest runs the full pipeline over sources. Sources are processed by a
// bounded worker pool; entries within one source are processed in order.
// Per-entry rejections and duplicates never abort the run; a store write
// failure does, since nothing can proceed without a writable store.
func (p *Pipeline) Ingest(ctx context.Context, sources []config.Source) (*Result, error) {
	start := time.Now()
	result := &Result{ByCategory: make(map[string][]models.ArticleRecord)}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, source := range sources {
		source := source
		g.Go(func() error {
			entries := p.fetcher.Fetch(gCtx, source)

			for _, entry := range entries {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}

				// Fingerprint is computed from the raw entry fields, not
				// the normalized record, so duplicates are detected before
				// normalization and its page fetch.
				fp := models.Fingerprint(entry.Title, entry.Link, entry.Summary)

				exists, err := p.store.Contains(fp)
				if err != nil {
					return err
				}
				if exists {
					slog.Debug("duplicate article, skipping",
						"source", source.Name, "fingerprint", fp)
					mu.Lock()
					result.Duplicates++
					mu.Unlock()
					continue
				}

				rec, err := p.normalizer.Normalize(gCtx, entry, source)
				if err != nil {
					var langErr *normalize.LanguageError
					if errors.As(err, &langErr) {
						slog.Debug("entry rejected by language gate",
							"source", source.Name, "title", entry.Title, "language", langErr.Detected)
						mu.Lock()
						result.Rejected++
						mu.Unlock()
						continue
					}
					return err
				}

				if err := p.store.Put(fp, rec); err != nil {
					return err
				}
				slog.Debug("article stored",
					"source", source.Name, "fingerprint", fp, "language", rec.Language)

				mu.Lock()
				result.ByCategory[rec.Category] = append(result.ByCategory[rec.Category], rec)
				result.Stored++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	slog.Info("ingestion run complete",
		"sources", len(sources),
		"stored", result.Stored,
		"duplicates", result.Duplicates,
		"rejected", result.Rejected,
		"duration", result.Duration)
	return result, nil
}
