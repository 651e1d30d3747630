package indexer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/veilleproject/veille/internal/elasticsearch"
	"github.com/veilleproject/veille/internal/store"
	"github.com/veilleproject/veille/pkg/models"
)

// ErrSearchUnavailable is returned when the search engine fails its
// liveness check. No document is upserted after this error.
var ErrSearchUnavailable = errors.New("search engine unavailable")

// Indexer feeds the article store into the search engine.
type Indexer struct {
	es *elasticsearch.Client
}

// New creates an Indexer backed by the given search client.
func New(es *elasticsearch.Client) *Indexer {
	return &Indexer{es: es}
}

// IndexAll upserts every record of the store into the search engine,
// keyed by fingerprint, and returns the number of documents indexed. The
// engine must answer a liveness check first; if it does not, the whole
// operation fails before any upsert is attempted. The store is read-only
// for this pass.
func (ix *Indexer) IndexAll(ctx context.Context, st *store.Store) (int, error) {
	if !ix.es.Ping(ctx) {
		return 0, ErrSearchUnavailable
	}

	if err := ix.es.CreateIndex(ctx); err != nil {
		return 0, err
	}

	indexed := 0
	err := st.Iterate(func(fingerprint string, rec models.ArticleRecord) error {
		if err := ix.es.IndexArticle(ctx, fingerprint, rec); err != nil {
			return err
		}
		slog.Debug("indexed article", "fingerprint", fingerprint)
		indexed++
		return nil
	})
	if err != nil {
		return indexed, err
	}

	// Every document is already upserted at this point; a failed refresh
	// only delays search visibility, so it does not fail the operation.
	if err := ix.es.Refresh(ctx); err != nil {
		slog.Warn("index refresh failed", "error", err)
	}
	slog.Info("indexing complete", "indexed", indexed)
	return indexed, nil
}

// Search runs an ad-hoc disjunctive multi-field query and returns hits in
// the engine's relevance order.
func (ix *Indexer) Search(ctx context.Context, query string, limit int) ([]elasticsearch.Hit, error) {
	if !ix.es.Ping(ctx) {
		return nil, ErrSearchUnavailable
	}
	return ix.es.Search(ctx, query, limit)
}
