package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/veilleproject/veille/internal/elasticsearch"
	"github.com/veilleproject/veille/internal/store"
	"github.com/veilleproject/veille/pkg/models"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "articles.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestIndexAll_UnreachableEngineFailsBeforeAnyUpsert(t *testing.T) {
	st := openTestStore(t)
	for _, title := range []string{"first", "second", "third"} {
		rec := models.ArticleRecord{Title: title, Language: "en", Category: "SCIENCE", PredictionScores: []float64{}}
		if err := st.Put(models.Fingerprint(title, "l", "d"), rec); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	// Nothing listens on this port.
	es, err := elasticsearch.New(elasticsearch.Config{
		Addresses: []string{"http://127.0.0.1:1"},
		Index:     "veille-indexer-test",
	})
	if err != nil {
		t.Fatalf("elasticsearch.New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	indexed, err := New(es).IndexAll(ctx, st)
	if !errors.Is(err, ErrSearchUnavailable) {
		t.Fatalf("IndexAll() error = %v, want ErrSearchUnavailable", err)
	}
	if indexed != 0 {
		t.Errorf("indexed = %d, want 0 when the liveness check fails", indexed)
	}

	// The store is a read-only input to indexing and must be unaffected.
	n, err := st.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Errorf("store Count() = %d, want 3", n)
	}
}

func TestSearch_UnreachableEngine(t *testing.T) {
	es, err := elasticsearch.New(elasticsearch.Config{
		Addresses: []string{"http://127.0.0.1:1"},
		Index:     "veille-indexer-test",
	})
	if err != nil {
		t.Fatalf("elasticsearch.New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := New(es).Search(ctx, "anything", 10); !errors.Is(err, ErrSearchUnavailable) {
		t.Errorf("Search() error = %v, want ErrSearchUnavailable", err)
	}
}

func TestIndexAll_Integration(t *testing.T) {
	if os.Getenv("SKIP_ES_TESTS") == "1" {
		t.Skip("Skipping ES tests (SKIP_ES_TESTS=1)")
	}
	es, err := elasticsearch.New(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Index:     "veille-indexall-test",
	})
	if err != nil {
		t.Skipf("Skipping: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !es.Ping(ctx) {
		t.Skip("Skipping: ES not available")
	}
	es.DeleteIndex(ctx)
	defer es.DeleteIndex(ctx)

	st := openTestStore(t)
	for _, title := range []string{"first story", "second story"} {
		rec := models.ArticleRecord{Title: title, Language: "en", Category: "SCIENCE", PredictionScores: []float64{}}
		if err := st.Put(models.Fingerprint(title, "l", "d"), rec); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	indexed, err := New(es).IndexAll(ctx, st)
	if err != nil {
		t.Fatalf("IndexAll() error = %v", err)
	}
	if indexed != 2 {
		t.Errorf("indexed = %d, want 2", indexed)
	}

	hits, err := New(es).Search(ctx, "first story", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) == 0 {
		t.Error("search should return the indexed story")
	}
}
