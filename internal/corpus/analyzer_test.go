package corpus

import (
	"path/filepath"
	"testing"

	"github.com/veilleproject/veille/internal/store"
	"github.com/veilleproject/veille/pkg/models"
)

func openSeededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "articles.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	put := func(title, summary, content, lang string) {
		rec := models.ArticleRecord{
			Title:            title,
			Summary:          summary,
			Content:          content,
			Language:         lang,
			Category:         "SCIENCE",
			PredictionScores: []float64{},
		}
		if err := st.Put(models.Fingerprint(title, "l", summary), rec); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	put("climate summit opens", "leaders meet", "the summit opened with climate talks, 2024 edition.", "en")
	put("markets rally again", "stocks climb", "markets rallied as stocks climbed 5% on tuesday.", "en")
	put("le sommet du climat", "les dirigeants", "le sommet sur le climat s'est ouvert.", "fr")
	return st
}

func TestAnalyzer_PartitionsByLanguage(t *testing.T) {
	st := openSeededStore(t)

	res, err := ResourcesFor("en")
	if err != nil {
		t.Fatalf("ResourcesFor() error = %v", err)
	}

	vocab, err := NewAnalyzer(res).Analyze(st)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(vocab.Matrix) != 2 {
		t.Fatalf("matrix rows = %d, want 2 (one per english document)", len(vocab.Matrix))
	}
	for i, row := range vocab.Matrix {
		if len(row) != len(vocab.Terms) {
			t.Errorf("row %d width = %d, want vocabulary size %d", i, len(row), len(vocab.Terms))
		}
	}
}

func TestAnalyzer_CleansAndStems(t *testing.T) {
	st := openSeededStore(t)
	res, _ := ResourcesFor("en")

	vocab, err := NewAnalyzer(res).Analyze(st)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	terms := make(map[string]bool, len(vocab.Terms))
	for _, term := range vocab.Terms {
		terms[term] = true
	}

	if terms["the"] || terms["with"] || terms["as"] || terms["on"] {
		t.Errorf("stop-words must not survive into the vocabulary: %v", vocab.Terms)
	}
	// "markets"/"rallied"/"climbed" stem to their roots.
	if !terms["market"] {
		t.Errorf("expected stemmed term %q in vocabulary %v", "market", vocab.Terms)
	}
	if terms["markets"] {
		t.Errorf("unstemmed plural should not appear in vocabulary %v", vocab.Terms)
	}
	for _, term := range vocab.Terms {
		for _, r := range term {
			if r >= '0' && r <= '9' {
				t.Errorf("digits must be stripped, found term %q", term)
			}
		}
	}
}

func TestVocabulary_TermTotalsMatchMatrix(t *testing.T) {
	st := openSeededStore(t)
	res, _ := ResourcesFor("en")

	vocab, err := NewAnalyzer(res).Analyze(st)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	totals := vocab.TermTotals()
	if len(totals) != len(vocab.Terms) {
		t.Fatalf("totals length = %d, want vocabulary size %d", len(totals), len(vocab.Terms))
	}

	// Column sums must agree with the reported totals.
	byTerm := make(map[string]int, len(totals))
	for _, tc := range totals {
		byTerm[tc.Term] = tc.Count
	}
	for col, term := range vocab.Terms {
		sum := 0
		for _, row := range vocab.Matrix {
			sum += row[col]
		}
		if byTerm[term] != sum {
			t.Errorf("total for %q = %d, column sum = %d", term, byTerm[term], sum)
		}
	}

	// Ascending by count.
	for i := 1; i < len(totals); i++ {
		if totals[i].Count < totals[i-1].Count {
			t.Errorf("totals not ascending at %d: %v then %v", i, totals[i-1], totals[i])
		}
	}

	// The stemmed form of "climate" must have survived into the corpus.
	stemmed := res.Stem("climate")
	want := 0
	for col, term := range vocab.Terms {
		if term == stemmed {
			for _, row := range vocab.Matrix {
				want += row[col]
			}
		}
	}
	if want == 0 {
		t.Errorf("expected %q in vocabulary %v", stemmed, vocab.Terms)
	}
}

func TestVocabulary_SaveLoadPair(t *testing.T) {
	st := openSeededStore(t)
	res, _ := ResourcesFor("en")
	vocab, err := NewAnalyzer(res).Analyze(st)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	dir := t.TempDir()
	if err := vocab.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(dir, "en")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Terms) != len(vocab.Terms) {
		t.Errorf("loaded %d terms, want %d", len(loaded.Terms), len(vocab.Terms))
	}
	if len(loaded.Matrix) != len(vocab.Matrix) {
		t.Errorf("loaded %d rows, want %d", len(loaded.Matrix), len(vocab.Matrix))
	}
	for i, term := range vocab.Terms {
		if loaded.Terms[i] != term {
			t.Fatalf("term order changed after round-trip at %d: %q vs %q", i, loaded.Terms[i], term)
		}
	}
}

func TestLoad_MissingHalfOfPairFails(t *testing.T) {
	st := openSeededStore(t)
	res, _ := ResourcesFor("en")
	vocab, err := NewAnalyzer(res).Analyze(st)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	dir := t.TempDir()
	if err := vocab.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Loading a language whose pair was never written must fail.
	if _, err := Load(dir, "fr"); err == nil {
		t.Error("Load() should fail when the pair for the language is missing")
	}
}

func TestResourcesFor_UnsupportedLanguage(t *testing.T) {
	if _, err := ResourcesFor("de"); err == nil {
		t.Error("ResourcesFor(de) should fail")
	}
}
