package normalize

import (
	"context"
	"errors"
	"testing"

	"github.com/veilleproject/veille/internal/config"
	"github.com/veilleproject/veille/internal/feed"
)

// stubDetector returns a fixed code per lowercased title.
type stubDetector struct {
	byText map[string]string
}

func (d *stubDetector) Detect(text string) string {
	return d.byText[text]
}

// stubExtractor records calls and returns canned content or an error.
type stubExtractor struct {
	content string
	err     error
	calls   []string
}

func (e *stubExtractor) Extract(_ context.Context, pageURL string) (string, error) {
	e.calls = append(e.calls, pageURL)
	return e.content, e.err
}

func newTestNormalizer(det Detector, ex Extractor) *Normalizer {
	return New(det, ex, []string{"fr", "en"})
}

func TestNormalizer_AcceptedEntry(t *testing.T) {
	det := &stubDetector{byText: map[string]string{"breaking climate summit opens": "en"}}
	ex := &stubExtractor{content: "extracted body"}
	n := newTestNormalizer(det, ex)

	entry := feed.Entry{
		Title:     "Breaking Climate Summit Opens",
		Link:      "http://ex/1",
		Summary:   "World Leaders Meet",
		Published: "Mon, 02 Jan 2006 15:04:05 GMT",
	}
	source := config.Source{URL: "http://ex/feed", Category: "SCIENCE"}

	rec, err := n.Normalize(context.Background(), entry, source)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if rec.Title != "breaking climate summit opens" {
		t.Errorf("Title should be lowercased, got %q", rec.Title)
	}
	if rec.Summary != "world leaders meet" {
		t.Errorf("Summary should be lowercased, got %q", rec.Summary)
	}
	if rec.Language != "en" {
		t.Errorf("Language = %q, want en", rec.Language)
	}
	if rec.Content != "extracted body" {
		t.Errorf("Content = %q, want extracted body", rec.Content)
	}
	if rec.Category != "SCIENCE" {
		t.Errorf("Category = %q, want SCIENCE", rec.Category)
	}
	if rec.SourceFeedURL != "http://ex/feed" {
		t.Errorf("SourceFeedURL = %q", rec.SourceFeedURL)
	}
	if rec.PredictedCategory != "" || len(rec.PredictionScores) != 0 {
		t.Error("prediction fields should stay empty until a classifier runs")
	}
	if len(ex.calls) != 1 || ex.calls[0] != "http://ex/1" {
		t.Errorf("extractor should be called once with the entry link, got %v", ex.calls)
	}
}

func TestNormalizer_ShortTitleAlwaysRejected(t *testing.T) {
	// Titles under 3 runes never reach the classifier: the language stays
	// empty, which is outside the accepted set.
	det := &stubDetector{byText: map[string]string{"ha": "en"}}
	ex := &stubExtractor{}
	n := newTestNormalizer(det, ex)

	_, err := n.Normalize(context.Background(), feed.Entry{Title: "Ha", Link: "http://ex/2"}, config.Source{})
	var langErr *LanguageError
	if !errors.As(err, &langErr) {
		t.Fatalf("expected *LanguageError, got %v", err)
	}
	if langErr.Detected != "" {
		t.Errorf("Detected = %q, want empty for short titles", langErr.Detected)
	}
	if len(ex.calls) != 0 {
		t.Error("extractor must not run for rejected candidates")
	}
}

func TestNormalizer_UnacceptedLanguageRejected(t *testing.T) {
	det := &stubDetector{byText: map[string]string{"die regierung hat heute entschieden": "de"}}
	n := newTestNormalizer(det, &stubExtractor{})

	_, err := n.Normalize(context.Background(), feed.Entry{Title: "Die Regierung hat heute entschieden"}, config.Source{})
	var langErr *LanguageError
	if !errors.As(err, &langErr) {
		t.Fatalf("expected *LanguageError, got %v", err)
	}
	if langErr.Detected != "de" {
		t.Errorf("Detected = %q, want de", langErr.Detected)
	}
}

func TestNormalizer_ExtractionFailureDegradesToEmptyContent(t *testing.T) {
	det := &stubDetector{byText: map[string]string{"some perfectly fine title": "en"}}
	ex := &stubExtractor{err: errors.New("connection refused")}
	n := newTestNormalizer(det, ex)

	rec, err := n.Normalize(context.Background(), feed.Entry{Title: "Some Perfectly Fine Title", Link: "http://ex/3"}, config.Source{})
	if err != nil {
		t.Fatalf("extraction failure must not reject the candidate: %v", err)
	}
	if rec.Content != "" {
		t.Errorf("Content = %q, want empty after extractor failure", rec.Content)
	}
}

func TestNormalizer_EmbeddedContentSkipsExtractor(t *testing.T) {
	det := &stubDetector{byText: map[string]string{"entry with full content": "en"}}
	ex := &stubExtractor{content: "should not be used"}
	n := newTestNormalizer(det, ex)

	rec, err := n.Normalize(context.Background(), feed.Entry{
		Title:   "Entry With Full Content",
		Link:    "http://ex/4",
		Content: "<p>embedded</p>",
	}, config.Source{})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(ex.calls) != 0 {
		t.Error("extractor must not run when the entry carries embedded content")
	}
	if rec.Content != "" {
		t.Errorf("Content = %q, want empty for entries with embedded content", rec.Content)
	}
}

func TestNormalizer_NoLinkNoExtraction(t *testing.T) {
	det := &stubDetector{byText: map[string]string{"linkless entry title": "fr"}}
	ex := &stubExtractor{content: "unused"}
	n := newTestNormalizer(det, ex)

	rec, err := n.Normalize(context.Background(), feed.Entry{Title: "Linkless Entry Title"}, config.Source{})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(ex.calls) != 0 {
		t.Error("extractor must not run without a link")
	}
	if rec.Content != "" {
		t.Errorf("Content = %q, want empty", rec.Content)
	}
}
