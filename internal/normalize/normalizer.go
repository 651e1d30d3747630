package normalize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/veilleproject/veille/internal/config"
	"github.com/veilleproject/veille/internal/feed"
	"github.com/veilleproject/veille/pkg/models"
)

// Detector classifies the natural language of a text sample, returning a
// lowercase ISO 639-1 code or "" when detection fails.
type Detector interface {
	Detect(text string) string
}

// Extractor fetches the readable text of a page.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

// LanguageError reports a candidate rejected by the language gate. It is a
// normal filtering outcome, not a failure of the run.
type LanguageError struct {
	Detected string
}

func (e *LanguageError) Error() string {
	if e.Detected == "" {
		return "language gate: no language detected"
	}
	return fmt.Sprintf("language gate: %q not accepted", e.Detected)
}

// minTitleRunes is the threshold below which the classifier is never
// invoked and the language stays empty. An empty language is never in the
// accepted set, so titles shorter than this are always rejected; that is
// the historical behavior and is kept on purpose.
const minTitleRunes = 3

// Normalizer maps raw feed entries into canonical article records.
type Normalizer struct {
	detector  Detector
	extractor Extractor
	accepted  map[string]struct{}
}

// New creates a Normalizer accepting the given language codes.
func New(detector Detector, extractor Extractor, acceptedLanguages []string) *Normalizer {
	accepted := make(map[string]struct{}, len(acceptedLanguages))
	for _, lang := range acceptedLanguages {
		accepted[strings.ToLower(lang)] = struct{}{}
	}
	return &Normalizer{
		detector:  detector,
		extractor: extractor,
		accepted:  accepted,
	}
}

// Normalize produces a fully-populated record candidate from a raw entry
// and its source descriptor, or a *LanguageError when the entry does not
// pass the language gate. Extractor failures degrade to empty content and
// never reject the candidate.
func (n *Normalizer) Normalize(ctx context.Context, entry feed.Entry, source config.Source) (models.ArticleRecord, error) {
	title := strings.ToLower(entry.Title)

	lang := ""
	if utf8.RuneCountInString(title) >= minTitleRunes {
		lang = n.detector.Detect(title)
	}
	if _, ok := n.accepted[lang]; !ok {
		return models.ArticleRecord{}, &LanguageError{Detected: lang}
	}

	// The extractor runs only for entries without embedded full content;
	// entries that carry their own content are already complete and are
	// stored without a page fetch.
	content := ""
	if entry.Content == "" && entry.Link != "" {
		extracted, err := n.extractor.Extract(ctx, entry.Link)
		if err != nil {
			slog.Warn("content extraction failed", "url", entry.Link, "error", err)
		} else {
			content = extracted
		}
	}

	return models.ArticleRecord{
		SourceFeedURL:    source.URL,
		SourcePageURL:    entry.Link,
		PublishedAt:      entry.Published,
		Title:            title,
		Summary:          strings.ToLower(entry.Summary),
		Language:         lang,
		Content:          content,
		Category:         source.Category,
		PredictionScores: []float64{},
	}, nil
}
