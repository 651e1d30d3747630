package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// Config holds extractor configuration.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Extractor fetches a single page and pulls its readable text.
type Extractor struct {
	config Config
}

// New creates a new Extractor with the given configuration.
func New(config Config) *Extractor {
	if config.Timeout == 0 {
		config.Timeout = 20 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "veille/1.0"
	}
	return &Extractor{config: config}
}

// Extract fetches pageURL and returns the text of its paragraph nodes
// joined with single spaces. Transport errors, non-200 responses and
// parse failures return an error; callers degrade to empty content.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	var paragraphs []string
	var fetchErr error

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.UserAgent(e.config.UserAgent),
	)
	c.SetRequestTimeout(e.config.Timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			fetchErr = ctx.Err()
		}
	})

	c.OnHTML("p", func(el *colly.HTMLElement) {
		text := strings.NewReplacer("\n", " ", "\t", " ").Replace(el.Text)
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		slog.Debug("page fetch failed", "url", pageURL, "error", err)
		return "", err
	}
	c.Wait()

	if fetchErr != nil {
		slog.Debug("page fetch failed", "url", pageURL, "error", fetchErr)
		return "", fetchErr
	}

	return strings.Join(paragraphs, " "), nil
}
