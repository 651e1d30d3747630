package feed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/veilleproject/veille/internal/config"
)

// Entry is one raw feed item before normalization. Missing feed fields
// are represented as empty strings.
type Entry struct {
	Title     string
	Link      string
	Summary   string
	Published string // feed-native date string
	Content   string // embedded full content, if the feed carries one
}

// Config holds fetcher configuration.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Fetcher retrieves and parses feed sources.
type Fetcher struct {
	parser     *gofeed.Parser
	httpClient *http.Client
	userAgent  string
}

// New creates a new Fetcher with the given configuration.
func New(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "veille/1.0"
	}
	return &Fetcher{
		parser:     gofeed.NewParser(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
	}
}

// Fetch retrieves one source and returns its entries. A source that cannot
// be fetched or parsed never fails the run: the condition is logged and an
// empty slice is returned for that source only.
func (f *Fetcher) Fetch(ctx context.Context, source config.Source) []Entry {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		slog.Warn("invalid source URL", "source", source.Name, "url", source.URL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		slog.Warn("feed unreachable", "source", source.Name, "url", source.URL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("feed returned non-200", "source", source.Name, "url", source.URL, "status", resp.StatusCode)
		return nil
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		slog.Warn("feed body unparsable", "source", source.Name, "url", source.URL, "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, Entry{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Description,
			Published: item.Published,
			Content:   item.Content,
		})
	}

	slog.Debug("fetched feed", "source", source.Name, "entries", len(entries))
	return entries
}
