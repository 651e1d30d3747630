package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/veilleproject/veille/internal/extract"
	"github.com/veilleproject/veille/internal/feed"
	"github.com/veilleproject/veille/internal/language"
	"github.com/veilleproject/veille/internal/normalize"
	"github.com/veilleproject/veille/internal/pipeline"
	"github.com/veilleproject/veille/internal/store"
	"github.com/veilleproject/veille/pkg/models"
)

var ingestSource string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch configured feeds and store new articles",
	Long: `Fetch all configured RSS feeds, normalize the entries, drop
duplicates and articles in unsupported languages, and store the rest.

Examples:
  # Ingest every configured source
  veille ingest

  # Ingest a single source by name
  veille ingest --source lemonde-une`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestSource, "source", "", "Source name from config to ingest")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()
	slog.Debug("ingest command starting", "verbose", verbose, "source", ingestSource)

	sources := cfg.Sources
	if ingestSource != "" {
		sources = nil
		for _, s := range cfg.Sources {
			if s.Name == ingestSource {
				sources = append(sources, s)
			}
		}
		if len(sources) == 0 {
			return fmt.Errorf("source %q not found in config", ingestSource)
		}
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources configured")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	fetcher := feed.New(feed.Config{
		Timeout:   cfg.Ingest.FetchTimeout,
		UserAgent: cfg.Extractor.UserAgent,
	})
	extractor := extract.New(extract.Config{
		Timeout:   cfg.Extractor.Timeout,
		UserAgent: cfg.Extractor.UserAgent,
	})
	normalizer := normalize.New(language.NewDetector(), extractor, cfg.Ingest.AcceptedLanguages)

	p := pipeline.New(fetcher, normalizer, st, cfg.Ingest.Workers)

	result, err := p.Ingest(ctx, sources)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	printByCategory(result.ByCategory)
	fmt.Printf("\nStored: %d, Duplicates: %d, Rejected: %d, Duration: %v\n",
		result.Stored, result.Duplicates, result.Rejected, result.Duration)

	return nil
}

func printByCategory(byCategory map[string][]models.ArticleRecord) {
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		records := byCategory[cat]
		fmt.Printf("%s: %d new\n", cat, len(records))
		for _, rec := range records {
			fmt.Printf("  %s\n", rec.Title)
		}
	}
}
