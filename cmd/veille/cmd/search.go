package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/veilleproject/veille/internal/elasticsearch"
	"github.com/veilleproject/veille/internal/indexer"
)

var (
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the indexed articles",
	Long: `Search the indexed articles across title, summary, content and the
other textual fields.

Examples:
  # Basic search
  veille search "climate summit"

  # Limit results
  veille search "election" --limit 5

  # JSON output for scripting
  veille search "inflation" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "Output format: text or json")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query := args[0]
	cfg := GetConfig()

	esClient, err := elasticsearch.New(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Index:     cfg.Elasticsearch.Index,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}

	hits, err := indexer.New(esClient).Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if searchFormat == "json" {
		output, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(hits))
	for i, hit := range hits {
		fmt.Printf("─── Result %d ───\n", i+1)
		fmt.Printf("Title:       %s\n", hit.Record.Title)
		fmt.Printf("URL:         %s\n", hit.Record.SourcePageURL)
		fmt.Printf("Category:    %s\n", hit.Record.Category)
		fmt.Printf("Language:    %s\n", hit.Record.Language)
		fmt.Printf("Fingerprint: %s\n", hit.ID)

		fmt.Printf("Summary:\n%s\n\n", truncate(hit.Record.Summary, 500))
	}

	return nil
}

// truncate shortens s to at most limit runes, never splitting a
// multi-byte character.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
