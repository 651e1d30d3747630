package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/veilleproject/veille/internal/elasticsearch"
	"github.com/veilleproject/veille/internal/indexer"
	"github.com/veilleproject/veille/internal/store"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Push all stored articles into Elasticsearch",
	Long: `Push every article in the local store into the Elasticsearch index.
Articles are upserted by fingerprint, so re-running is safe.

The command fails before touching the index if Elasticsearch does not
answer its liveness check.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	esClient, err := elasticsearch.New(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Index:     cfg.Elasticsearch.Index,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}

	count, err := indexer.New(esClient).IndexAll(ctx, st)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("Indexed %d articles into %q\n", count, cfg.Elasticsearch.Index)
	return nil
}
