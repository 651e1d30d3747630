package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/veilleproject/veille/internal/corpus"
	"github.com/veilleproject/veille/internal/storage"
	"github.com/veilleproject/veille/internal/store"
)

var (
	analyzeLanguage string
	analyzeOutput   string
	analyzeMinCount int
	analyzeExport   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build per-language vocabulary and count-matrix artifacts",
	Long: `Build a term vocabulary and a document/term count matrix from the
stored articles of each supported language, write the paired JSON
artifacts to the output directory, and print each term with its total
occurrence count in ascending order.

Examples:
  # Analyze both supported languages
  veille analyze

  # Analyze one language, hide rare terms
  veille analyze --language fr --min-count 3

  # Also export the artifacts to S3/MinIO
  veille analyze --export`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "Analyze a single language (fr or en); default is both")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Artifact output directory (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeMinCount, "min-count", 1, "Only print terms with at least this total count")
	analyzeCmd.Flags().BoolVar(&analyzeExport, "export", false, "Export artifacts to configured S3/MinIO storage")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()

	outputDir := cfg.Analyzer.OutputDir
	if analyzeOutput != "" {
		outputDir = analyzeOutput
	}

	languages := cfg.Ingest.AcceptedLanguages
	if analyzeLanguage != "" {
		languages = []string{analyzeLanguage}
	}

	var storageClient *storage.Client
	if analyzeExport {
		if cfg.Storage.Endpoint == "" {
			return fmt.Errorf("--export requires storage.endpoint in config")
		}
		var err error
		storageClient, err = storage.New(storage.Config{
			Endpoint:        cfg.Storage.Endpoint,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			UseSSL:          cfg.Storage.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	for _, lang := range languages {
		res, err := corpus.ResourcesFor(lang)
		if err != nil {
			return err
		}

		vocab, err := corpus.NewAnalyzer(res).Analyze(st)
		if err != nil {
			return fmt.Errorf("analysis failed for %q: %w", lang, err)
		}

		fmt.Printf("Language %s: %d documents, %d terms\n", lang, len(vocab.Matrix), len(vocab.Terms))
		for _, tc := range vocab.TermTotals() {
			if tc.Count < analyzeMinCount {
				continue
			}
			fmt.Printf("  %s %d\n", tc.Term, tc.Count)
		}

		if err := vocab.Save(outputDir); err != nil {
			return fmt.Errorf("failed to write artifacts for %q: %w", lang, err)
		}
		fmt.Printf("Artifacts written to %s\n", outputDir)

		if storageClient != nil {
			prefix, err := storageClient.ExportVocabulary(ctx, vocab)
			if err != nil {
				return fmt.Errorf("failed to export artifacts for %q: %w", lang, err)
			}
			fmt.Printf("Artifacts exported to s3://%s/%s\n", storageClient.Bucket(), prefix)
		}
	}

	return nil
}
