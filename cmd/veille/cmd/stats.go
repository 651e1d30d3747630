package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/veilleproject/veille/internal/store"
)

var (
	statsPurge bool
	statsGet   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Inspect or maintain the article store",
	Long: `Print article counts per category and language, look up a single
article by fingerprint, or purge articles whose language is not in the
accepted set.

Examples:
  # Counts per category and language
  veille stats

  # Show one stored article
  veille stats --get 9e107d9d372bb6826bd81d3542a419d6

  # Remove articles outside the accepted languages
  veille stats --purge`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsPurge, "purge", false, "Delete articles outside the accepted languages")
	statsCmd.Flags().StringVar(&statsGet, "get", "", "Print the stored article with this fingerprint")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if statsGet != "" {
		rec, err := st.Get(statsGet)
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("no article with fingerprint %q", statsGet)
		}
		output, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	if statsPurge {
		removed, err := st.PurgeLanguages(cfg.Ingest.AcceptedLanguages)
		if err != nil {
			return fmt.Errorf("purge failed: %w", err)
		}
		fmt.Printf("Purged %d articles outside languages %v\n", removed, cfg.Ingest.AcceptedLanguages)
	}

	total, err := st.Count()
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	byCategory, err := st.CountByCategory()
	if err != nil {
		return fmt.Errorf("count by category failed: %w", err)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	fmt.Printf("Total articles: %d\n", total)
	for _, cat := range categories {
		langs := byCategory[cat]
		languages := make([]string, 0, len(langs))
		for lang := range langs {
			languages = append(languages, lang)
		}
		sort.Strings(languages)

		fmt.Printf("%s:\n", cat)
		for _, lang := range languages {
			name := lang
			if name == "" {
				name = "(none)"
			}
			fmt.Printf("  %s: %d\n", name, langs[lang])
		}
	}

	return nil
}
