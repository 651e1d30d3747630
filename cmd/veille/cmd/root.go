package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/veilleproject/veille/internal/config"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "veille",
	Short: "Veille: an RSS press-review pipeline",
	Long: `Veille collects articles from configured RSS feeds, normalizes and
deduplicates them into a local store, indexes them into Elasticsearch,
and builds per-language term-count corpora for downstream analysis.

Commands:
  ingest   Fetch configured feeds and store new articles
  index    Push all stored articles into Elasticsearch
  search   Query the indexed articles
  analyze  Build per-language vocabulary and count-matrix artifacts
  stats    Inspect or maintain the article store`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// Start with defaults
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/veille")
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	// VEILLE_ELASTICSEARCH_ADDRESSES -> elasticsearch.addresses
	viper.SetEnvPrefix("VEILLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicitly bind nested env vars
	viper.BindEnv("store.path", "VEILLE_STORE_PATH")
	viper.BindEnv("elasticsearch.addresses", "VEILLE_ELASTICSEARCH_ADDRESSES")
	viper.BindEnv("elasticsearch.index", "VEILLE_ELASTICSEARCH_INDEX")
	viper.BindEnv("elasticsearch.username", "VEILLE_ELASTICSEARCH_USERNAME")
	viper.BindEnv("elasticsearch.password", "VEILLE_ELASTICSEARCH_PASSWORD")
	viper.BindEnv("ingest.workers", "VEILLE_INGEST_WORKERS")
	viper.BindEnv("ingest.fetch_timeout", "VEILLE_INGEST_FETCH_TIMEOUT")
	viper.BindEnv("extractor.timeout", "VEILLE_EXTRACTOR_TIMEOUT")
	viper.BindEnv("extractor.user_agent", "VEILLE_EXTRACTOR_USER_AGENT")
	viper.BindEnv("analyzer.output_dir", "VEILLE_ANALYZER_OUTPUT_DIR")
	viper.BindEnv("storage.endpoint", "VEILLE_STORAGE_ENDPOINT")
	viper.BindEnv("storage.bucket", "VEILLE_STORAGE_BUCKET")
	viper.BindEnv("storage.access_key_id", "VEILLE_STORAGE_ACCESS_KEY_ID")
	viper.BindEnv("storage.secret_access_key", "VEILLE_STORAGE_SECRET_ACCESS_KEY")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
		// No config file - use defaults + env vars
	}

	// Unmarshal into struct (merges config file with defaults)
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}

	// Handle special case: addresses as comma-separated string from env
	if addrs := os.Getenv("VEILLE_ELASTICSEARCH_ADDRESSES"); addrs != "" {
		cfg.Elasticsearch.Addresses = strings.Split(addrs, ",")
	}
}
