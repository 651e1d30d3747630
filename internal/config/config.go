package config

import "time"

// Config holds all application configuration.
type Config struct {
	Store         Store         `mapstructure:"store"`
	Elasticsearch Elasticsearch `mapstructure:"elasticsearch"`
	Ingest        Ingest        `mapstructure:"ingest"`
	Extractor     Extractor     `mapstructure:"extractor"`
	Analyzer      Analyzer      `mapstructure:"analyzer"`
	Storage       Storage       `mapstructure:"storage"`
	Sources       []Source      `mapstructure:"sources"`
}

// Store holds article store configuration.
type Store struct {
	Path string `mapstructure:"path"`
}

// Elasticsearch holds ES connection configuration.
type Elasticsearch struct {
	Addresses []string `mapstructure:"addresses"`
	Index     string   `mapstructure:"index"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// Ingest holds ingestion pipeline configuration.
type Ingest struct {
	Workers           int           `mapstructure:"workers"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	AcceptedLanguages []string      `mapstructure:"accepted_languages"`
}

// Extractor holds page-text extractor configuration.
type Extractor struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Analyzer holds corpus analyzer configuration.
type Analyzer struct {
	OutputDir string `mapstructure:"output_dir"`
}

// Storage holds S3/MinIO artifact storage configuration.
// Artifact export is disabled when Endpoint is empty.
type Storage struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Source defines one feed endpoint paired with its category label.
type Source struct {
	Name     string `mapstructure:"name"`
	URL      string `mapstructure:"url"`
	Category string `mapstructure:"category"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Store: Store{
			Path: "./data/articles.db",
		},
		Elasticsearch: Elasticsearch{
			Addresses: []string{"http://localhost:9200"},
			Index:     "articles",
		},
		Ingest: Ingest{
			Workers:           4,
			FetchTimeout:      30 * time.Second,
			AcceptedLanguages: []string{"fr", "en"},
		},
		Extractor: Extractor{
			Timeout:   20 * time.Second,
			UserAgent: "veille/1.0",
		},
		Analyzer: Analyzer{
			OutputDir: "./artifacts",
		},
		Storage: Storage{
			Endpoint:        "",
			Bucket:          "veille-artifacts",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			UseSSL:          false,
		},
	}
}
