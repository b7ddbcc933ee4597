package model

import "time"

// Config holds the complete Veritium configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Storage     StorageConfig     `yaml:"storage" mapstructure:"storage"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls document fetching
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// EmbeddingConfig controls the semantic similarity signal.
// An empty Provider disables embeddings entirely; the similarity engine then
// runs on the lexical signal alone.
type EmbeddingConfig struct {
	Provider          string        `yaml:"provider" mapstructure:"provider"` // "openai" or ""
	Model             string        `yaml:"model" mapstructure:"model"`
	APIKey            string        `yaml:"-" mapstructure:"-"`
	BaseURL           string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Dimensions        int           `yaml:"dimensions" mapstructure:"dimensions"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls the embedding vector cache. An empty Dir keeps the
// cache in memory only; setting it persists vectors to disk across restarts.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir             string        `yaml:"dir,omitempty" mapstructure:"dir"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// StorageConfig controls document/assessment persistence
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr        string `yaml:"addr" mapstructure:"addr"`
	Environment string `yaml:"environment" mapstructure:"environment"` // "prod" or "dev"
	LogLevel    string `yaml:"log_level" mapstructure:"log_level"`
}

// ConcurrencyConfig controls batch assessment parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "Veritium/0.1 (+https://github.com/veritium/veritium)",
			MaxBodyBytes:      2_000_000,
			RespectRobots:     true,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Embedding: EmbeddingConfig{
			Provider:          "", // Disabled by default; lexical signal only
			Model:             "text-embedding-3-small",
			Dimensions:        0,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Cache: CacheConfig{
			Enabled:         true,
			Dir:             "",
			TTL:             24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Storage: StorageConfig{
			Path: "data/veritium.db",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			Environment: "dev",
			LogLevel:    "",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
			JSON:    false,
		},
	}
}
