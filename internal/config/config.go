// Package config loads server and CLI configuration from defaults, an
// optional YAML file, environment variables and bound command flags.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

// EnvPrefix is prepended to every environment variable, e.g.
// RESUME_MATCHER_SERVER_PORT for server.port.
const EnvPrefix = "RESUME_MATCHER"

// Config is the full runtime configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Taxonomy  TaxonomyConfig  `mapstructure:"taxonomy"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	AWS       AWSConfig       `mapstructure:"aws"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type TaxonomyConfig struct {
	// Source is "embedded", a file path or an s3://bucket/key URI.
	Source         string  `mapstructure:"source"`
	Fuzzy          bool    `mapstructure:"fuzzy"`
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
	MaxNGram       int     `mapstructure:"max_ngram"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxFiles    int `mapstructure:"max_files"`
}

type RecommendConfig struct {
	MinScore int `mapstructure:"min_score"`
	Limit    int `mapstructure:"limit"`
}

type CatalogConfig struct {
	// Source is "embedded", "database" or a file path.
	Source string `mapstructure:"source"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogDatabase = "database"
)

// NewViper returns a viper instance with defaults and environment bindings in
// place. Callers may bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_bytes", int64(ingestion.MaxUploadBytes))
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("taxonomy.source", taxonomy.EmbeddedSource)
	v.SetDefault("taxonomy.fuzzy", true)
	v.SetDefault("taxonomy.fuzzy_threshold", taxonomy.DefaultFuzzyThreshold)
	v.SetDefault("taxonomy.max_ngram", 3)
	v.SetDefault("batch.concurrency", runtime.NumCPU())
	v.SetDefault("batch.max_files", 50)
	v.SetDefault("recommend.min_score", ranking.DefaultMinScore)
	v.SetDefault("recommend.limit", ranking.DefaultLimit)
	v.SetDefault("catalog.source", CatalogEmbedded)
	v.SetDefault("database.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("aws.region", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("aws.region", EnvPrefix+"_AWS_REGION", "AWS_REGION")

	return v
}

// Load reads the optional config file at path and unmarshals the merged
// settings from v.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration from defaults and the environment only.
func Default() (*Config, error) {
	return Load(NewViper(), "")
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config error: "+format, args...))
		}
	}

	check(c.Server.Port > 0 && c.Server.Port <= 65535, "'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	check(c.Server.RequestTimeout > 0, "'server.request_timeout' must be positive")
	check(c.Server.MaxUploadBytes > 0, "'server.max_upload_bytes' must be positive")
	check(strings.TrimSpace(c.Taxonomy.Source) != "", "'taxonomy.source' must not be empty")
	check(c.Taxonomy.FuzzyThreshold > 0 && c.Taxonomy.FuzzyThreshold <= 1,
		"'taxonomy.fuzzy_threshold' must be in (0, 1], got %v", c.Taxonomy.FuzzyThreshold)
	check(c.Taxonomy.MaxNGram >= 1, "'taxonomy.max_ngram' must be at least 1")
	check(c.Batch.Concurrency >= 1, "'batch.concurrency' must be at least 1")
	check(c.Batch.MaxFiles >= 1, "'batch.max_files' must be at least 1")
	check(c.Recommend.MinScore >= -1 && c.Recommend.MinScore <= ranking.MaxScore,
		"'recommend.min_score' must be between -1 and %d", ranking.MaxScore)
	check(c.Recommend.Limit >= 0, "'recommend.limit' must be non-negative")
	check(c.Catalog.Source != "", "'catalog.source' must not be empty")
	check(c.Catalog.Source != CatalogDatabase || c.Database.URL != "",
		"'catalog.source' is %q but 'database.url' is not set", CatalogDatabase)
	check(c.Log.Format == logging.FormatConsole || c.Log.Format == logging.FormatJSON,
		"'log.format' must be %q or %q", logging.FormatConsole, logging.FormatJSON)
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("config error: 'log.level': %w", err))
	}

	return errors.Join(errs...)
}

// TaxonomyOptions translates the taxonomy settings into load options. Aliases
// wider than max_ngram are rejected since the extractor could never see them.
func (c *Config) TaxonomyOptions() []taxonomy.Option {
	opts := []taxonomy.Option{taxonomy.WithMaxAliasWords(c.Taxonomy.MaxNGram)}
	if !c.Taxonomy.Fuzzy {
		return append(opts, taxonomy.WithoutFuzzy())
	}
	return append(opts, taxonomy.WithFuzzyThreshold(c.Taxonomy.FuzzyThreshold))
}

// RecommendOptions returns the ranking options for recommendations.
func (c *Config) RecommendOptions() ranking.RecommendOptions {
	return ranking.RecommendOptions{MinScore: c.Recommend.MinScore, Limit: c.Recommend.Limit}
}
