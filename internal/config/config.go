// Package config loads and validates the application configuration
// from YAML files with environment variable interpolation.
package config

import (
	"time"

	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
	"github.com/erandawijewantha/personalized-health-coach/internal/llm"
)

// Config is the root configuration for the health coach service.
type Config struct {
	Core      CoreConfig         `mapstructure:"core" yaml:"core" validate:"required"`
	Database  DBConfig           `mapstructure:"database" yaml:"database" validate:"required"`
	Server    ServerConfig       `mapstructure:"server" yaml:"server"`
	LLM       llm.ProviderConfig `mapstructure:"llm" yaml:"llm"`
	Embedder  embedding.Config   `mapstructure:"embedder" yaml:"embedder"`
	Ranker    RankerConfig       `mapstructure:"ranker" yaml:"ranker"`
	Knowledge KnowledgeConfig    `mapstructure:"knowledge" yaml:"knowledge"`
	Logging   LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// CoreConfig contains core application settings.
type CoreConfig struct {
	HomeDir string        `mapstructure:"home_dir" yaml:"home_dir"`
	DataDir string        `mapstructure:"data_dir" yaml:"data_dir"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
	Debug   bool          `mapstructure:"debug" yaml:"debug"`
}

// DBConfig contains database configuration.
type DBConfig struct {
	Path           string        `mapstructure:"path" yaml:"path"`
	MaxConnections int           `mapstructure:"max_connections" yaml:"max_connections" validate:"min=1,max=100"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
	WALMode        bool          `mapstructure:"wal_mode" yaml:"wal_mode"`
}

// ServerConfig contains the HTTP API server settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address" yaml:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// RankerConfig tunes candidate ranking.
type RankerConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold" validate:"min=0,max=1"`
	DiversityCutoff     float64 `mapstructure:"diversity_cutoff" yaml:"diversity_cutoff" validate:"min=0,max=1"`
}

// KnowledgeConfig tunes knowledge retrieval. Sources are extra corpus
// documents (file paths or URLs) ingested at startup on top of the
// built-in passages.
type KnowledgeConfig struct {
	TopK    int      `mapstructure:"top_k" yaml:"top_k" validate:"min=1,max=20"`
	Sources []string `mapstructure:"sources" yaml:"sources,omitempty"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}
