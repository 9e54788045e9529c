package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// Loader handles loading configuration from files.
type Loader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperLoader implements Loader using Viper.
type viperLoader struct {
	validator Validator
}

// NewLoader creates a new Loader instance.
func NewLoader(validator Validator) Loader {
	return &viperLoader{validator: validator}
}

// Load reads, interpolates, and validates the config file at path.
func (l *viperLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	interpolateConfig(&cfg)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads the config file at path, or returns the
// defaults when the file does not exist.
func (l *viperLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := l.validator.Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return l.Load(path)
}

// setDefaults mirrors DefaultConfig so a partial file inherits the rest.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("core.home_dir", def.Core.HomeDir)
	v.SetDefault("core.data_dir", def.Core.DataDir)
	v.SetDefault("core.timeout", def.Core.Timeout)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("database.max_connections", def.Database.MaxConnections)
	v.SetDefault("database.timeout", def.Database.Timeout)
	v.SetDefault("database.wal_mode", def.Database.WALMode)
	v.SetDefault("server.address", def.Server.Address)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)
	v.SetDefault("llm.provider", def.LLM.Provider)
	v.SetDefault("llm.model", def.LLM.Model)
	v.SetDefault("llm.temperature", def.LLM.Temperature)
	v.SetDefault("llm.max_tokens", def.LLM.MaxTokens)
	v.SetDefault("embedder.provider", def.Embedder.Provider)
	v.SetDefault("embedder.model", def.Embedder.Model)
	v.SetDefault("embedder.dimensions", def.Embedder.Dimensions)
	v.SetDefault("ranker.similarity_threshold", def.Ranker.SimilarityThreshold)
	v.SetDefault("ranker.diversity_cutoff", def.Ranker.DiversityCutoff)
	v.SetDefault("knowledge.top_k", def.Knowledge.TopK)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}

// interpolateConfig expands ${VAR_NAME} references in string fields.
func interpolateConfig(cfg *Config) {
	cfg.Core.HomeDir = interpolateString(cfg.Core.HomeDir)
	cfg.Core.DataDir = interpolateString(cfg.Core.DataDir)
	cfg.Database.Path = interpolateString(cfg.Database.Path)
	cfg.Server.Address = interpolateString(cfg.Server.Address)
	cfg.LLM.APIKey = interpolateString(cfg.LLM.APIKey)
	cfg.LLM.BaseURL = interpolateString(cfg.LLM.BaseURL)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateString replaces ${VAR_NAME} with environment variable
// values, leaving unknown references untouched.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}
		return match
	})
}
