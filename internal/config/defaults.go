package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
	"github.com/erandawijewantha/personalized-health-coach/internal/llm"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	homeDir := getDefaultHomeDir()

	return &Config{
		Core: CoreConfig{
			HomeDir: homeDir,
			DataDir: filepath.Join(homeDir, "data"),
			Timeout: 2 * time.Minute,
			Debug:   false,
		},
		Database: DBConfig{
			Path:           filepath.Join(homeDir, "healthcoach.db"),
			MaxConnections: 10,
			Timeout:        30 * time.Second,
			WALMode:        true,
		},
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		LLM:      llm.DefaultProviderConfig(),
		Embedder: embedding.DefaultConfig(),
		Ranker: RankerConfig{
			SimilarityThreshold: 0.7,
			DiversityCutoff:     0.85,
		},
		Knowledge: KnowledgeConfig{
			TopK: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func getDefaultHomeDir() string {
	if dir := os.Getenv("HEALTHCOACH_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healthcoach"
	}
	return filepath.Join(home, ".healthcoach")
}
