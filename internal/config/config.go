package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIURL string `envconfig:"API_URL" default:"http://localhost:5000"`
	Debug  bool   `envconfig:"DEBUG" default:"false"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// SimilarityThreshold is the starting cutoff for client-side
	// filtering of similarity-search results. Adjustable at runtime
	// from the chat UI.
	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.4"`

	// LogFile, when set, receives JSON log records from the chat UI's
	// background operations. Writing them to stderr would corrupt the
	// alt-screen display.
	LogFile string `envconfig:"LOG_FILE"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CRICPIX", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.SimilarityThreshold < 0 || cfg.SimilarityThreshold > 1 {
		return nil, fmt.Errorf("similarity threshold %.2f out of range [0,1]", cfg.SimilarityThreshold)
	}

	return &cfg, nil
}
