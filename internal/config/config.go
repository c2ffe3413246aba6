// Package config loads runtime settings from the environment, with an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	OllamaURL   string        `env:"MONSTERFORGE_OLLAMA_URL" envDefault:"http://localhost:11434"`
	Model       string        `env:"MONSTERFORGE_MODEL" envDefault:"llama3.2"`
	Temperature float64       `env:"MONSTERFORGE_TEMPERATURE" envDefault:"0.8"`
	NumPredict  int           `env:"MONSTERFORGE_NUM_PREDICT" envDefault:"400"`
	Timeout     time.Duration `env:"MONSTERFORGE_TIMEOUT" envDefault:"60s"`
	DBPath      string        `env:"MONSTERFORGE_DB" envDefault:"data/monsters.db"`
	Retries     int           `env:"MONSTERFORGE_RETRIES" envDefault:"3"`
	RetryDelay  time.Duration `env:"MONSTERFORGE_RETRY_DELAY" envDefault:"2s"`
	LogLevel    slog.Level    `env:"MONSTERFORGE_LOG_LEVEL" envDefault:"INFO"`
}

// Load reads settings from the environment. When envFile names an existing
// .env file it is loaded first; a missing file is not an error, the
// environment alone is enough.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
