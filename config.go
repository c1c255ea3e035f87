package vinyasa

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DatabasePathKey = "VINYASA_DB_PATH"
	LogLevelKey     = "VINYASA_LOG_LEVEL"
	ComposerKey     = "VINYASA_COMPOSER"
)

type Config struct {
	DatabasePath string
	LogLevel     log.Level
	Composer     string
}

// LoadConfig reads .env (production) or .env.dev, then the environment.
func LoadConfig(isProd bool) (Config, error) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}

	config := Config{
		DatabasePath: os.Getenv(DatabasePathKey),
		LogLevel:     log.InfoLevel,
		Composer:     os.Getenv(ComposerKey),
	}

	if lvl := os.Getenv(LogLevelKey); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", LogLevelKey, err)
		}
		config.LogLevel = parsed
	}

	if config.DatabasePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("required environment variable: %s", DatabasePathKey)
		}
		config.DatabasePath = filepath.Join(home, ".vinyasa", "vinyasa.db")
	}

	if config.Composer == "" {
		config.Composer = "anchored"
	}

	return config, nil
}
