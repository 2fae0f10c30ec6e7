// Package config resolves runtime settings from flags, the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/abhisek/masterly/internal/llm"
	"github.com/abhisek/masterly/internal/logging"
	"github.com/abhisek/masterly/internal/store"
)

// Overrides are values given on the command line. Empty fields fall
// through to the environment.
type Overrides struct {
	DBPath   string
	LogFile  string
	LogLevel string
	EnvFile  string
}

type Config struct {
	DBPath string
	Log    logging.Config

	// LLM is usable only when LLMConfigured is true.
	LLM           llm.Config
	LLMConfigured bool
}

// Load reads the .env file (when present) and resolves every setting.
// Variables already in the environment win over the file.
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	return resolve(o, os.Getenv)
}

func resolve(o Overrides, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	switch {
	case o.DBPath != "":
		cfg.DBPath = o.DBPath
		if err := store.EnsureDir(o.DBPath); err != nil {
			return nil, fmt.Errorf("db dir: %w", err)
		}
	default:
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("db path: %w", err)
		}
		cfg.DBPath = p
	}

	cfg.Log = logging.Config{
		Mode:  getenvDefault(getenv, "MASTERLY_LOG_MODE", "prod"),
		Level: firstNonEmpty(o.LogLevel, getenv("MASTERLY_LOG_LEVEL"), "info"),
		File:  firstNonEmpty(o.LogFile, getenv("MASTERLY_LOG_FILE")),
	}
	if cfg.Log.File == "" {
		p, err := DefaultLogPath(getenv)
		if err != nil {
			return nil, err
		}
		cfg.Log.File = p
	}

	var ok bool
	if cfg.LLM, ok = llm.FromEnv(getenv); !ok {
		cfg.LLM, ok = llm.Discover(getenv)
	}
	cfg.LLMConfigured = ok

	return cfg, nil
}

// DefaultLogPath is $XDG_STATE_HOME/masterly/masterly.log, falling back
// to ~/.local/state. The directory is created.
func DefaultLogPath(getenv func(string) string) (string, error) {
	state := getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		state = filepath.Join(home, ".local", "state")
	}
	p := filepath.Join(state, "masterly", "masterly.log")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("log dir: %w", err)
	}
	return p, nil
}

func getenvDefault(getenv func(string) string, k, fallback string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
