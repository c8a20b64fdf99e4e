package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tutorly/roster/internal/logging"
)

// DefaultEnvFile is read when TUTORLY_ENV_FILE is not set. A missing default
// file is not an error.
const DefaultEnvFile = ".env"

// Config captures environment driven configuration values for the roster shell.
type Config struct {
	DatabaseDSN string
	LogLevel    slog.Level
	LogFormat   string
	SeedSample  bool
	EnvFile     string
}

// Load parses configuration values from an optional env file and the process
// environment.
//
// Variables already present in the environment win over the env file. The
// loader applies defaults for every key and reports all invalid entries in a
// single error.
func Load() (Config, error) {
	cfg := Config{
		DatabaseDSN: "tutorly.db",
		LogLevel:    slog.LevelWarn,
		LogFormat:   logging.FormatText,
		SeedSample:  true,
	}

	invalid := make([]string, 0, 4)

	envFile, explicit := os.LookupEnv("TUTORLY_ENV_FILE")
	envFile = strings.TrimSpace(envFile)
	if envFile == "" {
		envFile, explicit = DefaultEnvFile, false
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			invalid = append(invalid, "TUTORLY_ENV_FILE")
		}
	} else {
		cfg.EnvFile = envFile
	}

	if dsn := strings.TrimSpace(os.Getenv("TUTORLY_DATABASE_DSN")); dsn != "" {
		cfg.DatabaseDSN = dsn
	}

	if levelValue := strings.TrimSpace(os.Getenv("TUTORLY_LOG_LEVEL")); levelValue != "" {
		level, err := logging.ParseLevel(levelValue)
		if err != nil {
			invalid = append(invalid, "TUTORLY_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if format := strings.TrimSpace(os.Getenv("TUTORLY_LOG_FORMAT")); format != "" {
		if !logging.ValidFormat(format) {
			invalid = append(invalid, "TUTORLY_LOG_FORMAT")
		} else {
			cfg.LogFormat = strings.ToLower(format)
		}
	}

	if seedValue := strings.TrimSpace(os.Getenv("TUTORLY_SEED_SAMPLE")); seedValue != "" {
		seed, err := strconv.ParseBool(seedValue)
		if err != nil {
			invalid = append(invalid, "TUTORLY_SEED_SAMPLE")
		} else {
			cfg.SeedSample = seed
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
