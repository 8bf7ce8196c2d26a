package config

import (
	"os"
	"strconv"

	"gomice/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Impute ImputeConfig
	Paths  PathConfig
}

// ServerConfig holds the optional HTTP surface settings
type ServerConfig struct {
	Port string
}

// ImputeConfig holds the engine defaults used when the caller passes zero
// values
type ImputeConfig struct {
	Iterations int
	Chains     int
	Seed       int64
}

// PathConfig holds file system paths
type PathConfig struct {
	InputFile  string
	OutputFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("GOMICE_PORT", "8085"),
		},
		Impute: ImputeConfig{
			Iterations: getEnvInt("GOMICE_ITERATIONS", 3),
			Chains:     getEnvInt("GOMICE_CHAINS", 1),
			Seed:       getEnvInt64("GOMICE_SEED", 42),
		},
		Paths: PathConfig{
			InputFile:  os.Getenv("GOMICE_INPUT_FILE"),
			OutputFile: os.Getenv("GOMICE_OUTPUT_FILE"),
		},
	}

	if cfg.Impute.Iterations <= 0 {
		return nil, errors.ConfigInvalid("GOMICE_ITERATIONS must be positive")
	}
	if cfg.Impute.Chains <= 0 {
		return nil, errors.ConfigInvalid("GOMICE_CHAINS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
