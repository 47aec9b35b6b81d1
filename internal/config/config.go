package config

import (
	"os"
	"strconv"
	"strings"

	"listingdash/internal/errors"
)

// DefaultDatasetPaths are checked in order when DATASET_PATHS is unset
var DefaultDatasetPaths = []string{"data/AB_NYC_2019.csv", "../data/AB_NYC_2019.csv"}

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Map       MapConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset location settings
type DataConfig struct {
	CandidatePaths []string
}

// MapConfig controls the sampled listing map
type MapConfig struct {
	SampleSize int
	SampleSeed int64
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			CandidatePaths: getEnvListOrDefault("DATASET_PATHS", DefaultDatasetPaths),
		},
		Map: MapConfig{
			SampleSize: getEnvIntOrDefault("MAP_SAMPLE_SIZE", 2000),
			SampleSeed: int64(getEnvIntOrDefault("MAP_SAMPLE_SEED", 42)),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if len(config.Data.CandidatePaths) == 0 {
		return errors.ConfigInvalid("at least one dataset path is required")
	}
	if config.Map.SampleSize <= 0 {
		return errors.ConfigInvalid("MAP_SAMPLE_SIZE must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
