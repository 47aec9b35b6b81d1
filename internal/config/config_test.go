package config

import (
	"testing"

	"listingdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DATASET_PATHS", "MAP_SAMPLE_SIZE", "MAP_SAMPLE_SEED", "PPROF_ENABLED", "PPROF_PORT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, []string{"data/AB_NYC_2019.csv", "../data/AB_NYC_2019.csv"}, cfg.Data.CandidatePaths)
	assert.Equal(t, 2000, cfg.Map.SampleSize)
	assert.Equal(t, int64(42), cfg.Map.SampleSeed)
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATASET_PATHS", " /srv/a.csv , ,/srv/b.csv")
	t.Setenv("MAP_SAMPLE_SIZE", "500")
	t.Setenv("MAP_SAMPLE_SEED", "7")
	t.Setenv("PPROF_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"/srv/a.csv", "/srv/b.csv"}, cfg.Data.CandidatePaths)
	assert.Equal(t, 500, cfg.Map.SampleSize)
	assert.Equal(t, int64(7), cfg.Map.SampleSeed)
	assert.True(t, cfg.Profiling.Enabled)
}

func TestLoadRejectsBadSampleSize(t *testing.T) {
	t.Setenv("MAP_SAMPLE_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestDefaultPathsNotAliased(t *testing.T) {
	t.Setenv("DATASET_PATHS", "")

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Data.CandidatePaths[0] = "changed"

	assert.Equal(t, "data/AB_NYC_2019.csv", DefaultDatasetPaths[0])
}

func TestLoadRejectsUnknownGinMode(t *testing.T) {
	t.Setenv("GIN_MODE", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigInvalid))
}
