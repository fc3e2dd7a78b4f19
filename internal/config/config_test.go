package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Experiment.BaseSeed)
	assert.Equal(t, 20, cfg.Experiment.Instantiations)
	assert.Equal(t, 0.85, cfg.Experiment.MixingWeight)
	assert.Equal(t, 5, cfg.Experiment.MinClassObservations)
	assert.Equal(t, 0.05, cfg.Tolerances.B1Absolute)
	assert.Equal(t, 0.0, cfg.Tolerances.B3MaxViolations)
	assert.Equal(t, 0.50, cfg.Tolerances.B5Relative)
	assert.Equal(t, "results", cfg.Paths.OutputDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BASE_SEED", "1234")
	t.Setenv("INSTANTIATIONS", "50")
	t.Setenv("B1_TOLERANCE", "0.1")
	t.Setenv("OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1234), cfg.Experiment.BaseSeed)
	assert.Equal(t, 50, cfg.Experiment.Instantiations)
	assert.Equal(t, 0.1, cfg.Tolerances.B1Absolute)
	assert.Equal(t, "/tmp/out", cfg.Paths.OutputDir)
}

func TestLoadUnparseableValueFallsBack(t *testing.T) {
	t.Setenv("INSTANTIATIONS", "many")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Experiment.Instantiations)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero instantiations", func(c *Config) { c.Experiment.Instantiations = 0 }},
		{"zero concurrency", func(c *Config) { c.Experiment.MaxConcurrent = 0 }},
		{"mixing weight above one", func(c *Config) { c.Experiment.MixingWeight = 1.5 }},
		{"negative pass threshold", func(c *Config) { c.Experiment.PassRateThreshold = -0.1 }},
		{"negative tolerance", func(c *Config) { c.Tolerances.B1Absolute = -0.01 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
