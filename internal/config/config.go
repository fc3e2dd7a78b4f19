package config

import (
	"os"
	"strconv"

	"glyphchain/internal/errors"
)

// Config represents the complete application configuration. The tolerance
// bands were chosen empirically per experiment in the source analyses, so
// they are named, overridable parameters rather than fixed constants.
type Config struct {
	Paths      PathConfig
	Experiment ExperimentConfig
	Tolerances ToleranceConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	CorpusTSV    string
	InventoryTSV string
	OutputDir    string
}

// ExperimentConfig holds generation and aggregation settings
type ExperimentConfig struct {
	BaseSeed             int64
	Instantiations       int
	MaxConcurrent        int64
	MixingWeight         float64
	MinClassObservations int
	PassRateThreshold    float64
}

// ToleranceConfig holds the per-metric pass bands, anchored to the real
// corpus's own metric values.
type ToleranceConfig struct {
	// B1Absolute is the absolute band around the real spectral gap.
	B1Absolute float64
	// B3MaxViolations is the largest acceptable violation count (0 = exact).
	B3MaxViolations float64
	// B5Relative is the relative band around the real divergence.
	B5Relative float64
	// B5AbsoluteFloor replaces the relative band when the real divergence
	// is zero, where a relative band would degenerate.
	B5AbsoluteFloor float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Paths: PathConfig{
			CorpusTSV:    os.Getenv("CORPUS_TSV"),
			InventoryTSV: os.Getenv("INVENTORY_TSV"),
			OutputDir:    getEnv("OUTPUT_DIR", "results"),
		},
		Experiment: ExperimentConfig{
			BaseSeed:             getInt64("BASE_SEED", 42),
			Instantiations:       getInt("INSTANTIATIONS", 20),
			MaxConcurrent:        getInt64("MAX_CONCURRENT", 4),
			MixingWeight:         getFloat("MIXING_WEIGHT", 0.85),
			MinClassObservations: getInt("MIN_CLASS_OBS", 5),
			PassRateThreshold:    getFloat("PASS_RATE_THRESHOLD", 0.8),
		},
		Tolerances: ToleranceConfig{
			B1Absolute:      getFloat("B1_TOLERANCE", 0.05),
			B3MaxViolations: getFloat("B3_MAX_VIOLATIONS", 0),
			B5Relative:      getFloat("B5_REL_TOLERANCE", 0.50),
			B5AbsoluteFloor: getFloat("B5_ABS_FLOOR", 0.01),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks parameter ranges.
func (c *Config) Validate() error {
	if c.Experiment.Instantiations < 1 {
		return errors.ConfigInvalid("INSTANTIATIONS must be at least 1")
	}
	if c.Experiment.MaxConcurrent < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT must be at least 1")
	}
	if c.Experiment.MixingWeight < 0 || c.Experiment.MixingWeight > 1 {
		return errors.ConfigInvalid("MIXING_WEIGHT must be in [0,1]")
	}
	if c.Experiment.PassRateThreshold < 0 || c.Experiment.PassRateThreshold > 1 {
		return errors.ConfigInvalid("PASS_RATE_THRESHOLD must be in [0,1]")
	}
	if c.Tolerances.B1Absolute < 0 || c.Tolerances.B5Relative < 0 {
		return errors.ConfigInvalid("tolerance bands must be non-negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
