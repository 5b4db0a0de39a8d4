package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// no env vars set: every field must fall back to its default
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 111, cfg.ValidatorEnvConfig.Netuid)
	assert.Equal(t, "dev", cfg.ValidatorEnvConfig.Environment)
	assert.NotEmpty(t, cfg.ValidatorEnvConfig.StateFile)
	assert.Positive(t, cfg.ValidatorEnvConfig.SampleSize)
	assert.Positive(t, cfg.ClientEnvConfig.ClientTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("NETUID", "42")
	t.Setenv("ENVIRONMENT", "prod")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.ValidatorEnvConfig.Netuid)
	assert.Equal(t, "prod", cfg.ValidatorEnvConfig.Environment)
}

func TestNewIntervalConfig(t *testing.T) {
	assert.Equal(t, DevIntervalConfig, NewIntervalConfig("dev"))
	assert.Equal(t, TestIntervalConfig, NewIntervalConfig("TEST"))
	assert.Equal(t, ProdIntervalConfig, NewIntervalConfig("prod"))
	// unknown environments fall back to dev intervals
	assert.Equal(t, DevIntervalConfig, NewIntervalConfig("staging"))
}

func TestWeightIntervalIsMultipleOfScoringInterval(t *testing.T) {
	for _, ic := range []*IntervalConfig{DevIntervalConfig, TestIntervalConfig, ProdIntervalConfig} {
		assert.Zero(t, ic.WeightInterval%ic.ScoringInterval)
	}
}
