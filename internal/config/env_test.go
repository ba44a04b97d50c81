package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvironment(t *testing.T) {
	t.Run("rpc override", func(t *testing.T) {
		t.Setenv(EnvRPC, "  http://localhost:8545 ")
		cfg := Defaults()
		ApplyEnvironment(cfg)
		assert.Equal(t, "http://localhost:8545", cfg.Network.RPC)
	})

	t.Run("api key override", func(t *testing.T) {
		t.Setenv(EnvAssetAPIKey, "sekrit")
		cfg := Defaults()
		ApplyEnvironment(cfg)
		assert.Equal(t, "sekrit", cfg.Assets.APIKey)
	})

	t.Run("verbose override", func(t *testing.T) {
		t.Setenv(EnvVerbose, "yes")
		cfg := Defaults()
		ApplyEnvironment(cfg)
		assert.True(t, cfg.Output.Verbose)
	})

	t.Run("no_color forces never", func(t *testing.T) {
		t.Setenv(EnvNoColor, "1")
		cfg := Defaults()
		ApplyEnvironment(cfg)
		assert.Equal(t, "never", cfg.Output.Color)
	})

	t.Run("poll interval override", func(t *testing.T) {
		t.Setenv(EnvPollInterval, "2")
		cfg := Defaults()
		ApplyEnvironment(cfg)
		assert.Equal(t, 2, cfg.Confirmation.PollIntervalSeconds)
	})

	t.Run("invalid poll interval ignored", func(t *testing.T) {
		t.Setenv(EnvPollInterval, "zero")
		cfg := Defaults()
		ApplyEnvironment(cfg)
		assert.Equal(t, 5, cfg.Confirmation.PollIntervalSeconds)
	})
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	assert.True(t, parseBool("1"))
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool("YES"))
	assert.True(t, parseBool("on"))
	assert.False(t, parseBool("0"))
	assert.False(t, parseBool("no"))
	assert.False(t, parseBool(""))
}
