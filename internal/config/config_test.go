package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	require.NotNil(t, cfg)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, DefaultRPCURL, cfg.Network.RPC)
	assert.Equal(t, int64(1), cfg.Network.ChainID)
	assert.Equal(t, DefaultRegistry, cfg.Network.Registry)
	assert.Equal(t, DefaultParent, cfg.Network.Parent)
	assert.Equal(t, DefaultCollection, cfg.Assets.Collection)
	assert.Equal(t, DefaultPageSize, cfg.Assets.PageSize)
	assert.Equal(t, 5, cfg.Confirmation.PollIntervalSeconds)
	assert.Equal(t, "auto", cfg.Output.DefaultFormat)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := Path(dir)

	cfg := Defaults()
	cfg.Network.RPC = "http://localhost:8545"
	cfg.Assets.Collection = "testcollection"

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", loaded.Network.RPC)
	assert.Equal(t, "testcollection", loaded.Assets.Collection)

	// Fields absent from the file fall back to defaults
	assert.Equal(t, DefaultRegistry, loaded.Network.Registry)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadPartialFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := Path(dir)
	require.NoError(t, os.WriteFile(path, []byte("network:\n  rpc: http://example.test\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", cfg.Network.RPC)
	assert.Equal(t, DefaultParent, cfg.Network.Parent)
}

func TestGetKeyFile(t *testing.T) {
	t.Parallel()

	t.Run("relative path is rooted in home", func(t *testing.T) {
		t.Parallel()
		cfg := Defaults()
		cfg.Home = "/tmp/mfbldr-test"
		cfg.Signer.KeyFile = "key.age"
		assert.Equal(t, filepath.Join("/tmp/mfbldr-test", "key.age"), cfg.GetKeyFile())
	})

	t.Run("absolute path is kept", func(t *testing.T) {
		t.Parallel()
		cfg := Defaults()
		cfg.Signer.KeyFile = "/var/keys/key.age"
		assert.Equal(t, "/var/keys/key.age", cfg.GetKeyFile())
	})

	t.Run("empty defaults to key.age in home", func(t *testing.T) {
		t.Parallel()
		cfg := Defaults()
		cfg.Home = "/tmp/mfbldr-test"
		cfg.Signer.KeyFile = ""
		assert.Equal(t, filepath.Join("/tmp/mfbldr-test", "key.age"), cfg.GetKeyFile())
	})
}
