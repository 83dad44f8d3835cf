package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendArena, cfg.Backend)
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Backend = BackendBlob
	cfg.Blob.Path = "/var/lib/credstore"
	cfg.Blob.Key = "wifi"
	cfg.Port = 9300
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBlob, loaded.Backend)
	assert.Equal(t, "/var/lib/credstore", loaded.Blob.Path)
	assert.Equal(t, "wifi", loaded.Blob.Key)
	assert.Equal(t, 9300, loaded.Port)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveConfig(DefaultConfig(), path))

	t.Setenv("CREDSTORE_BACKEND", BackendBlob)
	t.Setenv("CREDSTORE_PORT", "9400")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBlob, loaded.Backend)
	assert.Equal(t, 9400, loaded.Port)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default ok", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Backend = "nvram" }, true},
		{"arena without path", func(c *Config) { c.Arena.Path = "" }, true},
		{"negative offset", func(c *Config) { c.Arena.Offset = -1 }, true},
		{"blob without key", func(c *Config) {
			c.Backend = BackendBlob
			c.Blob.Key = ""
		}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBootstrapConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := BootstrapConfig(path, dir)
	require.NoError(t, err)
	assert.Len(t, cfg.APIKey, 64) // 32 random bytes, hex encoded
	assert.Equal(t, filepath.Join(dir, "credentials.bin"), cfg.Arena.Path)
	assert.True(t, ConfigExists(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestGenerateSecureKey(t *testing.T) {
	a, err := GenerateSecureKey(16)
	require.NoError(t, err)
	b, err := GenerateSecureKey(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
