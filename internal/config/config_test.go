package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "medium", cfg.FontSize)
	assert.Equal(t, DefaultServiceURL, cfg.ServiceURL)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := &UserConfig{
		Theme:      "light",
		FontSize:   "large",
		ServiceURL: "http://stylist.local:9000",
		Logging:    &LoggingConfig{DebugMode: true, Level: "debug"},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.Theme)
	assert.Equal(t, "large", loaded.FontSize)
	assert.Equal(t, "http://stylist.local:9000", loaded.ServiceURL)
	require.NotNil(t, loaded.Logging)
	assert.True(t, loaded.Logging.DebugMode)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"neon","font_size":"huge"}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "medium", cfg.FontSize)
}

func TestResolvedServiceURL(t *testing.T) {
	cfg := &UserConfig{ServiceURL: "http://configured:8000"}
	assert.Equal(t, "http://configured:8000", cfg.ResolvedServiceURL())

	t.Setenv(EnvServiceURL, "http://override:9999")
	assert.Equal(t, "http://override:9999", cfg.ResolvedServiceURL())
}

func TestResolvedServiceURLDefault(t *testing.T) {
	cfg := &UserConfig{}
	assert.Equal(t, DefaultServiceURL, cfg.ResolvedServiceURL())
}
