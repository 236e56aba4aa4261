package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Zero values get defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultAPIURL, cfg.APIURL)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultDownloadTimeout, cfg.DownloadTimeout)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)

	// Bad API URL.
	cfg = &Config{APIURL: "not a url"}
	require.Error(t, Validate(cfg))

	// Bad log level.
	cfg = &Config{LogLevel: "chatty"}
	require.Error(t, Validate(cfg))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		APIURL:          "https://github.example.com/api/v3/",
		Token:           "ghp_secret",
		Timeout:         5 * time.Second,
		DownloadTimeout: time.Minute,
		License:         "MIT",
		LogLevel:        "debug",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, info.IsDir())
}

// TestLoad_Missing distinguishes the optional default file from an explicit path.
func TestLoad_Missing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = Load("does-not-exist.yaml")
	require.Error(t, err)
}
