package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/launchdeck/pkg/errors"
)

// isolate points the default config dir and the working directory at empty
// temp dirs so the developer's own files never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, k := range []string{"API_URL", "API_KEY", "HTTP_TIMEOUT", "RETRY_ATTEMPTS", "RETRY_DELAY",
		"LAUNCHES_TTL", "STATS_TTL", "SERIES_TTL", "USE_FALLBACK"} {
		t.Setenv(EnvPrefix+k, "")
		os.Unsetenv(EnvPrefix + k)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 2*time.Minute, cfg.StatsTTL)
}

func TestLoadDefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "launchdeck", "config.toml"), `
api_url = "https://launches.example.com"
retry_attempts = 5
stats_ttl = "30s"
use_fallback = true
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://launches.example.com", cfg.APIURL)
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.StatsTTL)
	assert.True(t, cfg.UseFallback)
	assert.Equal(t, time.Minute, cfg.LaunchesTTL, "unset keys keep defaults")
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
api_url = "https://from-file.example.com"
api_key = "file-key"
retry_attempts = 2
`)
	writeFile(t, filepath.Join(dir, ".env"), "LAUNCHDECK_API_KEY=dotenv-key\nLAUNCHDECK_RETRY_ATTEMPTS=4\n")
	t.Setenv("LAUNCHDECK_RETRY_ATTEMPTS", "6")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-file.example.com", cfg.APIURL, "file beats defaults")
	assert.Equal(t, "dotenv-key", cfg.APIKey, ".env beats file")
	assert.Equal(t, 6, cfg.RetryAttempts, "real environment beats .env")
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `api_ulr = "typo"`)

	_, err := Load(path)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("LAUNCHDECK_STATS_TTL", "soon")

	_, err := Load("")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad url", func(c *Config) { c.APIURL = "localhost:3000" }},
		{"ftp url", func(c *Config) { c.APIURL = "ftp://example.com" }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"zero attempts", func(c *Config) { c.RetryAttempts = 0 }},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }},
		{"zero ttl", func(c *Config) { c.SeriesTTL = 0 }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
		})
	}
}
