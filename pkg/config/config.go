// Package config loads launchdeck settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, by default $XDG_CONFIG_HOME/launchdeck/config.toml
//  3. a .env file in the working directory (never overrides variables that
//     are already set)
//  4. environment variables prefixed with LAUNCHDECK_
//
// Example config.toml:
//
//	api_url = "https://launches.example.com"
//	retry_attempts = 5
//	stats_ttl = "30s"
//	use_fallback = true
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	lderrors "github.com/matzehuels/launchdeck/pkg/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LAUNCHDECK_"

// Config holds every tunable setting.
type Config struct {
	APIURL string `toml:"api_url" env:"API_URL"`
	APIKey string `toml:"api_key" env:"API_KEY"`

	HTTPTimeout   time.Duration `toml:"http_timeout" env:"HTTP_TIMEOUT"`
	RetryAttempts int           `toml:"retry_attempts" env:"RETRY_ATTEMPTS"`
	RetryDelay    time.Duration `toml:"retry_delay" env:"RETRY_DELAY"`

	LaunchesTTL time.Duration `toml:"launches_ttl" env:"LAUNCHES_TTL"`
	StatsTTL    time.Duration `toml:"stats_ttl" env:"STATS_TTL"`
	SeriesTTL   time.Duration `toml:"series_ttl" env:"SERIES_TTL"`

	// UseFallback replaces unavailable series with sample data.
	UseFallback bool `toml:"use_fallback" env:"USE_FALLBACK"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:        "http://localhost:3000",
		HTTPTimeout:   10 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
		LaunchesTTL:   time.Minute,
		StatsTTL:      2 * time.Minute,
		SeriesTTL:     5 * time.Minute,
	}
}

// DefaultPath returns the default config file location. It returns "" when
// the user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "launchdeck", "config.toml")
}

// Load reads the configuration. An empty path means [DefaultPath], which
// may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, lderrors.Wrap(lderrors.ErrCodeInvalidConfig, err, "read .env")
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, lderrors.Wrap(lderrors.ErrCodeInvalidConfig, err, "parse environment")
	}

	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return lderrors.Wrap(lderrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return lderrors.New(lderrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if err := lderrors.ValidateURL(c.APIURL); err != nil {
		return err
	}
	switch {
	case c.HTTPTimeout <= 0:
		return lderrors.New(lderrors.ErrCodeInvalidConfig, "http_timeout must be positive")
	case c.RetryAttempts < 1:
		return lderrors.New(lderrors.ErrCodeInvalidConfig, "retry_attempts must be at least 1")
	case c.RetryDelay < 0:
		return lderrors.New(lderrors.ErrCodeInvalidConfig, "retry_delay must not be negative")
	case c.LaunchesTTL <= 0, c.StatsTTL <= 0, c.SeriesTTL <= 0:
		return lderrors.New(lderrors.ErrCodeInvalidConfig, "cache TTLs must be positive")
	}
	return nil
}
