// Package cli implements the launchdeck command-line interface.
//
// Every command reads through a single [launchapi.Service], so repeated
// lookups within one invocation (the browse view, series fan-out) are served
// from the in-memory cache. Configuration is loaded lazily on first use,
// which keeps completion and help working without a valid config.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/launchdeck/pkg/apiclient"
	"github.com/matzehuels/launchdeck/pkg/cache"
	"github.com/matzehuels/launchdeck/pkg/config"
	"github.com/matzehuels/launchdeck/pkg/launchapi"
	"github.com/matzehuels/launchdeck/pkg/metrics"
)

// appName is the application name used for display.
const appName = "launchdeck"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Interactive enables spinners. main sets it when stderr is a terminal.
	Interactive bool

	configPath  string
	verbose     bool
	showMetrics bool
	fallback    bool

	cfg     config.Config
	svc     *launchapi.Service
	metrics *metrics.Metrics
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Service Factory
// =============================================================================

// service builds the launch service on first use.
func (c *CLI) service() (*launchapi.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "api", cfg.APIURL, "retries", cfg.RetryAttempts, "fallback", cfg.UseFallback)

	clientOpts := []apiclient.Option{
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithLogger(c.Logger),
	}
	var storeOpts []cache.Option
	if c.showMetrics {
		c.metrics = metrics.New(prometheus.NewRegistry())
		c.metrics.Install()
		clientOpts = append(clientOpts, apiclient.WithHooks(c.metrics))
		storeOpts = append(storeOpts, cache.WithHooks(c.metrics))
	}

	svcOpts := []launchapi.Option{
		launchapi.WithRetry(cfg.RetryAttempts, cfg.RetryDelay),
		launchapi.WithTTLs(cfg.LaunchesTTL, cfg.StatsTTL, cfg.SeriesTTL),
		launchapi.WithLogger(c.Logger),
	}
	if cfg.UseFallback || c.fallback {
		svcOpts = append(svcOpts, launchapi.WithFallback(nil))
	}

	client := apiclient.New(cfg.APIURL, cfg.APIKey, clientOpts...)
	c.svc = launchapi.New(client, cache.New(storeOpts...), svcOpts...)
	return c.svc, nil
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// StderrIsTerminal reports whether spinners should be drawn.
func StderrIsTerminal() bool {
	return isTerminal(os.Stderr)
}
