package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/issueblog/internal/config"
	"git.home.luguber.info/inful/issueblog/internal/foundation"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path (default: issueblog.yaml when present)" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build    BuildCmd    `cmd:"" default:"withargs" help:"Fetch labelled issues and write the blog"`
	Watch    WatchCmd    `cmd:"" help:"Build, then rebuild whenever templates or the landing page change"`
	Schedule ScheduleCmd `cmd:"" help:"Rebuild on a fixed interval until interrupted"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level, err := parseLogLevel(c.Verbose)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

var logLevels = foundation.NewNormalizer(map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// parseLogLevel honours ISSUEBLOG_LOG_LEVEL first, then the verbose flag.
func parseLogLevel(verbose bool) (slog.Level, error) {
	if raw := os.Getenv("ISSUEBLOG_LOG_LEVEL"); raw != "" {
		return logLevels.NormalizeWithError("ISSUEBLOG_LOG_LEVEL", raw)
	}
	if verbose {
		return slog.LevelDebug, nil
	}
	return slog.LevelInfo, nil
}

// loadConfig resolves the site configuration for one command invocation.
func loadConfig(root *CLI, outputRoot string, incrementalSitemap bool) (config.SiteConfig, error) {
	return config.Load(config.Options{
		File:               root.Config,
		Root:               outputRoot,
		IncrementalSitemap: incrementalSitemap,
	})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
