package commands

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/logfields"
	"git.home.luguber.info/inful/issueblog/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags `embed:""`
	Debounce   time.Duration `help:"Quiet period before a rebuild" default:"500ms"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, w.OutputRoot, w.IncrementalSitemap)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	rebuild := func(ctx context.Context) error {
		_, err := RunBuild(ctx, cfg, w.BuildFlags)
		return err
	}
	// A broken first build is reported but the watcher still starts so a
	// template fix can recover it.
	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := watch.New(
		[]string{cfg.OutputPath(cfg.TemplatesDir)},
		[]string{cfg.OutputPath(cfg.LandingPage)},
		w.Debounce,
		rebuild,
	)
	if err != nil {
		return err
	}
	err = watcher.Run(ctx)
	slog.Info("Watcher stopped")
	return err
}
