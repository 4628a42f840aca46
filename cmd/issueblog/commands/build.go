package commands

import (
	"context"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/issueblog/internal/build"
	"git.home.luguber.info/inful/issueblog/internal/config"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
	"git.home.luguber.info/inful/issueblog/internal/metrics"
	"git.home.luguber.info/inful/issueblog/internal/notify"
	"git.home.luguber.info/inful/issueblog/internal/publish"
)

// BuildFlags are shared by every command that runs builds.
type BuildFlags struct {
	OutputRoot         string `name:"output-root" short:"o" help:"Directory the site is written to (default: current directory)" type:"path"`
	IncrementalSitemap bool   `name:"incremental-sitemap" help:"Rewrite sitemap.xml after every post"`
	Commit             bool   `help:"Commit generated files to the git worktree of the output root"`
	CommitMessage      string `name:"commit-message" help:"Message for --commit" default:"Update blog"`
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildFlags `embed:""`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, b.OutputRoot, b.IncrementalSitemap)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	_, err = RunBuild(ctx, cfg, b.BuildFlags)
	return err
}

// RunBuild runs one build and its follow-up steps: metrics textfile, build
// notification and the optional commit. Only the build itself and the
// commit can fail the run; a failed notification is recorded on the report.
func RunBuild(ctx context.Context, cfg config.SiteConfig, flags BuildFlags) (*build.Report, error) {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prometheus *metrics.PrometheusRecorder
	if cfg.MetricsFile != "" {
		prometheus = metrics.NewPrometheusRecorder(prom.NewRegistry())
		recorder = prometheus
	}

	report, err := build.NewService(cfg).WithRecorder(recorder).Run(ctx)

	if prometheus != nil {
		path := cfg.ResolvePath(cfg.MetricsFile)
		if werr := prometheus.WriteTextfile(path); werr != nil {
			slog.Warn("Metrics not written", logfields.Path(path), logfields.Error(werr))
		} else {
			slog.Debug("Metrics written", logfields.Path(path))
		}
	}
	if err != nil {
		return report, err
	}

	if nerr := notify.Send(ctx, cfg.NATSURL, cfg.NATSSubject, eventFromReport(report)); nerr != nil {
		report.NotifyError = nerr.Error()
	}

	if flags.Commit {
		files := append([]string(nil), report.Files...)
		if cfg.ReportFile != "" {
			files = append(files, cfg.ResolvePath(cfg.ReportFile))
		}
		if _, err := publish.Commit(cfg.Root, files, publish.Options{Message: flags.CommitMessage}); err != nil {
			return report, err
		}
	}
	return report, nil
}

func eventFromReport(r *build.Report) notify.Event {
	posts := make([]int, 0, len(r.Posts))
	for _, p := range r.Posts {
		posts = append(posts, p.Number)
	}
	return notify.Event{
		RunID:      r.RunID,
		Repository: r.Repository,
		Label:      r.Label,
		Outcome:    string(r.Outcome),
		Published:  r.Published,
		Skipped:    r.Skipped,
		Posts:      posts,
		Files:      r.Files,
		FinishedAt: r.End,
		DurationMS: r.Duration().Milliseconds(),
	}
}
