package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/schedule"
)

// ScheduleCmd implements the 'schedule' command.
type ScheduleCmd struct {
	BuildFlags `embed:""`
	Every      time.Duration `help:"Interval between builds" default:"1h"`
}

func (s *ScheduleCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, s.OutputRoot, s.IncrementalSitemap)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	sched, err := schedule.New(s.Every, func(ctx context.Context) error {
		_, err := RunBuild(ctx, cfg, s.BuildFlags)
		return err
	})
	if err != nil {
		return err
	}
	return sched.Run(ctx)
}
