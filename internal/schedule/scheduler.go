// Package schedule runs builds on a fixed interval.
package schedule

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

// JobName names the periodic build in scheduler logs.
const JobName = "issueblog-build"

// Job is one scheduled build.
type Job func(ctx context.Context) error

// Scheduler wraps a gocron scheduler with a single periodic build job.
type Scheduler struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	job       Job
	runs      atomic.Int64
}

// New creates a scheduler running job every interval.
func New(interval time.Duration, job Job) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.ValidationError("schedule interval must be positive").
			WithContext("interval", interval.String()).
			Build()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create scheduler").Build()
	}
	return &Scheduler{scheduler: s, interval: interval, job: job}, nil
}

// Runs reports how many times the job has started.
func (s *Scheduler) Runs() int64 { return s.runs.Load() }

// Run starts the job immediately and then every interval until ctx is done.
// Runs never overlap; a tick that arrives during a build is rescheduled.
func (s *Scheduler) Run(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.execute(ctx) }),
		gocron.WithName(JobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to create periodic build job").Build()
	}

	slog.Info("Starting scheduler", slog.String("every", s.interval.String()))
	s.scheduler.Start()
	<-ctx.Done()

	slog.Info("Stopping scheduler")
	if err := s.scheduler.Shutdown(); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to stop scheduler").Build()
	}
	return nil
}

func (s *Scheduler) execute(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n := s.runs.Add(1)
	slog.Info("Executing scheduled build", slog.Int64("run", n))
	if err := s.job(ctx); err != nil {
		slog.Error("Scheduled build failed", slog.Int64("run", n), logfields.Error(err))
	}
}
