package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/issueblog/internal/config"
	"git.home.luguber.info/inful/issueblog/internal/github"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
	"git.home.luguber.info/inful/issueblog/internal/markdown"
	"git.home.luguber.info/inful/issueblog/internal/metrics"
	"git.home.luguber.info/inful/issueblog/internal/site"
	"git.home.luguber.info/inful/issueblog/internal/templates"
)

// IssueSource lists the issues to publish.
type IssueSource interface {
	ListIssues(ctx context.Context, repo, label string) ([]github.Issue, error)
}

// Service runs builds for one resolved configuration.
type Service struct {
	cfg       config.SiteConfig
	issues    IssueSource
	converter markdown.Converter
	recorder  metrics.Recorder
	now       func() time.Time
	newRunID  func() string
}

// NewService wires the GitHub client and the configured Markdown converter.
func NewService(cfg config.SiteConfig) *Service {
	client := github.NewClient(cfg.APIURL, cfg.Token)
	var conv markdown.Converter = markdown.GitHubConverter{Client: client, Repo: cfg.Repository}
	if cfg.Renderer == config.RendererGoldmark {
		conv = markdown.NewGoldmarkConverter()
	}
	return &Service{
		cfg:       cfg,
		issues:    client,
		converter: conv,
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// WithIssueSource replaces the issue fetcher (for testing).
func (s *Service) WithIssueSource(src IssueSource) *Service {
	s.issues = src
	return s
}

// WithConverter replaces the Markdown converter.
func (s *Service) WithConverter(conv markdown.Converter) *Service {
	s.converter = conv
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithClock sets the source of "now" used for non-post timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// runState is what the stages share during one run.
type runState struct {
	cfg      config.SiteConfig
	now      time.Time
	issues   IssueSource
	pipeline *markdown.Pipeline
	recorder metrics.Recorder

	shell    templates.Shell
	renderer *site.Renderer
	fetched  []github.Issue
	posts    []site.Post
	report   *Report
}

// Run executes every stage once. The report is returned even when the
// build fails, with Outcome and Error set.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := s.now()
	report := newReport(s.newRunID(), start)
	report.Repository = s.cfg.Repository
	report.Label = s.cfg.Label

	st := &runState{
		cfg:      s.cfg,
		now:      start,
		issues:   s.issues,
		pipeline: markdown.NewPipeline(s.converter, nil),
		recorder: s.recorder,
		report:   report,
	}

	log := slog.With(logfields.RunID(report.RunID))
	log.Info("Build started",
		logfields.Repository(s.cfg.Repository),
		logfields.Label(s.cfg.Label),
		logfields.Renderer(string(s.cfg.Renderer)),
		logfields.Path(s.cfg.Root))

	err := runStages(ctx, st, s.stages(), s.recorder)

	report.End = time.Now()
	if err != nil {
		report.Error = err.Error()
	}
	report.deriveOutcome()
	s.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))

	if err != nil {
		return report, err
	}
	log.Info("Build completed",
		logfields.Count(report.Published),
		slog.String("outcome", string(report.Outcome)),
		logfields.Duration(report.Duration()))
	return report, nil
}

func (s *Service) stages() []StageDef {
	return []StageDef{
		{StageReadTemplates, stageReadTemplates},
		{StageFetchIssues, stageFetchIssues},
		{StageRenderPosts, stageRenderPosts},
		{StageWriteIndex, stageWriteIndex},
		{StageWriteFeed, stageWriteFeed},
		{StageWriteSitemap, stageWriteSitemap},
		{StageInjectLanding, stageInjectLanding},
		{StageWriteReport, stageWriteReport},
	}
}
