package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

const namespace = "issueblog"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg               *prom.Registry
	stageDuration     *prom.HistogramVec
	buildDuration     prom.Histogram
	stageResults      *prom.CounterVec
	buildOutcome      *prom.CounterVec
	issuesFetched     prom.Gauge
	postsPublished    prom.Counter
	postsSkipped      prom.Counter
	markdownFallbacks prom.Counter
	lastBuild         prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg, or
// on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		issuesFetched: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "issues_fetched",
			Help:      "Issues returned by the last fetch, pull requests included",
		}),
		postsPublished: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "posts_published_total",
			Help:      "Post pages written",
		}),
		postsSkipped: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "posts_skipped_total",
			Help:      "Issues not published (pull requests and drafts)",
		}),
		markdownFallbacks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "markdown_fallbacks_total",
			Help:      "Bodies published unconverted after a Markdown API failure",
		}),
		lastBuild: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time the last build finished",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.issuesFetched, pr.postsPublished, pr.postsSkipped, pr.markdownFallbacks, pr.lastBuild)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
	p.lastBuild.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetIssuesFetched(n int)  { p.issuesFetched.Set(float64(n)) }
func (p *PrometheusRecorder) AddPostsPublished(n int) { p.postsPublished.Add(float64(n)) }
func (p *PrometheusRecorder) AddPostsSkipped(n int)   { p.postsSkipped.Add(float64(n)) }
func (p *PrometheusRecorder) IncMarkdownFallback()    { p.markdownFallbacks.Inc() }

// WriteTextfile writes every registered metric to path in the text
// exposition format. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return errors.FileSystemError("failed to write metrics file").
			WithCause(err).
			WithContext("path", path).
			Warning().
			Build()
	}
	return nil
}
