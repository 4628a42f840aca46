package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
	"git.home.luguber.info/inful/issueblog/internal/metrics"
)

// StageName identifies a build stage.
type StageName string

const (
	StageReadTemplates StageName = "read_templates"
	StageFetchIssues   StageName = "fetch_issues"
	StageRenderPosts   StageName = "render_posts"
	StageWriteIndex    StageName = "write_index"
	StageWriteFeed     StageName = "write_feed"
	StageWriteSitemap  StageName = "write_sitemap"
	StageInjectLanding StageName = "inject_landing"
	StageWriteReport   StageName = "write_report"
)

// Stage is one step of the build operating on the shared run state.
type Stage func(ctx context.Context, st *runState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// runStages executes stages in order, recording timing and stopping on the
// first error or cancellation.
func runStages(ctx context.Context, st *runState, stages []StageDef, recorder metrics.Recorder) error {
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			recorder.IncStageResult(string(def.Name), metrics.ResultCanceled)
			st.report.Outcome = OutcomeCanceled
			return errors.WrapError(err, errors.CategoryInternal, "build canceled").
				WithContext("stage", string(def.Name)).
				Build()
		}

		degraded := st.report.degradations()
		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)
		st.report.recordStage(def.Name, dur)
		recorder.ObserveStageDuration(string(def.Name), dur)

		if err != nil {
			result := metrics.ResultFatal
			st.report.Outcome = OutcomeFailed
			if ctx.Err() != nil {
				result = metrics.ResultCanceled
				st.report.Outcome = OutcomeCanceled
			}
			recorder.IncStageResult(string(def.Name), result)
			slog.Debug("Stage failed", logfields.Stage(string(def.Name)), logfields.Duration(dur))
			return err
		}
		result := metrics.ResultSuccess
		if st.report.degradations() > degraded {
			result = metrics.ResultWarning
		}
		recorder.IncStageResult(string(def.Name), result)
		slog.Debug("Stage completed", logfields.Stage(string(def.Name)), logfields.Duration(dur))
	}
	return nil
}
