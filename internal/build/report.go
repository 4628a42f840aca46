package build

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/site"
)

// Outcome is the final status of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// PostSummary is the per-post entry of a Report.
type PostSummary struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Fallback    bool   `json:"markdown_fallback,omitempty"`
}

// Report summarises one build run.
type Report struct {
	RunID      string    `json:"run_id"`
	Repository string    `json:"repository"`
	Label      string    `json:"label"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`

	IssuesFetched     int `json:"issues_fetched"`
	Published         int `json:"published"`
	Skipped           int `json:"skipped"`
	Drafts            int `json:"drafts"`
	MarkdownFallbacks int `json:"markdown_fallbacks"`

	Landing site.LandingResult `json:"landing,omitempty"`
	// Files are the written outputs, in write order.
	Files []string      `json:"files"`
	Posts []PostSummary `json:"posts"`

	StageDurations map[StageName]time.Duration `json:"-"`
	StageMillis    map[StageName]float64       `json:"stage_duration_ms"`

	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`

	// NotifyError is set by callers when the build event could not be sent.
	NotifyError string `json:"notify_error,omitempty"`
}

func newReport(runID string, start time.Time) *Report {
	return &Report{
		RunID:          runID,
		Start:          start,
		StageDurations: map[StageName]time.Duration{},
		StageMillis:    map[StageName]float64{},
		Posts:          []PostSummary{},
		Files:          []string{},
	}
}

func (r *Report) recordStage(name StageName, d time.Duration) {
	r.StageDurations[name] = d
	r.StageMillis[name] = float64(d.Microseconds()) / 1000.0
}

func (r *Report) addFile(path string) {
	r.Files = append(r.Files, path)
}

// deriveOutcome settles the outcome when no stage failed: degraded output
// (Markdown fallbacks, a landing page without anchor) is a warning.
func (r *Report) deriveOutcome() {
	if r.Outcome != "" {
		return
	}
	r.Outcome = OutcomeSuccess
	if r.degradations() > 0 {
		r.Outcome = OutcomeWarning
	}
}

// degradations counts degraded outputs so far.
func (r *Report) degradations() int {
	n := r.MarkdownFallbacks
	if r.Landing == site.LandingSkippedNoAnchor {
		n++
	}
	return n
}

// Duration is End minus Start.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// JSON encodes the report with indentation.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.InternalError("failed to encode build report").WithCause(err).Build()
	}
	return append(data, '\n'), nil
}
