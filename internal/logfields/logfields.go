package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by every package.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyRepo       = "repository"
	KeyLabel      = "label"
	KeyIssue      = "issue"
	KeyTitle      = "title"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyStatus     = "status"
	KeyCount      = "count"
	KeyRenderer   = "renderer"
	KeySubject    = "subject"
	KeyError      = "error"
)

func RunID(id string) slog.Attr      { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr    { return slog.String(KeyStage, name) }
func Repository(r string) slog.Attr  { return slog.String(KeyRepo, r) }
func Label(l string) slog.Attr       { return slog.String(KeyLabel, l) }
func Issue(number int) slog.Attr     { return slog.Int(KeyIssue, number) }
func Title(t string) slog.Attr       { return slog.String(KeyTitle, t) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr         { return slog.String(KeyURL, u) }
func Status(code int) slog.Attr      { return slog.Int(KeyStatus, code) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }
func Renderer(name string) slog.Attr { return slog.String(KeyRenderer, name) }
func Subject(s string) slog.Attr     { return slog.String(KeySubject, s) }

func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
