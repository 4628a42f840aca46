package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, RunID("abc")},
		{"Stage", KeyStage, Stage("fetch_issues")},
		{"Repository", KeyRepo, Repository("owner/repo")},
		{"Label", KeyLabel, Label("blog")},
		{"Issue", KeyIssue, Issue(7)},
		{"Title", KeyTitle, Title("hello")},
		{"Path", KeyPath, Path("blog/7/index.html")},
		{"URL", KeyURL, URL("https://api.github.com")},
		{"Status", KeyStatus, Status(404)},
		{"Count", KeyCount, Count(3)},
		{"Renderer", KeyRenderer, Renderer("github")},
		{"Subject", KeySubject, Subject("issueblog.build.completed")},
		{"Duration", KeyDurationMS, Duration(1500 * time.Microsecond)},
		{"Error", KeyError, Error(errors.New("x"))},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
	}
}

func TestValues(t *testing.T) {
	if got := Duration(1500 * time.Microsecond).Value.Float64(); got != 1.5 {
		t.Errorf("Duration value = %v, want 1.5", got)
	}
	if got := Issue(42).Value.Int64(); got != 42 {
		t.Errorf("Issue value = %v, want 42", got)
	}
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) value = %q, want empty", got)
	}
}
