package github

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issuesJSON = `[
  {"number": 3, "title": "Third", "body": "c", "created_at": "2024-03-01T00:00:00Z", "updated_at": "2024-03-02T00:00:00Z", "html_url": "https://github.com/o/r/issues/3"},
  {"number": 2, "title": "A PR", "body": "", "created_at": "2024-02-01T00:00:00Z", "updated_at": "2024-02-01T00:00:00Z", "html_url": "https://github.com/o/r/pull/2", "pull_request": {"url": "https://api.github.com/repos/o/r/pulls/2"}},
  {"number": 1, "title": "", "body": null, "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z", "html_url": "https://github.com/o/r/issues/1", "pull_request": null}
]`

func TestListIssues(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, issuesJSON)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", WithHTTPClient(srv.Client()))
	issues, err := c.ListIssues(context.Background(), "o/r", "blog post")
	require.NoError(t, err)
	require.Len(t, issues, 3)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/repos/o/r/issues", got.URL.Path)
	assert.Equal(t, "open", got.URL.Query().Get("state"))
	assert.Equal(t, "blog post", got.URL.Query().Get("labels"))
	assert.Equal(t, "100", got.URL.Query().Get("per_page"))
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/vnd.github+json", got.Header.Get("Accept"))
	assert.Equal(t, apiVersion, got.Header.Get("X-GitHub-Api-Version"))
	assert.NotEmpty(t, got.Header.Get("User-Agent"))

	assert.Equal(t, 3, issues[0].Number)
	assert.False(t, issues[0].IsPullRequest())
	assert.True(t, issues[1].IsPullRequest())
	assert.False(t, issues[2].IsPullRequest())
	assert.Equal(t, "", issues[2].Body)
}

func TestListIssuesWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	issues, err := NewClient(srv.URL, "").ListIssues(context.Background(), "o/r", "blog")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestListIssuesFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"API rate limit exceeded"}`)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := NewClient(srv.URL, "").ListIssues(context.Background(), "o/r", "blog")
	require.Error(t, err)
	assert.Contains(t, logs.String(), "status=403")

	var fe *FetchError
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, http.StatusForbidden, fe.StatusCode)
	assert.Contains(t, fe.Body, "rate limit")
	assert.Contains(t, fe.URL, "/repos/o/r/issues")
	assert.Contains(t, fe.Error(), "403")
}

func TestRequestsBoundedByContext(t *testing.T) {
	assert.Zero(t, NewClient("https://api.github.com", "").httpClient.Timeout)

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, "").ListIssues(ctx, "o/r", "blog")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderMarkdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/markdown", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body markdownRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gfm", body.Mode)
		assert.Equal(t, "o/r", body.Context)
		_, _ = io.WriteString(w, "<p>"+body.Text+"</p>\n")
	}))
	defer srv.Close()

	html, err := NewClient(srv.URL, "t").RenderMarkdown(context.Background(), "hello", "o/r")
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>\n", html)
}

func TestRenderMarkdownFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").RenderMarkdown(context.Background(), "x", "")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusBadGateway, fe.StatusCode)
}

func TestAPIURLWithPathPrefix(t *testing.T) {
	c := NewClient("https://ghe.example.com/api/v3/", "")
	u, err := c.IssuesURL("o/r", "blog")
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/repos/o/r/issues?labels=blog&per_page=100&state=open", u)
}

func TestFilterArticles(t *testing.T) {
	var issues []Issue
	require.NoError(t, json.Unmarshal([]byte(issuesJSON), &issues))

	got := FilterArticles(issues)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Number)
	assert.Equal(t, 1, got[1].Number)
}
