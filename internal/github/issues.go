package github

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

// IssuesURL returns the single-page list URL for open issues of repo with label.
func (c *Client) IssuesURL(repo, label string) (string, error) {
	q := url.Values{}
	q.Set("state", "open")
	q.Set("labels", label)
	q.Set("per_page", strconv.Itoa(PageSize))
	return c.endpoint("repos/"+repo+"/issues", q)
}

// ListIssues fetches one page of open issues carrying label. Records beyond
// the first PageSize are not requested.
func (c *Client) ListIssues(ctx context.Context, repo, label string) ([]Issue, error) {
	target, err := c.IssuesURL(repo, label)
	if err != nil {
		return nil, err
	}
	slog.Info("Fetching issues", logfields.Repository(repo), logfields.Label(label), logfields.URL(target))

	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	data, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, errors.NewError(errors.CategoryFetch, "failed to decode issue list").
			WithCause(err).
			WithContext("url", target).
			Build()
	}
	return issues, nil
}
