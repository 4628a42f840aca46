package github

import (
	"encoding/json"
	"time"
)

// Issue is one record from the issue list endpoint.
type Issue struct {
	Number      int              `json:"number"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	HTMLURL     string           `json:"html_url"`
	PullRequest *json.RawMessage `json:"pull_request,omitempty"`
}

// IsPullRequest reports whether the record is a pull request. The issues
// endpoint lists both.
func (i Issue) IsPullRequest() bool {
	return i.PullRequest != nil && string(*i.PullRequest) != "null"
}

// FilterArticles drops pull requests, keeping the input order.
func FilterArticles(issues []Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, it := range issues {
		if it.IsPullRequest() {
			continue
		}
		out = append(out, it)
	}
	return out
}
