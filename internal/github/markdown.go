package github

import (
	"context"
	"net/http"
)

type markdownRequest struct {
	Text    string `json:"text"`
	Mode    string `json:"mode"`
	Context string `json:"context,omitempty"`
}

// RenderMarkdown converts text with the GitHub Markdown API in gfm mode.
// repo, when set, resolves issue and user references.
func (c *Client) RenderMarkdown(ctx context.Context, text, repo string) (string, error) {
	target, err := c.endpoint("markdown", nil)
	if err != nil {
		return "", err
	}
	req, err := c.newRequest(ctx, http.MethodPost, target, markdownRequest{Text: text, Mode: "gfm", Context: repo})
	if err != nil {
		return "", err
	}
	data, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
