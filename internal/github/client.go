package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
	"git.home.luguber.info/inful/issueblog/internal/version"
)

const (
	apiVersion = "2022-11-28"
	mediaType  = "application/vnd.github+json"
	// PageSize is the only page ever requested; later issues are not published.
	PageSize = 100
)

// Client issues authenticated requests against the GitHub REST API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	userAgent  string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for apiURL. An empty token sends no
// Authorization header. Requests are bounded only by their context.
func NewClient(apiURL, token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		apiURL:     strings.TrimRight(apiURL, "/"),
		token:      token,
		userAgent:  "issueblog/" + version.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(p string, query url.Values) (string, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return "", errors.ConfigError("failed to parse API URL").
			WithCause(err).
			WithContext("api_url", c.apiURL).
			Build()
	}
	u.Path = path.Join(strings.TrimSuffix(u.Path, "/"), p)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body any) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.InternalError("failed to marshal request body").WithCause(err).Build()
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.NetworkError("failed to create request").
			WithCause(err).
			WithContext("method", method).
			WithContext("url", target).
			Build()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", mediaType)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do executes req and returns the response body. Non-2xx statuses become a
// *FetchError carrying a bounded copy of the body.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkError("failed to execute GitHub request").
			WithCause(err).
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		limited, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		slog.Debug("GitHub request failed", logfields.URL(req.URL.String()), logfields.Status(resp.StatusCode))
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(limited)),
			URL:        req.URL.String(),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NetworkError("failed to read GitHub response").
			WithCause(err).
			WithContext("url", req.URL.String()).
			Build()
	}
	return data, nil
}
