package github

import "fmt"

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 512

// FetchError is returned for any non-2xx response.
type FetchError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *FetchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("github: %s returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("github: %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}
