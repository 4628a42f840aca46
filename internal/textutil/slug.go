package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	slugSeparators = regexp.MustCompile(`[\s　/\\]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9\-._~]`)
)

// Slug converts a title into a URL-safe slug. Full-width forms are folded with
// NFKC first so "ＧＯ" and "GO" produce the same slug. Characters outside the
// unreserved URL set are dropped; when nothing is left, fallback is returned.
func Slug(title, fallback string) string {
	s := norm.NFKC.String(strings.TrimSpace(title))
	s = strings.ToLower(s)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	if s == "" {
		return fallback
	}
	return s
}
