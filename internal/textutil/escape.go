package textutil

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five characters that are unsafe in element text and
// quoted attribute values. It is not idempotent: "&amp;" becomes "&amp;amp;".
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// TrimBase returns the site base path without trailing slashes, so "/" becomes
// "" and "/site/" becomes "/site". Joining it with an absolute path never
// produces a double slash.
func TrimBase(base string) string {
	return strings.TrimRight(base, "/")
}
