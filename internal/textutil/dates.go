package textutil

import "time"

const (
	// DateLayout is the short date shown on pages and used for sitemap lastmod.
	DateLayout = "2006-01-02"
	// StructuredDataLayout is the timezone-qualified layout used in JSON-LD.
	StructuredDataLayout = "2006-01-02T15:04:05-07:00"
	// RSSDateLayout matches JavaScript's Date.prototype.toUTCString.
	RSSDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// YMD formats t as YYYY-MM-DD in UTC. The zero time formats as "".
func YMD(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// StructuredDate formats t in loc with an explicit offset, e.g.
// 2024-05-01T18:30:00+09:00.
func StructuredDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(StructuredDataLayout)
}

// RSSDate formats t as an RFC 1123 date in GMT.
func RSSDate(t time.Time) string {
	return t.UTC().Format(RSSDateLayout)
}
