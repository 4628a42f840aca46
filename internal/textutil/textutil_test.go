package textutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`5 > 3 & "ok"`, `5 &gt; 3 &amp; &quot;ok&quot;`},
		{"plain text", "plain text"},
		{"<script>", "&lt;script&gt;"},
		{"it's", "it&#39;s"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeHTML(tt.in), "input %q", tt.in)
	}
}

func TestEscapeHTML_NotIdempotent(t *testing.T) {
	once := EscapeHTML("&")
	assert.Equal(t, "&amp;", once)
	assert.Equal(t, "&amp;amp;", EscapeHTML(once))
}

func TestTrimBase(t *testing.T) {
	assert.Equal(t, "", TrimBase("/"))
	assert.Equal(t, "/site", TrimBase("/site/"))
	assert.Equal(t, "/site", TrimBase("/site"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name, title, fallback, want string
	}{
		{"ascii", "Hello World", "post-1", "hello-world"},
		{"full width space", "Go　言語", "post-2", "go-"},
		{"full width letters", "ＧＯ Tips", "post-3", "go-tips"},
		{"slashes", "a/b\\c", "post-4", "a-b-c"},
		{"only japanese", "日本語", "post-5", "post-5"},
		{"empty", "", "post-6", "post-6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title, tt.fallback))
		})
	}
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	jst := time.FixedZone("JST", 9*60*60)

	assert.Equal(t, "2024-05-01", YMD(ts))
	assert.Equal(t, "", YMD(time.Time{}))
	assert.Equal(t, "2024-05-01T18:30:00+09:00", StructuredDate(ts, jst))
	assert.Equal(t, "2024-05-01T09:30:00+00:00", StructuredDate(ts, nil))
	assert.Equal(t, "Wed, 01 May 2024 09:30:00 GMT", RSSDate(ts.In(jst)))
}
