package content

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultSummaryLength is the description budget in characters.
const DefaultSummaryLength = 160

const ellipsis = "…"

// inlineTags do not separate words when stripped.
var inlineTags = map[atom.Atom]bool{
	atom.A: true, atom.B: true, atom.I: true, atom.U: true, atom.S: true,
	atom.Em: true, atom.Strong: true, atom.Code: true, atom.Span: true,
	atom.Del: true, atom.Small: true, atom.Sub: true, atom.Sup: true,
	atom.Mark: true, atom.Kbd: true, atom.Abbr: true,
}

// FirstImage returns the src of the first <img> in fragment.
func FirstImage(fragment string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if atom.Lookup(name) != atom.Img || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					return string(val), true
				}
				if !more {
					break
				}
			}
		}
	}
}

// PlainText strips tags from fragment, decodes entities and collapses
// whitespace. Script and style contents are dropped.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch a {
			case atom.Script, atom.Style:
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
			}
			if !inlineTags[a] {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Summarize returns the plain text of fragment cut to limit characters,
// with an ellipsis appended when anything was cut.
func Summarize(fragment string, limit int) string {
	text := PlainText(fragment)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:limit]), " ") + ellipsis
}
