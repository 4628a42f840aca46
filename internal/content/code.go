package content

import (
	"regexp"
	"strings"
)

var (
	highlightBlockRe = regexp.MustCompile(`(?s)<div class="highlight highlight-(source|text)-([A-Za-z0-9_+#.-]+)[^"]*"[^>]*>\s*<pre[^>]*>(.*?)</pre>\s*` +
		`(?:<div class="zeroclipboard-container[^"]*".*?</div>\s*)?</div>`)
	snippetBlockRe = regexp.MustCompile(`(?s)<div class="snippet-clipboard-content[^"]*"[^>]*>\s*(<pre[^>]*><code[^>]*>.*?</code></pre>)\s*` +
		`(?:<div class="zeroclipboard-container[^"]*".*?</div>\s*)?</div>`)
	spanTagRe     = regexp.MustCompile(`</?span[^>]*>`)
	plainCodeRe   = regexp.MustCompile(`<pre(?: class="notranslate")?><code(?: class="notranslate")?>`)
	plainCodeHTML = `<pre><code class="language-plaintext">`
)

// ReformatCodeBlocks rewrites GitHub's highlighted code containers into
// <pre><code class="language-X"> with the highlighting spans removed, then
// unwraps GitHub's clipboard containers and labels code blocks that carry no
// language as plaintext.
func ReformatCodeBlocks(html string) string {
	html = highlightBlockRe.ReplaceAllStringFunc(html, func(block string) string {
		m := highlightBlockRe.FindStringSubmatch(block)
		lang := m[2]
		if m[1] == "text" {
			// text-html-basic, text-md: the first segment names the language.
			lang, _, _ = strings.Cut(lang, "-")
		}
		code := spanTagRe.ReplaceAllString(m[3], "")
		return `<pre><code class="language-` + lang + `">` + code + `</code></pre>`
	})
	html = snippetBlockRe.ReplaceAllString(html, "$1")
	return plainCodeRe.ReplaceAllString(html, plainCodeHTML)
}
