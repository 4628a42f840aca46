package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImageURLs(t *testing.T) {
	const id = "0b1c2d3e-4f50-6172-8394-a5b6c7d8e9f0"
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "unrelated url unchanged",
			in:   `<img src="https://example.com/pic.png">`,
			want: `<img src="https://example.com/pic.png">`,
		},
		{
			name: "signed private url",
			in:   `<img src="https://private-user-images.githubusercontent.com/1234/345678901-` + id + `.png?jwt=eyJhbGci.abc&amp;x=1" alt="a">`,
			want: `<img src="https://github.com/user-attachments/assets/` + id + `.png" alt="a">`,
		},
		{
			name: "legacy url without extension",
			in:   `<a href="https://user-images.githubusercontent.com/1234/` + id + `">x</a>`,
			want: `<a href="https://github.com/user-attachments/assets/` + id + `">x</a>`,
		},
		{
			name: "legacy url with extension in markdown",
			in:   `![a](https://user-images.githubusercontent.com/99/` + id + `.jpeg)`,
			want: `![a](https://github.com/user-attachments/assets/` + id + `.jpeg)`,
		},
		{
			name: "host present but shape unknown",
			in:   `https://user-images.githubusercontent.com/1/not-a-uuid.png`,
			want: `https://user-images.githubusercontent.com/1/not-a-uuid.png`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeImageURLs(tt.in))
		})
	}
}

const snippetClipboardBlock = "<div class=\"snippet-clipboard-content notranslate position-relative overflow-auto\"><pre class=\"notranslate\"><code>plain\n</code></pre>" +
	"<div class=\"zeroclipboard-container position-absolute right-0 top-0\">\n<clipboard-copy aria-label=\"Copy\" value=\"plain\" tabindex=\"0\" role=\"button\">\n" +
	"<svg class=\"octicon octicon-copy\"><path d=\"M0 0\"></path></svg>\n</clipboard-copy>\n</div></div>"

func TestReformatCodeBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "source language",
			in:   `<div class="highlight highlight-source-go notranslate position-relative overflow-auto" dir="auto"><pre><span class="pl-k">package</span> <span class="pl-s1">main</span></pre></div>`,
			want: `<pre><code class="language-go">package main</code></pre>`,
		},
		{
			name: "text language keeps first segment",
			in:   "<div class=\"highlight highlight-text-html-basic\"><pre>&lt;<span class=\"pl-ent\">p</span>&gt;\n</pre></div>",
			want: "<pre><code class=\"language-html\">&lt;p&gt;\n</code></pre>",
		},
		{
			name: "clipboard container dropped",
			in:   `<div class="highlight highlight-source-shell"><pre>ls</pre><div class="zeroclipboard-container position-absolute right-0 top-0"><clipboard-copy value="ls"></clipboard-copy></div></div>`,
			want: `<pre><code class="language-shell">ls</code></pre>`,
		},
		{
			name: "no language",
			in:   `<pre class="notranslate"><code>plain</code></pre>`,
			want: `<pre><code class="language-plaintext">plain</code></pre>`,
		},
		{
			name: "no language clipboard wrapper dropped",
			in:   snippetClipboardBlock,
			want: "<pre><code class=\"language-plaintext\">plain\n</code></pre>",
		},
		{
			name: "goldmark output without language",
			in:   "<pre><code>x := 1\n</code></pre>",
			want: "<pre><code class=\"language-plaintext\">x := 1\n</code></pre>",
		},
		{
			name: "already annotated untouched",
			in:   `<pre><code class="language-go">x</code></pre>`,
			want: `<pre><code class="language-go">x</code></pre>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReformatCodeBlocks(tt.in))
		})
	}
}

func TestFirstImage(t *testing.T) {
	src, ok := FirstImage(`<p>text</p><p><img alt="x"><img src="/a.png"><img src="/b.png"></p>`)
	require.True(t, ok)
	assert.Equal(t, "/a.png", src)

	src, ok = FirstImage(`<p>no images</p>`)
	assert.False(t, ok)
	assert.Empty(t, src)
}

func TestPlainText(t *testing.T) {
	in := "<h2>Title</h2>\n<p>Hello <strong>wor</strong>ld &amp; friends</p><script>var x = 1;</script><ul><li>one</li><li>two</li></ul>"
	assert.Equal(t, "Title Hello world & friends one two", PlainText(in))
}

func TestSummarize(t *testing.T) {
	short := "<p>short</p>"
	assert.Equal(t, "short", Summarize(short, DefaultSummaryLength))

	long := "<p>" + strings.Repeat("あ", 200) + "</p>"
	got := Summarize(long, DefaultSummaryLength)
	assert.Equal(t, strings.Repeat("あ", 160)+"…", got)
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMeta Meta
		wantBody string
	}{
		{
			name:     "no front matter",
			in:       "Hello\n\n---\n\nworld",
			wantBody: "Hello\n\n---\n\nworld",
		},
		{
			name:     "all keys",
			in:       "---\ndescription: Custom text\nimage: /img/cover.png\ndraft: true\n---\nBody here\n",
			wantMeta: Meta{Description: "Custom text", Image: "/img/cover.png", Draft: true},
			wantBody: "Body here",
		},
		{
			name:     "invalid yaml keeps whole body",
			in:       "---\ndraft: [unclosed\n---\nBody",
			wantBody: "---\ndraft: [unclosed\n---\nBody",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body := SplitFrontMatter(tt.in)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(body))
		})
	}
}

func TestProcessDefaultTransforms(t *testing.T) {
	doc := &Document{
		Number: 4,
		HTML:   `<p>Intro</p><p><img src="https://user-images.githubusercontent.com/1/0b1c2d3e-4f50-6172-8394-a5b6c7d8e9f0.png"></p><pre class="notranslate"><code>x</code></pre>`,
	}
	require.NoError(t, Process(doc, DefaultTransforms()))

	assert.True(t, doc.HasImage)
	assert.Equal(t, "https://github.com/user-attachments/assets/0b1c2d3e-4f50-6172-8394-a5b6c7d8e9f0.png", doc.Image)
	assert.Contains(t, doc.HTML, `class="language-plaintext"`)
	assert.Equal(t, "Intro x", doc.Description)
}

func TestProcessMetaOverrides(t *testing.T) {
	doc := &Document{
		HTML: `<p><img src="/first.png">Text</p>`,
		Meta: Meta{Description: "From front matter", Image: "/cover.png"},
	}
	require.NoError(t, Process(doc, DefaultTransforms()))
	assert.Equal(t, "/cover.png", doc.Image)
	assert.Equal(t, "From front matter", doc.Description)
}
