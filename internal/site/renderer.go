package site

import (
	"bytes"
	"embed"
	"net/url"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/issueblog/internal/config"
	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/templates"
	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

// NoPostsMessage is shown on the listing and landing page when nothing is published.
const NoPostsMessage = "まだ記事がありません"

const (
	FeedFile    = "rss.xml"
	SitemapFile = "sitemap.xml"
	IndexFile   = "index.html"

	styleSheetPath = "/assets/css/blog.css"
	scriptPath     = "/assets/js/blog.js"
)

//go:embed templates_defaults/*.tmpl
var embeddedTemplates embed.FS

var pageTemplates = template.Must(template.New("site").
	Funcs(template.FuncMap{"esc": textutil.EscapeHTML}).
	ParseFS(embeddedTemplates, "templates_defaults/*.tmpl"))

// Renderer turns posts into complete documents.
type Renderer struct {
	cfg   config.SiteConfig
	shell templates.Shell
}

func NewRenderer(cfg config.SiteConfig, shell templates.Shell) *Renderer {
	return &Renderer{cfg: cfg, shell: shell}
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.RenderError("failed to execute page template").
			WithCause(err).
			WithContext("template", name).
			Build()
	}
	return buf.String(), nil
}

// absoluteURL makes ref absolute against the site origin. Protocol-relative
// references get https.
func (r *Renderer) absoluteURL(ref string) string {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	default:
		return r.cfg.AbsoluteURL("/" + strings.TrimLeft(ref, "/"))
	}
}

// href makes a site-relative reference carry the base path.
func (r *Renderer) href(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//") {
		return ref
	}
	return r.cfg.Href("/" + strings.TrimLeft(ref, "/"))
}

type postPage struct {
	Post           Post
	SiteTitle      string
	Canonical      string
	FeedURL        string
	StyleURL       string
	ScriptURL      string
	Description    string
	Image          string
	StructuredData string
	Published      string
	Date           string
	ShareURL       string
	Body           string
}

// RenderPost builds the full article document for post with the converted body.
func (r *Renderer) RenderPost(post Post, body string) (string, error) {
	canonical := r.cfg.AbsoluteURL(post.Path)
	image := post.Image
	if image == "" {
		image = r.cfg.FallbackImage
	}
	image = r.absoluteURL(image)

	data, err := r.structuredData(post, canonical, image)
	if err != nil {
		return "", err
	}

	page := postPage{
		Post:           post,
		SiteTitle:      r.cfg.SiteTitle,
		Canonical:      canonical,
		FeedURL:        r.cfg.Href("/" + FeedFile),
		StyleURL:       r.cfg.Href(styleSheetPath),
		ScriptURL:      r.cfg.Href(scriptPath),
		Description:    post.Description,
		Image:          image,
		StructuredData: data,
		Published:      textutil.StructuredDate(post.CreatedAt, r.cfg.Location()),
		Date:           textutil.YMD(post.CreatedAt),
		ShareURL:       shareURL(canonical, post.Title),
		Body:           body,
	}

	head, err := execute("post_head.tmpl", page)
	if err != nil {
		return "", err
	}
	main, err := execute("post_body.tmpl", page)
	if err != nil {
		return "", err
	}
	return r.shell.Page(post.Title+" | "+r.cfg.SiteTitle, strings.TrimRight(head, "\n"), main), nil
}

// WritePost renders post and writes {root}/{blogDir}/{number}/index.html.
func (r *Renderer) WritePost(post Post, body string) (string, error) {
	doc, err := r.RenderPost(post, body)
	if err != nil {
		return "", err
	}
	path := r.cfg.OutputPath(OutputDir(r.cfg.BlogDir, post.Number), IndexFile)
	if err := WriteFile(path, []byte(doc)); err != nil {
		return "", err
	}
	return path, nil
}

func shareURL(canonical, title string) string {
	q := url.Values{}
	q.Set("url", canonical)
	q.Set("text", title)
	return "https://twitter.com/intent/tweet?" + q.Encode()
}

type indexItem struct {
	Slug         string
	Href         string
	TitleEscaped string
	Date         string
}

type indexPage struct {
	SiteTitle string
	Canonical string
	FeedURL   string
	StyleURL  string
	ScriptURL string
	Items     []indexItem
	Empty     string
}

// RenderIndex builds the listing page. posts must already be sorted.
func (r *Renderer) RenderIndex(posts []Post) (string, error) {
	page := indexPage{
		SiteTitle: r.cfg.SiteTitle,
		Canonical: r.cfg.AbsoluteURL(r.cfg.BlogPath()),
		FeedURL:   r.cfg.Href("/" + FeedFile),
		StyleURL:  r.cfg.Href(styleSheetPath),
		ScriptURL: r.cfg.Href(scriptPath),
		Empty:     NoPostsMessage,
	}
	for _, p := range posts {
		page.Items = append(page.Items, indexItem{
			Slug:         p.Slug,
			Href:         r.cfg.Href(p.Path),
			TitleEscaped: p.TitleEscaped,
			Date:         textutil.YMD(p.CreatedAt),
		})
	}

	head, err := execute("index_head.tmpl", page)
	if err != nil {
		return "", err
	}
	main, err := execute("index_body.tmpl", page)
	if err != nil {
		return "", err
	}
	return r.shell.Page("Blog | "+r.cfg.SiteTitle, strings.TrimRight(head, "\n"), main), nil
}

// WriteIndex renders and writes {root}/{blogDir}/index.html.
func (r *Renderer) WriteIndex(posts []Post) (string, error) {
	doc, err := r.RenderIndex(posts)
	if err != nil {
		return "", err
	}
	path := r.cfg.OutputPath(r.cfg.BlogDir, IndexFile)
	return path, WriteFile(path, []byte(doc))
}
