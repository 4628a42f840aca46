package site

import (
	"encoding/xml"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/config"
	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// staticPages returns the configured pages with the blog index placed after
// the home page.
func (r *Renderer) staticPages() []config.StaticPage {
	blog := config.StaticPage{Path: r.cfg.BlogPath(), ChangeFreq: "daily", Priority: "0.8"}
	pages := make([]config.StaticPage, 0, len(r.cfg.SitemapPages)+1)
	inserted := false
	for i, p := range r.cfg.SitemapPages {
		if p.Path == blog.Path {
			continue
		}
		if i == 0 && p.Path == "/" {
			pages = append(pages, p, blog)
			inserted = true
			continue
		}
		pages = append(pages, p)
	}
	if !inserted {
		pages = append([]config.StaticPage{blog}, pages...)
	}
	return pages
}

// RenderSitemap lists the static pages, stamped with now, and one entry per post.
func (r *Renderer) RenderSitemap(posts []Post, now time.Time) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNamespace}
	today := textutil.YMD(now)
	for _, p := range r.staticPages() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        r.cfg.AbsoluteURL(p.Path),
			LastMod:    today,
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        r.cfg.AbsoluteURL(p.Path),
			LastMod:    textutil.YMD(p.LastModified()),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, errors.RenderError("failed to encode sitemap").WithCause(err).Build()
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// WriteSitemap renders and writes {root}/sitemap.xml.
func (r *Renderer) WriteSitemap(posts []Post, now time.Time) (string, error) {
	data, err := r.RenderSitemap(posts, now)
	if err != nil {
		return "", err
	}
	path := r.cfg.OutputPath(SitemapFile)
	return path, WriteFile(path, data)
}
