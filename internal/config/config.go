package config

import (
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

// Renderer selects the Markdown converter used for issue bodies.
type Renderer string

const (
	RendererGitHub   Renderer = "github"
	RendererGoldmark Renderer = "goldmark"
)

// StaticPage is a hand-authored top-level page listed in the sitemap.
type StaticPage struct {
	Path       string `yaml:"path"`
	ChangeFreq string `yaml:"changefreq"`
	Priority   string `yaml:"priority"`
}

// SiteConfig is resolved once at process start and passed by value to every
// component. Nothing reads the environment after Load returns.
type SiteConfig struct {
	Repository string // "owner/repo"
	Token      string
	Label      string
	BlogDir    string
	SiteBase   string
	SiteOrigin string
	APIURL     string

	SiteTitle       string
	SiteDescription string
	Author          string
	PublisherLogo   string
	FallbackImage   string

	Renderer     Renderer
	Root         string
	TemplatesDir string
	LandingPage  string

	IncrementalSitemap bool
	SitemapPages       []StaticPage

	Timezone string
	location *time.Location

	NATSURL     string
	NATSSubject string
	MetricsFile string
	ReportFile  string
}

// Location returns the zone used for timezone-qualified timestamps.
func (c SiteConfig) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// BasePath is SiteBase without trailing slashes ("/" becomes "").
func (c SiteConfig) BasePath() string {
	return textutil.TrimBase(c.SiteBase)
}

// Href prefixes an absolute site path with the base path.
func (c SiteConfig) Href(path string) string {
	return c.BasePath() + path
}

// AbsoluteURL resolves an absolute site path against the site origin.
func (c SiteConfig) AbsoluteURL(path string) string {
	return strings.TrimRight(c.SiteOrigin, "/") + path
}

// BlogPath is the public path of the listing page, e.g. "/blog/".
func (c SiteConfig) BlogPath() string {
	return "/" + c.BlogDir + "/"
}

// OutputPath joins rel onto the output root.
func (c SiteConfig) OutputPath(rel ...string) string {
	return filepath.Join(append([]string{c.Root}, rel...)...)
}

// ResolvePath returns p unchanged when absolute, otherwise under the output root.
func (c SiteConfig) ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return c.OutputPath(p)
}
