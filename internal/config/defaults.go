package config

import "os"

const (
	DefaultLabel        = "blog"
	DefaultBlogDir      = "blog"
	DefaultSiteBase     = "/"
	DefaultAPIURL       = "https://api.github.com"
	DefaultTimezone     = "Asia/Tokyo"
	DefaultNATSSubject  = "issueblog.build.completed"
	DefaultConfigFile   = "issueblog.yaml"
	defaultOriginOwner  = "example"
	defaultTemplatesDir = "templates"
	defaultLandingPage  = "index.html"
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() SiteConfig {
	return SiteConfig{
		Label:           DefaultLabel,
		BlogDir:         DefaultBlogDir,
		SiteBase:        DefaultSiteBase,
		APIURL:          DefaultAPIURL,
		SiteTitle:       "Kuromelon Blog",
		SiteDescription: "Issues to static blog feed",
		Author:          "kuromelon",
		PublisherLogo:   "/assets/img/logo.png",
		FallbackImage:   "/assets/img/ogp.png",
		Renderer:        RendererGitHub,
		Root:            ".",
		TemplatesDir:    defaultTemplatesDir,
		LandingPage:     defaultLandingPage,
		SitemapPages: []StaticPage{
			{Path: "/", ChangeFreq: "weekly", Priority: "1.0"},
			{Path: "/chackrun/", ChangeFreq: "monthly", Priority: "0.5"},
		},
		Timezone:    DefaultTimezone,
		NATSSubject: DefaultNATSSubject,
	}
}

// defaultOrigin mirrors the GitHub Pages URL for the repository owner:
// https://{owner}.github.io{base}.
func defaultOrigin(cfg SiteConfig) string {
	owner := os.Getenv("GITHUB_REPOSITORY_OWNER")
	if owner == "" {
		owner = defaultOriginOwner
	}
	return "https://" + owner + ".github.io" + cfg.BasePath()
}
