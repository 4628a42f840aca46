package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

// fileConfig is the on-disk YAML shape. Empty values leave the lower
// precedence value in place.
type fileConfig struct {
	Repository string `yaml:"repository,omitempty"`
	Token      string `yaml:"token,omitempty"`
	Label      string `yaml:"label,omitempty"`
	BlogDir    string `yaml:"blog_dir,omitempty"`
	SiteBase   string `yaml:"site_base,omitempty"`
	SiteOrigin string `yaml:"site_origin,omitempty"`
	APIURL     string `yaml:"api_url,omitempty"`

	Site struct {
		Title         string `yaml:"title,omitempty"`
		Description   string `yaml:"description,omitempty"`
		Author        string `yaml:"author,omitempty"`
		Logo          string `yaml:"logo,omitempty"`
		FallbackImage string `yaml:"fallback_image,omitempty"`
	} `yaml:"site,omitempty"`

	Renderer     string `yaml:"renderer,omitempty"`
	Root         string `yaml:"root,omitempty"`
	TemplatesDir string `yaml:"templates_dir,omitempty"`
	LandingPage  string `yaml:"landing_page,omitempty"`

	Sitemap struct {
		Incremental bool         `yaml:"incremental,omitempty"`
		Pages       []StaticPage `yaml:"pages,omitempty"`
	} `yaml:"sitemap,omitempty"`

	Timezone string `yaml:"timezone,omitempty"`

	NATS struct {
		URL     string `yaml:"url,omitempty"`
		Subject string `yaml:"subject,omitempty"`
	} `yaml:"nats,omitempty"`

	MetricsFile string `yaml:"metrics_file,omitempty"`
	ReportFile  string `yaml:"report_file,omitempty"`
}

// readFile loads path into a fileConfig. A missing file is not an error unless
// required is set; ${VAR} references are expanded before parsing.
func readFile(path string, required bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, errors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &fc); err != nil {
		return nil, errors.ConfigError("failed to parse config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return &fc, nil
}

func (fc *fileConfig) apply(cfg *SiteConfig) {
	setString(&cfg.Repository, fc.Repository)
	setString(&cfg.Token, fc.Token)
	setString(&cfg.Label, fc.Label)
	setString(&cfg.BlogDir, fc.BlogDir)
	setString(&cfg.SiteBase, fc.SiteBase)
	setString(&cfg.SiteOrigin, fc.SiteOrigin)
	setString(&cfg.APIURL, fc.APIURL)
	setString(&cfg.SiteTitle, fc.Site.Title)
	setString(&cfg.SiteDescription, fc.Site.Description)
	setString(&cfg.Author, fc.Site.Author)
	setString(&cfg.PublisherLogo, fc.Site.Logo)
	setString(&cfg.FallbackImage, fc.Site.FallbackImage)
	if fc.Renderer != "" {
		cfg.Renderer = Renderer(fc.Renderer)
	}
	setString(&cfg.Root, fc.Root)
	setString(&cfg.TemplatesDir, fc.TemplatesDir)
	setString(&cfg.LandingPage, fc.LandingPage)
	if fc.Sitemap.Incremental {
		cfg.IncrementalSitemap = true
	}
	if len(fc.Sitemap.Pages) > 0 {
		cfg.SitemapPages = fc.Sitemap.Pages
	}
	setString(&cfg.Timezone, fc.Timezone)
	setString(&cfg.NATSURL, fc.NATS.URL)
	setString(&cfg.NATSSubject, fc.NATS.Subject)
	setString(&cfg.MetricsFile, fc.MetricsFile)
	setString(&cfg.ReportFile, fc.ReportFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// WriteExample writes a commented starting configuration to path.
func WriteExample(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	d := Defaults()
	var fc fileConfig
	fc.Repository = "owner/repo"
	fc.Token = "${GH_TOKEN}"
	fc.Label = d.Label
	fc.BlogDir = d.BlogDir
	fc.SiteBase = d.SiteBase
	fc.Site.Title = d.SiteTitle
	fc.Site.Description = d.SiteDescription
	fc.Site.Author = d.Author
	fc.Renderer = string(d.Renderer)
	fc.Sitemap.Pages = d.SitemapPages
	fc.Timezone = d.Timezone

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return errors.InternalError("failed to marshal example config").WithCause(err).Build()
	}
	header := "# issueblog configuration. Environment variables override every value here.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return errors.FileSystemError("failed to write config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
