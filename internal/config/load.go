package config

import (
	"log/slog"
	"strings"
	_ "time/tzdata" // zone database for hosts without one

	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

// Options are the CLI-level inputs to Load.
type Options struct {
	// File is the YAML config path; empty means DefaultConfigFile, which may be absent.
	File string
	// Root overrides the output root when non-empty.
	Root string
	// IncrementalSitemap forces sitemap rewrites after each post when true.
	IncrementalSitemap bool
}

// Load resolves the site configuration from defaults, the optional YAML file,
// .env files, the process environment and opts, in increasing precedence.
func Load(opts Options) (SiteConfig, error) {
	cfg := Defaults()

	path, required := opts.File, true
	if path == "" {
		path, required = DefaultConfigFile, false
	}
	fc, err := readFile(path, required)
	if err != nil {
		return SiteConfig{}, err
	}
	if fc != nil {
		fc.apply(&cfg)
		slog.Debug("Loaded config file", logfields.Path(path))
	}

	loadEnvFiles()
	if err := applyEnv(&cfg); err != nil {
		return SiteConfig{}, err
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.IncrementalSitemap {
		cfg.IncrementalSitemap = true
	}

	normalize(&cfg)
	if err := validate(&cfg); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

func normalize(cfg *SiteConfig) {
	cfg.Repository = strings.TrimSpace(cfg.Repository)
	cfg.BlogDir = strings.Trim(strings.TrimSpace(cfg.BlogDir), "/")
	if cfg.SiteBase == "" {
		cfg.SiteBase = DefaultSiteBase
	}
	if !strings.HasPrefix(cfg.SiteBase, "/") {
		cfg.SiteBase = "/" + cfg.SiteBase
	}
	if cfg.SiteOrigin == "" {
		cfg.SiteOrigin = defaultOrigin(*cfg)
	}
	cfg.SiteOrigin = strings.TrimRight(cfg.SiteOrigin, "/")
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.Renderer = Renderer(strings.ToLower(strings.TrimSpace(string(cfg.Renderer))))
}
