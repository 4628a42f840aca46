package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files into the process environment. godotenv never
// overrides variables that are already set, so the real environment wins.
func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment file", logfields.Path(name))
	}
}

// applyEnv overlays the process environment. The first five names match the
// variables passed by the scheduled workflow.
func applyEnv(cfg *SiteConfig) error {
	envString(&cfg.Repository, "REPO")
	envString(&cfg.Token, "GH_TOKEN")
	envString(&cfg.Label, "LABEL")
	envString(&cfg.BlogDir, "BLOG_DIR")
	envString(&cfg.SiteBase, "SITE_BASE")
	envString(&cfg.SiteOrigin, "SITE_ORIGIN")
	envString(&cfg.APIURL, "GITHUB_API_URL")

	envString(&cfg.SiteTitle, "ISSUEBLOG_SITE_TITLE")
	envString(&cfg.SiteDescription, "ISSUEBLOG_SITE_DESCRIPTION")
	envString(&cfg.Author, "ISSUEBLOG_AUTHOR")
	if v := os.Getenv("ISSUEBLOG_RENDERER"); v != "" {
		cfg.Renderer = Renderer(v)
	}
	envString(&cfg.TemplatesDir, "ISSUEBLOG_TEMPLATES_DIR")
	envString(&cfg.LandingPage, "ISSUEBLOG_LANDING_PAGE")
	if v := os.Getenv("ISSUEBLOG_SITEMAP_INCREMENTAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.ValidationError("invalid ISSUEBLOG_SITEMAP_INCREMENTAL (valid: true, false)").
				WithCause(err).
				WithContext("value", v).
				Build()
		}
		cfg.IncrementalSitemap = b
	}
	envString(&cfg.Timezone, "ISSUEBLOG_TIMEZONE")
	envString(&cfg.NATSURL, "ISSUEBLOG_NATS_URL")
	envString(&cfg.NATSSubject, "ISSUEBLOG_NATS_SUBJECT")
	envString(&cfg.MetricsFile, "ISSUEBLOG_METRICS_FILE")
	envString(&cfg.ReportFile, "ISSUEBLOG_REPORT_FILE")
	return nil
}

func envString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
