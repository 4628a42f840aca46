package config

import (
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/foundation"
	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

var renderers = foundation.NewNormalizer(map[string]Renderer{
	string(RendererGitHub):   RendererGitHub,
	string(RendererGoldmark): RendererGoldmark,
}, RendererGitHub)

func validate(cfg *SiteConfig) error {
	if cfg.Repository != "" {
		owner, name, ok := strings.Cut(cfg.Repository, "/")
		if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
			return errors.ValidationError("repository must be in owner/repo form").
				WithContext("repository", cfg.Repository).
				Build()
		}
	}

	if cfg.BlogDir == "" || filepath.IsAbs(cfg.BlogDir) || strings.HasPrefix(filepath.Clean(cfg.BlogDir), "..") {
		return errors.ValidationError("blog directory must be a relative path inside the output root").
			WithContext("blog_dir", cfg.BlogDir).
			Build()
	}

	renderer, err := renderers.NormalizeWithError("renderer", string(cfg.Renderer))
	if err != nil {
		return err
	}
	cfg.Renderer = renderer

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return errors.ValidationError("unknown timezone").
			WithCause(err).
			WithContext("timezone", cfg.Timezone).
			Build()
	}
	cfg.location = loc
	return nil
}
