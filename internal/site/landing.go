package site

import (
	"log/slog"
	"os"
	"regexp"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

// LandingCards is how many posts the landing page previews.
const LandingCards = 3

// LandingResult says what happened to the landing page.
type LandingResult string

const (
	LandingInjected        LandingResult = "injected"
	LandingSkippedNoAnchor LandingResult = "skipped_no_anchor"
	LandingSkippedMissing  LandingResult = "skipped_missing"
)

var (
	// A previously injected block and the newline written after it.
	landingBlockRe = regexp.MustCompile(`(?s)<!-- BLOG_SECTION_START -->.*?<!-- BLOG_SECTION_END -->\n?`)
	// End of the works section followed by the contact section.
	landingAnchorRe = regexp.MustCompile(`(</section>\s*)(<section[^>]*id="contact")`)
)

type landingCard struct {
	Href         string
	Image        string
	TitleEscaped string
	Date         string
	Description  string
}

type landingSection struct {
	Cards     []landingCard
	IndexHref string
	Empty     string
}

// RenderLandingSection builds the delimited blog block for the newest posts.
func (r *Renderer) RenderLandingSection(posts []Post) (string, error) {
	if len(posts) > LandingCards {
		posts = posts[:LandingCards]
	}
	data := landingSection{IndexHref: r.cfg.Href(r.cfg.BlogPath()), Empty: NoPostsMessage}
	for _, p := range posts {
		image := p.Image
		if image == "" {
			image = r.cfg.FallbackImage
		}
		data.Cards = append(data.Cards, landingCard{
			Href:         r.cfg.Href(p.Path),
			Image:        r.href(image),
			TitleEscaped: p.TitleEscaped,
			Date:         textutil.YMD(p.CreatedAt),
			Description:  p.Description,
		})
	}
	return execute("landing_section.tmpl", data)
}

// InjectLanding replaces the blog block of doc. Any earlier block is removed
// and the new one goes between the first works/contact section boundary.
// Without that boundary doc is returned unchanged.
func (r *Renderer) InjectLanding(doc string, posts []Post) (string, LandingResult, error) {
	cleaned := landingBlockRe.ReplaceAllString(doc, "")
	loc := landingAnchorRe.FindStringSubmatchIndex(cleaned)
	if loc == nil {
		return doc, LandingSkippedNoAnchor, nil
	}

	section, err := r.RenderLandingSection(posts)
	if err != nil {
		return "", "", err
	}
	// loc[3] ends the closing tag and its whitespace; loc[4] starts the contact section.
	out := cleaned[:loc[3]] + section + cleaned[loc[4]:]
	return out, LandingInjected, nil
}

// UpdateLanding rewrites the landing page in place. A missing page or a page
// without the anchor is skipped with a warning and is not an error.
func (r *Renderer) UpdateLanding(posts []Post) (LandingResult, error) {
	path := r.cfg.OutputPath(r.cfg.LandingPage)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Landing page not found, skipping blog section", logfields.Path(path))
			return LandingSkippedMissing, nil
		}
		return "", errors.FileSystemError("failed to read landing page").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	out, result, err := r.InjectLanding(string(data), posts)
	if err != nil {
		return "", err
	}
	if result == LandingSkippedNoAnchor {
		slog.Warn("Landing page anchor not found, skipping blog section", logfields.Path(path))
		return result, nil
	}
	if err := WriteFile(path, []byte(out)); err != nil {
		return "", err
	}
	return result, nil
}
