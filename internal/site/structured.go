package site

import (
	"encoding/json"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

type blogPosting struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	DatePublished    string       `json:"datePublished"`
	DateModified     string       `json:"dateModified"`
	URL              string       `json:"url"`
	MainEntityOfPage webPage      `json:"mainEntityOfPage"`
	Author           person       `json:"author"`
	Publisher        organization `json:"publisher"`
	Image            string       `json:"image"`
	Description      string       `json:"description"`
}

type webPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type organization struct {
	Type string    `json:"@type"`
	Name string    `json:"name"`
	Logo imageInfo `json:"logo"`
}

type imageInfo struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// structuredData returns the BlogPosting JSON-LD for post. encoding/json
// escapes <, > and &, so the result is safe inside a script element.
func (r *Renderer) structuredData(post Post, canonical, image string) (string, error) {
	loc := r.cfg.Location()
	v := blogPosting{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         post.Title,
		DatePublished:    textutil.StructuredDate(post.CreatedAt, loc),
		DateModified:     textutil.StructuredDate(post.LastModified(), loc),
		URL:              canonical,
		MainEntityOfPage: webPage{Type: "WebPage", ID: canonical},
		Author:           person{Type: "Person", Name: r.cfg.Author},
		Publisher: organization{
			Type: "Organization",
			Name: r.cfg.SiteTitle,
			Logo: imageInfo{Type: "ImageObject", URL: r.absoluteURL(r.cfg.PublisherLogo)},
		},
		Image:       image,
		Description: post.Description,
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.RenderError("failed to encode structured data").
			WithCause(err).
			WithContext("issue", post.Number).
			Build()
	}
	return string(data), nil
}
