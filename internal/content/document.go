package content

import (
	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

// Document carries one converted issue body through the transforms.
type Document struct {
	Number int
	HTML   string
	Meta   Meta

	// Set by the transforms.
	Image       string
	HasImage    bool
	Description string
}

// Transform is one named processing step.
type Transform struct {
	Name  string
	Apply func(doc *Document) error
}

// DefaultTransforms is the processing order for every post: stable image
// URLs first so the picked image is the rewritten one.
func DefaultTransforms() []Transform {
	return []Transform{
		{Name: "normalize_images", Apply: func(doc *Document) error {
			doc.HTML = NormalizeImageURLs(doc.HTML)
			return nil
		}},
		{Name: "reformat_code", Apply: func(doc *Document) error {
			doc.HTML = ReformatCodeBlocks(doc.HTML)
			return nil
		}},
		{Name: "first_image", Apply: func(doc *Document) error {
			if doc.Meta.Image != "" {
				doc.Image, doc.HasImage = doc.Meta.Image, true
				return nil
			}
			doc.Image, doc.HasImage = FirstImage(doc.HTML)
			return nil
		}},
		{Name: "describe", Apply: func(doc *Document) error {
			if doc.Meta.Description != "" {
				doc.Description = doc.Meta.Description
				return nil
			}
			doc.Description = Summarize(doc.HTML, DefaultSummaryLength)
			return nil
		}},
	}
}

// Process runs transforms over doc in order and stops at the first failure.
func Process(doc *Document, transforms []Transform) error {
	for _, t := range transforms {
		if err := t.Apply(doc); err != nil {
			return errors.RenderError("content transform failed").
				WithCause(err).
				WithContext("transform", t.Name).
				WithContext("issue", doc.Number).
				Build()
		}
	}
	return nil
}
