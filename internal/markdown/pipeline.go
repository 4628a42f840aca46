package markdown

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

// Result is the output of one Render call.
type Result struct {
	HTML string
	// Fallback is set when conversion failed and the raw text was used.
	Fallback bool
}

// Pipeline runs protect, convert and restore for one body at a time.
type Pipeline struct {
	protector *Protector
	converter Converter
}

func NewPipeline(converter Converter, protector *Protector) *Pipeline {
	if protector == nil {
		protector = NewProtector()
	}
	return &Pipeline{protector: protector, converter: converter}
}

// Render converts body. A converter failure is not an error: it is logged
// and the protected raw text stands in for the converted HTML. Only a
// cancelled context is returned as an error.
func (p *Pipeline) Render(ctx context.Context, body string) (Result, error) {
	protected, frags := p.protector.Protect(body)

	converted, err := p.converter.Convert(ctx, protected)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		slog.Warn("Markdown conversion failed, using raw text", logfields.Error(err))
		return Result{HTML: frags.Restore(protected), Fallback: true}, nil
	}
	return Result{HTML: frags.Restore(converted)}, nil
}
