package markdown

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns Markdown into an HTML fragment.
type Converter interface {
	Convert(ctx context.Context, text string) (string, error)
}

// MarkdownRenderer is the remote rendering call GitHubConverter needs.
type MarkdownRenderer interface {
	RenderMarkdown(ctx context.Context, text, repo string) (string, error)
}

// GitHubConverter renders through the GitHub Markdown API in gfm mode.
type GitHubConverter struct {
	Client MarkdownRenderer
	Repo   string
}

func (c GitHubConverter) Convert(ctx context.Context, text string) (string, error) {
	return c.Client.RenderMarkdown(ctx, text, c.Repo)
}

// GoldmarkConverter renders locally with GitHub Flavored Markdown and raw
// HTML passed through.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (c *GoldmarkConverter) Convert(_ context.Context, text string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
