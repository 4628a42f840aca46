package content

import (
	"log/slog"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

// Meta is the optional YAML block at the top of an issue body.
type Meta struct {
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Draft       bool   `yaml:"draft"`
}

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// SplitFrontMatter separates a leading front matter block from body. A body
// without one, or whose block does not parse, is returned whole with zero Meta.
func SplitFrontMatter(body string) (Meta, string) {
	if !strings.HasPrefix(strings.TrimLeft(body, "\r\n"), "---") {
		return Meta{}, body
	}
	var meta Meta
	rest, err := frontmatter.Parse(strings.NewReader(body), &meta, yamlFormat)
	if err != nil {
		slog.Debug("Front matter did not parse, using whole body", logfields.Error(err))
		return Meta{}, body
	}
	return meta, string(rest)
}
