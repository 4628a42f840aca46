// Package templates loads the shared page shell (header and footer) and
// injects per-page head content into it.
package templates

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

const (
	HeaderFile = "header.html"
	FooterFile = "footer.html"
)

// ErrMissingTemplate is matched with errors.Is when header or footer cannot be read.
var ErrMissingTemplate = stderrors.New("missing template")

var titleRe = regexp.MustCompile(`(?is)<title>.*?</title>`)

// Shell is the header and footer every generated page is wrapped in.
type Shell struct {
	Header string
	Footer string
}

// Load reads header.html and footer.html from dir.
func Load(dir string) (Shell, error) {
	header, err := readTemplate(filepath.Join(dir, HeaderFile))
	if err != nil {
		return Shell{}, err
	}
	footer, err := readTemplate(filepath.Join(dir, FooterFile))
	if err != nil {
		return Shell{}, err
	}
	return Shell{Header: header, Footer: footer}, nil
}

func readTemplate(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", errors.TemplateError("template not readable").
			WithCause(fmt.Errorf("%w: %w", ErrMissingTemplate, err)).
			WithContext("path", path).
			Build()
	}
	return string(data), nil
}

// WithHead returns the header with the first <title> element replaced by
// title (escaped here) and headBlock inserted right before the first </head>.
func (s Shell) WithHead(title, headBlock string) string {
	header := s.Header
	if loc := titleRe.FindStringIndex(header); loc != nil {
		header = header[:loc[0]] + "<title>" + textutil.EscapeHTML(title) + "</title>" + header[loc[1]:]
	}
	if headBlock == "" {
		return header
	}
	if i := strings.Index(header, "</head>"); i >= 0 {
		header = header[:i] + headBlock + "\n" + header[i:]
	}
	return header
}

// Page wraps main in the shell.
func (s Shell) Page(title, headBlock, main string) string {
	page := s.WithHead(title, headBlock) + "\n" + main + "\n" + s.Footer
	return strings.TrimSpace(page) + "\n"
}
