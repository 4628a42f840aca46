package templates

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

const header = `<!doctype html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>Site</title>
</head>
<body>`

func writeShell(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, HeaderFile), []byte(header), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FooterFile), []byte("</body>\n</html>\n"), 0o600))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeShell(t, dir)

	shell, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, header, shell.Header)
	assert.Equal(t, "</body>\n</html>\n", shell.Footer)
}

func TestLoadMissingFooter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, HeaderFile), []byte(header), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrMissingTemplate))
	assert.True(t, errors.HasCategory(err, errors.CategoryTemplate))
	assert.Equal(t, errors.SeverityFatal, errors.GetSeverity(err))
}

func TestWithHead(t *testing.T) {
	shell := Shell{Header: header + "<title>second</title>"}

	got := shell.WithHead(`A & B`, `<link rel="canonical" href="https://x/">`)
	assert.Contains(t, got, "<title>A &amp; B</title>")
	assert.Contains(t, got, "<title>second</title>", "only the first title is replaced")
	assert.Contains(t, got, "<link rel=\"canonical\" href=\"https://x/\">\n</head>")
	assert.NotContains(t, got, "<title>Site</title>")
}

func TestWithHeadNoHeadClose(t *testing.T) {
	shell := Shell{Header: "<title>x</title><body>"}
	assert.Equal(t, "<title>y</title><body>", shell.WithHead("y", "<meta name=a>"))
}

func TestPage(t *testing.T) {
	shell := Shell{Header: header, Footer: "</body></html>"}
	page := shell.Page("Blog", "", "<main>hi</main>")
	want := strings.Replace(header, "<title>Site</title>", "<title>Blog</title>", 1) + "\n<main>hi</main>\n</body></html>\n"
	assert.Equal(t, want, page)
}
