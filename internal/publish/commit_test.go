package publish

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

func countCommits(t *testing.T, repo *git.Repository) int {
	t.Helper()
	head, err := repo.Head()
	if err != nil {
		return 0
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	require.NoError(t, err)
	n := 0
	require.NoError(t, iter.ForEach(func(*object.Commit) error {
		n++
		return nil
	}))
	return n
}

func write(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func TestCommitOnlyWhenChanged(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	rss := filepath.Join(root, "rss.xml")
	post := filepath.Join(root, "blog", "1", "index.html")
	write(t, rss, "<rss/>")
	write(t, post, "<html>one</html>")
	opts := Options{When: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)}

	res, err := Commit(root, []string{rss, post}, opts)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.ElementsMatch(t, []string{"rss.xml", "blog/1/index.html"}, res.Changed)
	assert.Equal(t, 1, countCommits(t, repo))

	res, err = Commit(root, []string{rss, post}, opts)
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.Equal(t, 1, countCommits(t, repo))

	write(t, post, "<html>two</html>")
	res, err = Commit(root, []string{rss, post}, opts)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Equal(t, []string{"blog/1/index.html"}, res.Changed)
	assert.Equal(t, 2, countCommits(t, repo))

	commit, err := repo.CommitObject(mustHead(t, repo))
	require.NoError(t, err)
	assert.Equal(t, DefaultMessage, commit.Message)
	assert.Equal(t, DefaultAuthorName, commit.Author.Name)
}

func mustHead(t *testing.T, repo *git.Repository) plumbing.Hash {
	t.Helper()
	ref, err := repo.Head()
	require.NoError(t, err)
	return ref.Hash()
}

func TestCommitFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	site := filepath.Join(root, "site")
	file := filepath.Join(site, "sitemap.xml")
	write(t, file, "<urlset/>")

	res, err := Commit(site, []string{file}, Options{Message: "Rebuild"})
	require.NoError(t, err)
	assert.Equal(t, []string{"site/sitemap.xml"}, res.Changed)
	assert.Equal(t, 1, countCommits(t, repo))
}

func TestCommitRejectsOutsideFiles(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "x.html")
	write(t, outside, "x")

	_, err = Commit(root, []string{outside}, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestCommitWithoutRepository(t *testing.T) {
	_, err := Commit(t.TempDir(), nil, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryGit))
	assert.Equal(t, errors.SeverityError, errors.GetSeverity(err))
	assert.Contains(t, err.Error(), "failed to open git repository")
}
