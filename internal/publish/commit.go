// Package publish commits generated files to the git worktree holding them.
package publish

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

const (
	DefaultMessage     = "Update blog"
	DefaultAuthorName  = "github-actions[bot]"
	DefaultAuthorEmail = "41898282+github-actions[bot]@users.noreply.github.com"
)

// Options control the commit.
type Options struct {
	Message     string
	AuthorName  string
	AuthorEmail string
	// When stamps the commit; zero means now.
	When time.Time
}

func (o Options) withDefaults() Options {
	if o.Message == "" {
		o.Message = DefaultMessage
	}
	if o.AuthorName == "" {
		o.AuthorName = DefaultAuthorName
	}
	if o.AuthorEmail == "" {
		o.AuthorEmail = DefaultAuthorEmail
	}
	if o.When.IsZero() {
		o.When = time.Now()
	}
	return o
}

// Result describes what Commit did.
type Result struct {
	Committed bool
	Hash      string
	// Changed lists the worktree-relative paths that went into the commit.
	Changed []string
}

// Commit stages files in the repository containing root and commits them
// when at least one of them changed. Files outside the worktree are an error.
func Commit(root string, files []string, opts Options) (Result, error) {
	opts = opts.withDefaults()

	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Result{}, errors.GitError("failed to open git repository").WithCause(err).
			WithContext("root", root).
			Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return Result{}, errors.GitError("failed to get git worktree").WithCause(err).Build()
	}
	top, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve worktree root").Build()
	}

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := worktreePath(top, f)
		if err != nil {
			return Result{}, err
		}
		if _, err := wt.Add(rel); err != nil {
			return Result{}, errors.GitError("failed to stage file").WithCause(err).
				WithContext("path", rel).
				Build()
		}
		rels = append(rels, rel)
	}

	status, err := wt.Status()
	if err != nil {
		return Result{}, errors.GitError("failed to get git status").WithCause(err).Build()
	}
	var changed []string
	for _, rel := range rels {
		fs, ok := status[rel]
		if ok && fs.Staging != git.Unmodified && fs.Staging != git.Untracked {
			changed = append(changed, rel)
		}
	}
	if len(changed) == 0 {
		slog.Info("Nothing to commit", logfields.Path(top))
		return Result{}, nil
	}

	hash, err := wt.Commit(opts.Message, &git.CommitOptions{
		Author: &object.Signature{Name: opts.AuthorName, Email: opts.AuthorEmail, When: opts.When},
	})
	if err != nil {
		return Result{}, errors.GitError("failed to commit").WithCause(err).Build()
	}
	slog.Info("Committed generated files", logfields.Count(len(changed)), slog.String("commit", hash.String()))
	return Result{Committed: true, Hash: hash.String(), Changed: changed}, nil
}

func worktreePath(top, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve path").
			WithContext("path", file).
			Build()
	}
	rel, err := filepath.Rel(top, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.ValidationError("file is outside the git worktree").
			WithContext("path", file).
			WithContext("worktree", top).
			Build()
	}
	return filepath.ToSlash(rel), nil
}
