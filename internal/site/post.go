package site

import (
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/github"
	"git.home.luguber.info/inful/issueblog/internal/textutil"
)

// Post is the publishable form of one issue.
type Post struct {
	Number       int
	Title        string
	TitleEscaped string
	Slug         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// Path is the public path, "/{blogDir}/{number}/".
	Path     string
	IssueURL string

	Description string
	Image       string // empty when the body has no image
	Fingerprint string
}

// NewPost derives a Post from issue. An untitled issue gets a placeholder
// title; a missing creation time falls back to the update time, then now.
func NewPost(issue github.Issue, blogDir string, now time.Time) Post {
	title := issue.Title
	if title == "" {
		title = "(no title #" + strconv.Itoa(issue.Number) + ")"
	}
	created := issue.CreatedAt
	if created.IsZero() {
		created = issue.UpdatedAt
	}
	if created.IsZero() {
		created = now
	}
	return Post{
		Number:       issue.Number,
		Title:        title,
		TitleEscaped: textutil.EscapeHTML(title),
		Slug:         textutil.Slug(title, "post-"+strconv.Itoa(issue.Number)),
		CreatedAt:    created,
		UpdatedAt:    issue.UpdatedAt,
		Path:         "/" + blogDir + "/" + strconv.Itoa(issue.Number) + "/",
		IssueURL:     issue.HTMLURL,
	}
}

// OutputDir is the directory holding a post's index.html, relative to the
// output root.
func OutputDir(blogDir string, number int) string {
	return filepath.Join(blogDir, strconv.Itoa(number))
}

// LastModified is UpdatedAt, or CreatedAt when the issue was never edited.
func (p Post) LastModified() time.Time {
	if p.UpdatedAt.IsZero() {
		return p.CreatedAt
	}
	return p.UpdatedAt
}

// SortPosts orders posts newest first. Equal timestamps keep their order.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
