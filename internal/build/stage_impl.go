package build

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"git.home.luguber.info/inful/issueblog/internal/content"
	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/github"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
	"git.home.luguber.info/inful/issueblog/internal/site"
	"git.home.luguber.info/inful/issueblog/internal/templates"
)

func stageReadTemplates(_ context.Context, st *runState) error {
	dir := st.cfg.OutputPath(st.cfg.TemplatesDir)
	shell, err := templates.Load(dir)
	if err != nil {
		return err
	}
	st.shell = shell
	st.renderer = site.NewRenderer(st.cfg, shell)
	slog.Info("Templates loaded", logfields.Path(dir))
	return nil
}

func stageFetchIssues(ctx context.Context, st *runState) error {
	all, err := st.issues.ListIssues(ctx, st.cfg.Repository, st.cfg.Label)
	if err != nil {
		if errors.IsClassified(err) {
			return err
		}
		return errors.WrapError(err, errors.CategoryFetch, "failed to fetch issues").
			Fatal().
			WithContext("repository", st.cfg.Repository).
			WithContext("label", st.cfg.Label).
			Build()
	}
	st.fetched = all
	st.report.IssuesFetched = len(all)
	st.recorder.SetIssuesFetched(len(all))
	slog.Info("Issues fetched", logfields.Count(len(all)), slog.Int("articles", len(github.FilterArticles(all))))
	return nil
}

func stageRenderPosts(ctx context.Context, st *runState) error {
	articles := github.FilterArticles(st.fetched)
	st.report.Skipped = len(st.fetched) - len(articles)

	for _, issue := range articles {
		post, ok, err := renderPost(ctx, st, issue)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		st.posts = append(st.posts, post)

		if st.cfg.IncrementalSitemap {
			snapshot := slices.Clone(st.posts)
			site.SortPosts(snapshot)
			if _, err := st.renderer.WriteSitemap(snapshot, st.now); err != nil {
				return err
			}
		}
	}

	site.SortPosts(st.posts)
	st.report.Published = len(st.posts)
	st.recorder.AddPostsPublished(st.report.Published)
	st.recorder.AddPostsSkipped(st.report.Skipped)
	return nil
}

// renderPost converts and writes one issue. ok is false for drafts.
func renderPost(ctx context.Context, st *runState, issue github.Issue) (site.Post, bool, error) {
	meta, body := content.SplitFrontMatter(issue.Body)
	if meta.Draft {
		slog.Info("Skipping draft", logfields.Issue(issue.Number), logfields.Title(issue.Title))
		st.report.Drafts++
		st.report.Skipped++
		return site.Post{}, false, nil
	}

	post := site.NewPost(issue, st.cfg.BlogDir, st.now)

	res, err := st.pipeline.Render(ctx, body)
	if err != nil {
		return site.Post{}, false, err
	}
	if res.Fallback {
		st.report.MarkdownFallbacks++
		st.recorder.IncMarkdownFallback()
	}

	doc := &content.Document{Number: issue.Number, HTML: res.HTML, Meta: meta}
	if err := content.Process(doc, content.DefaultTransforms()); err != nil {
		return site.Post{}, false, err
	}
	post.Description = doc.Description
	if doc.HasImage {
		post.Image = doc.Image
	}
	fp, err := fingerprint(post, body)
	if err != nil {
		return site.Post{}, false, err
	}
	post.Fingerprint = fp

	path, err := st.renderer.WritePost(post, doc.HTML)
	if err != nil {
		return site.Post{}, false, err
	}
	st.report.addFile(path)
	st.report.Posts = append(st.report.Posts, PostSummary{
		Number:      post.Number,
		Title:       post.Title,
		Slug:        post.Slug,
		Path:        post.Path,
		Fingerprint: post.Fingerprint,
		Fallback:    res.Fallback,
	})
	slog.Info("Post written", logfields.Issue(post.Number), logfields.Title(post.Title), logfields.Path(path))
	return post, true, nil
}

func stageWriteIndex(_ context.Context, st *runState) error {
	path, err := st.renderer.WriteIndex(st.posts)
	if err != nil {
		return err
	}
	st.report.addFile(path)
	slog.Info("Listing written", logfields.Path(path), logfields.Count(len(st.posts)))
	return nil
}

func stageWriteFeed(_ context.Context, st *runState) error {
	path, err := st.renderer.WriteRSS(st.posts)
	if err != nil {
		return err
	}
	st.report.addFile(path)
	slog.Info("Feed written", logfields.Path(path), logfields.Count(min(len(st.posts), site.MaxFeedItems)))
	return nil
}

func stageWriteSitemap(_ context.Context, st *runState) error {
	path, err := st.renderer.WriteSitemap(st.posts, st.now)
	if err != nil {
		return err
	}
	st.report.addFile(path)
	slog.Info("Sitemap written", logfields.Path(path))
	return nil
}

func stageInjectLanding(_ context.Context, st *runState) error {
	result, err := st.renderer.UpdateLanding(st.posts)
	if err != nil {
		return err
	}
	st.report.Landing = result
	if result == site.LandingInjected {
		path := st.cfg.OutputPath(st.cfg.LandingPage)
		st.report.addFile(path)
		slog.Info("Landing page updated", logfields.Path(path))
	}
	return nil
}

func stageWriteReport(_ context.Context, st *runState) error {
	if st.cfg.ReportFile == "" {
		return nil
	}
	// Settled here so the file matches what Run returns.
	st.report.End = time.Now()
	st.report.deriveOutcome()
	data, err := st.report.JSON()
	if err != nil {
		return err
	}
	path := st.cfg.ResolvePath(st.cfg.ReportFile)
	if err := site.WriteFile(path, data); err != nil {
		return err
	}
	slog.Info("Report written", logfields.Path(path))
	return nil
}
