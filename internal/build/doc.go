// Package build runs the blog build: read the page shell, fetch issues,
// render every post, then write the listing, feed, sitemap, landing page
// section and report. Stages run strictly in order and the first error
// aborts the run.
package build
