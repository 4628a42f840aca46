// Package site renders the generated pages: one article page per post, the
// blog listing, the RSS feed, the sitemap and the blog section of the
// landing page.
package site
