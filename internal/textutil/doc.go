// Package textutil holds the small string helpers shared by the renderers:
// HTML escaping, slugs and the date layouts used in pages and feeds.
package textutil
