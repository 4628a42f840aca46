package content

import (
	"regexp"
	"strings"
)

const (
	privateImageHost = "private-user-images.githubusercontent.com"
	legacyImageHost  = "user-images.githubusercontent.com"
	assetBase        = "https://github.com/user-attachments/assets/"
)

var (
	// https://private-user-images.githubusercontent.com/{user}/{n}-{uuid}.png?jwt=...
	privateImageRe = regexp.MustCompile(`https://private-user-images\.githubusercontent\.com/\d+/\d+-([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(\.[A-Za-z0-9]+)?(?:\?[^"'\s<>)]*)?`)
	// https://user-images.githubusercontent.com/{user}/{uuid}.png
	legacyImageRe = regexp.MustCompile(`https://user-images\.githubusercontent\.com/\d+/([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(\.[A-Za-z0-9]+)?`)
)

// NormalizeImageURLs rewrites signed and legacy GitHub image URLs to the
// permanent user-attachments form, keeping the asset id and extension.
// Anything else is left alone.
func NormalizeImageURLs(html string) string {
	if !strings.Contains(html, privateImageHost) && !strings.Contains(html, legacyImageHost) {
		return html
	}
	html = privateImageRe.ReplaceAllString(html, assetBase+"${1}${2}")
	return legacyImageRe.ReplaceAllString(html, assetBase+"${1}${2}")
}
