// Package markdown turns issue bodies into HTML fragments.
//
// Raw HTML embedded in a body (tweet embeds, elements carrying class or style
// attributes) is swapped for numbered placeholder tokens before conversion
// and put back afterwards, so the converter cannot escape or re-wrap it.
package markdown
