// Package content post-processes converted issue HTML: stable image URLs,
// code block markup, the first image and a plain-text summary. Issue bodies
// may also open with a YAML front matter block.
package content
