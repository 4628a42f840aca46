// Package github talks to the two GitHub REST endpoints the build needs: the
// issue list of a repository and the Markdown rendering API.
package github
