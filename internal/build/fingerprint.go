package build

import (
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/site"
)

type fingerprintFields struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title"`
	Source string `yaml:"source"`
}

// fingerprint hashes the identifying fields and Markdown body of a post so
// report consumers can tell which posts changed between runs.
func fingerprint(post site.Post, body string) (string, error) {
	fields, err := yaml.Marshal(fingerprintFields{Number: post.Number, Title: post.Title, Source: post.IssueURL})
	if err != nil {
		return "", errors.InternalError("failed to serialize fingerprint fields").
			WithCause(err).
			WithContext("issue", post.Number).
			Build()
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fields), "\n"), body), nil
}
