package site

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.FileSystemError("failed to create output directory").
			WithCause(err).
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FileSystemError("failed to write output file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
