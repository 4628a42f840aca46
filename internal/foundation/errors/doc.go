// Package errors provides the classified error primitives used across issueblog.
//
// A ClassifiedError carries a category (config, fetch, template, ...), a
// severity and optional structured context. The CLI adapter turns any error
// into a log record and a process exit code.
//
//	err := errors.TemplateError("template not found").
//		WithCause(readErr).
//		WithContext("path", path).
//		Build()
package errors
