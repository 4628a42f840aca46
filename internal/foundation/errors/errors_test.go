package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "issueblog.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "issueblog.yaml" {
			t.Errorf("expected context file=issueblog.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("read templates: %w", TemplateError("template not found").Build())

		if !IsClassified(err) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryTemplate) {
			t.Error("expected error to have template category")
		}
		if GetSeverity(err) != SeverityFatal {
			t.Error("expected template error to be fatal")
		}
	})

	t.Run("Matching ignores context", func(t *testing.T) {
		sentinel := TemplateError("template not found").Build()
		err := fmt.Errorf("load: %w", TemplateError("template not found").WithContext("path", "footer.html").Build())

		if !errors.Is(err, sentinel) {
			t.Error("expected errors.Is to match sentinel")
		}
		if errors.Is(err, TemplateError("template not readable").Build()) {
			t.Error("expected different messages not to match")
		}
	})

	t.Run("Exit code", func(t *testing.T) {
		if got := ValidationError("bad").Build().ExitCode(); got != ExitFailure {
			t.Errorf("expected exit code %d, got %d", ExitFailure, got)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("connection reset")
	err := WrapError(originalErr, CategoryNetwork, "request failed").
		Warning().
		Retryable().
		WithContext("host", "api.github.com").
		Build()

	if err.RetryStrategy() != RetryBackoff {
		t.Errorf("expected retry strategy %s, got %s", RetryBackoff, err.RetryStrategy())
	}
	if !err.CanRetry() {
		t.Error("expected network error to allow retry")
	}
	if !errors.Is(err, originalErr) {
		t.Error("expected error to wrap original error")
	}

	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
		{"NetworkError", NetworkError("test"), CategoryNetwork, SeverityError},
		{"TemplateError", TemplateError("test"), CategoryTemplate, SeverityFatal},
		{"RenderError", RenderError("test"), CategoryRender, SeverityFatal},
		{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityFatal},
		{"GitError", GitError("test"), CategoryGit, SeverityError},
		{"NotifyError", NotifyError("test"), CategoryNotify, SeverityWarning},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			if err.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category())
			}
			if err.Severity() != tt.severity {
				t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
			}
		})
	}
}
