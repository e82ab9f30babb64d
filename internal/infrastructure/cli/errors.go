package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/reqtrack/pkg/storage"
)

// ErrInvalidRequirements is returned by validate when at least one
// requirement fails validation.
var ErrInvalidRequirements = errors.New("invalid requirements found")

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	var schemaErr *storage.SchemaError
	if errors.As(err, &schemaErr) {
		return NewCLIError(
			"manifest has an invalid structure",
			"Each requirement needs title, description, type and an integer priority; smart flags must be booleans",
			err,
		)
	}

	switch {
	case errors.Is(err, storage.ErrManifestNotFound):
		return NewCLIError("requirements manifest not found",
			fmt.Sprintf("Pass a manifest path or create %s in the current directory", storage.ManifestFile), err)
	case errors.Is(err, ErrInvalidRequirements):
		e := NewCLIError("some requirements are invalid", "Fix the fields listed above and mark all five SMART criteria", err)
		e.ExitCode = 2
		return e
	}

	return err
}
