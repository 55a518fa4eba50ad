package cli

import (
	"errors"

	"github.com/sevenzing/rust-html-generator/internal/configloader"
	"github.com/sevenzing/rust-html-generator/pkg/fsutil"
	"github.com/sevenzing/rust-html-generator/pkg/runner"
	"github.com/sevenzing/rust-html-generator/pkg/tokenstream"
)

// Exit codes for hlgen.
const (
	// ExitSuccess indicates the report was written.
	ExitSuccess = 0

	// ExitFailure indicates a failure with no more specific code.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validation *configloader.ValidationError
	var invariant *tokenstream.InvariantError

	switch {
	case errors.As(err, &validation), errors.Is(err, runner.ErrNotDirectory):
		return ExitConfigError
	case errors.As(err, &invariant):
		return ExitInternalError
	case errors.Is(err, ErrWriteOutput),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitFailure
	}
}
