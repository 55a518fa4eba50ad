package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sevenzing/rust-html-generator/pkg/config"
	"github.com/sevenzing/rust-html-generator/pkg/report"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "ignore[0]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
// An empty Dir is not checked, so file configs validate on their own.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Dir != "" {
		validateDir(cfg.Dir, result)
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.MaxFileSize <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_file_size",
			Value:   cfg.MaxFileSize,
			Message: "max_file_size must be > 0",
		})
	}

	if cfg.Output == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output",
			Message: "output must not be empty",
		})
	}

	if cfg.Theme != "" && !report.KnownTheme(cfg.Theme) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "theme",
			Value:   cfg.Theme,
			Message: fmt.Sprintf("unknown theme %q; run 'hlgen themes' for the list", cfg.Theme),
		})
	}

	if cfg.Navigation.ReferencesOnly && !cfg.Navigation.ReferencesEnabled() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "navigation.references_only",
			Value:   true,
			Message: "has no effect while navigation.references is false",
		})
	}

	if len(cfg.LibraryRoots) > 0 && !cfg.ScanWhole {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "library_roots",
			Value:   cfg.LibraryRoots,
			Message: "library roots are only indexed with scan_whole",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func validateDir(dir string, result *ValidationResult) {
	info, err := os.Stat(dir)
	switch {
	case err != nil:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "dir",
			Value:   dir,
			Message: fmt.Sprintf("cannot read directory: %v", err),
		})
	case !info.IsDir():
		result.Errors = append(result.Errors, ValidationError{
			Field:   "dir",
			Value:   dir,
			Message: "not a directory",
		})
	}
}

// validateIgnorePatterns checks that ignore patterns are valid doublestar globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: "invalid glob pattern",
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
