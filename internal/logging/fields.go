// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldJobs      = "jobs"
	FieldProject   = "project"
	FieldTheme     = "theme"
	FieldLanguage  = "language"
	FieldReason    = "reason"
	FieldSize      = "size"
	FieldDuration  = "duration"
	FieldCompress  = "compress"
	FieldLibraries = "library_roots"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesAnalyzed   = "files_analyzed"
	FieldSkipped         = "skipped"
	FieldTokens          = "tokens"
	FieldLinks           = "links"
	FieldChanged         = "changed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
