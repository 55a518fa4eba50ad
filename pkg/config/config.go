// Package config defines core configuration types for hlgen.
// These types are pure data structures with no dependency on how they are loaded.
package config

// DefaultOutput is the report file name used when none is configured.
const DefaultOutput = "output.html"

// DefaultMaxFileSize is the largest file analyzed by default (1 MiB).
const DefaultMaxFileSize int64 = 1 << 20

// NavigationConfig controls jump-to-definition and reference markup.
type NavigationConfig struct {
	// ReferencesOnly attaches navigation to tokens that have references
	// but no definition, with an empty definition.
	ReferencesOnly bool `mapstructure:"references_only" yaml:"references_only"`

	// References enables reference lists. Nil means enabled.
	References *bool `mapstructure:"references" yaml:"references,omitempty"`
}

// ReferencesEnabled reports whether reference lists are rendered.
func (n NavigationConfig) ReferencesEnabled() bool {
	return n.References == nil || *n.References
}

// Config is the root configuration structure for hlgen.
type Config struct {
	// ProjectName is the root name of the file tree and the prefix of
	// every jump target. Empty means the base name of Dir.
	ProjectName string `mapstructure:"project_name" yaml:"project_name,omitempty"`

	// Output is the path of the generated HTML file.
	Output string `mapstructure:"output" yaml:"output"`

	// ScanWhole indexes LibraryRoots for navigation and keeps vendored files.
	ScanWhole bool `mapstructure:"scan_whole" yaml:"scan_whole"`

	// NoCompress disables HTML minification.
	NoCompress bool `mapstructure:"no_compress" yaml:"no_compress"`

	// Ignore contains doublestar glob patterns for files to leave out.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Theme is a chroma style name. Empty selects the built-in palette.
	Theme string `mapstructure:"theme" yaml:"theme,omitempty"`

	// MaxFileSize is the largest file, in bytes, that is analyzed.
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size"`

	// LibraryRoots are extra directories indexed for navigation only.
	LibraryRoots []string `mapstructure:"library_roots" yaml:"library_roots,omitempty"`

	// Navigation controls jump markup.
	Navigation NavigationConfig `mapstructure:"navigation" yaml:"navigation"`

	// CLI-level options (not persisted to config files).

	// Dir is the root directory of the project.
	Dir string `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Output:      DefaultOutput,
		MaxFileSize: DefaultMaxFileSize,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}
