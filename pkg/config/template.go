package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// ProjectName pre-fills project_name when set.
	ProjectName string
}

const templateHeader = `# hlgen configuration
# See: https://github.com/sevenzing/rust-html-generator
`

const minimalTemplate = `
# Root name of the file tree and of every jump target.
# Defaults to the name of the scanned directory.
# project_name: my-project

# Path of the generated report.
output: output.html

# Index library_roots for navigation and keep vendored files.
# scan_whole: false

# Write the report without minification.
# no_compress: false

# Glob patterns (doublestar syntax) for files to leave out.
# ignore:
#   - "**/*.min.js"
#   - "testdata/**"

# Chroma style for highlight colors; run "hlgen themes" for the list.
# theme: monokai

# Files larger than this many bytes are rendered without highlighting.
# max_file_size: 1048576

# Extra directories indexed for jump-to-definition only.
# library_roots:
#   - ~/go/pkg/mod

# navigation:
#   # Attach reference lists to tokens without a definition.
#   references_only: false
#   # Render reference lists at all.
#   references: true
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		cfg := NewConfig()
		cfg.ProjectName = opts.ProjectName
		refs := true
		cfg.Navigation.References = &refs

		out, err := cfg.ToYAMLWithHeader(templateHeader)
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return out, nil
	}

	body := minimalTemplate
	if opts.ProjectName != "" {
		body = replaceFirst(body, "# project_name: my-project", "project_name: "+quoteYAML(opts.ProjectName))
	}
	return []byte(templateHeader + body), nil
}

func replaceFirst(s, old, replacement string) string {
	return string(bytes.Replace([]byte(s), []byte(old), []byte(replacement), 1))
}

// quoteYAML renders s as a YAML scalar.
func quoteYAML(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return string(bytes.TrimRight(out, "\n"))
}
