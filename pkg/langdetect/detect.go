// Package langdetect decides which analysis backend handles a file.
// File names decide most cases; go-enry shebang and classifier detection
// cover scripts and extensionless files.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates are the enry names the classifier may pick from.
//
//nolint:gochecknoglobals // Read-only list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Rust", "C", "C++", "JSON", "YAML", "TOML", "Markdown",
}

// Detect returns the language of content with no usable file name.
// Returns Plain if detection fails or confidence is low.
func Detect(content []byte) Language {
	if len(content) == 0 {
		return Plain
	}

	if lang := fromEnryName(shebang(content)); lang != Plain {
		return lang
	}

	if lang := detectByPattern(content); lang != Plain {
		return lang
	}

	if name, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && name != "" {
		return fromEnryName(name)
	}

	return Plain
}

// shebang returns the enry language named by an interpreter line, or "".
func shebang(content []byte) string {
	if name, safe := enry.GetLanguageByShebang(content); safe {
		return name
	}
	return ""
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(content []byte) Language {
	text := string(content)
	trimmed := bytes.TrimSpace(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return Go
	case looksLikePython(text):
		return Python
	case looksLikeJSON(trimmed):
		return JSON
	case looksLikeRust(text):
		return Rust
	case looksLikeJavaScript(text):
		return JavaScript
	case looksLikeYAML(content):
		return YAML
	}
	return Plain
}

func looksLikePython(text string) bool {
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return true
	}
	// "import (" is a Go import block.
	if strings.Contains(text, "import ") && !strings.Contains(text, "import (") &&
		(strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import ")) {
		return true
	}
	return strings.Contains(text, "__name__") || strings.Contains(text, "__main__")
}

func looksLikeJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func looksLikeRust(text string) bool {
	return strings.Contains(text, "fn main()") ||
		strings.Contains(text, "println!") ||
		strings.Contains(text, "let mut ")
}

func looksLikeJavaScript(text string) bool {
	return strings.Contains(text, "=>") ||
		strings.Contains(text, "const ") ||
		strings.Contains(text, "console.log")
}

// looksLikeYAML counts "key: value" lines and root list items.
func looksLikeYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}
