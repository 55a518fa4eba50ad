package langdetect

import (
	"path/filepath"
	"strings"
)

// Language identifies a source language the engine has a backend for.
type Language string

// Supported languages. Plain means no dedicated backend; the engine may
// still highlight the file with a generic lexer.
const (
	Plain      Language = "plain"
	Go         Language = "go"
	Rust       Language = "rust"
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	C          Language = "c"
	CPP        Language = "cpp"
	Bash       Language = "bash"
	YAML       Language = "yaml"
	TOML       Language = "toml"
	JSON       Language = "json"
	Markdown   Language = "markdown"
)

//nolint:gochecknoglobals // Read-only lookup table.
var extLanguages = map[string]Language{
	".go":       Go,
	".rs":       Rust,
	".py":       Python,
	".pyi":      Python,
	".js":       JavaScript,
	".jsx":      JavaScript,
	".mjs":      JavaScript,
	".cjs":      JavaScript,
	".ts":       TypeScript,
	".mts":      TypeScript,
	".cts":      TypeScript,
	".tsx":      TSX,
	".c":        C,
	".h":        C,
	".cpp":      CPP,
	".cc":       CPP,
	".cxx":      CPP,
	".hpp":      CPP,
	".hh":       CPP,
	".sh":       Bash,
	".bash":     Bash,
	".zsh":      Bash,
	".yaml":     YAML,
	".yml":      YAML,
	".toml":     TOML,
	".json":     JSON,
	".jsonc":    JSON,
	".md":       Markdown,
	".markdown": Markdown,
}

//nolint:gochecknoglobals // Read-only lookup table.
var fileLanguages = map[string]Language{
	".bashrc":    Bash,
	".zshrc":     Bash,
	".profile":   Bash,
	"Cargo.toml": TOML,
	"Pipfile":    TOML,
}

// ByName returns the language implied by a file name alone, or Plain.
func ByName(path string) Language {
	base := filepath.Base(path)
	if lang, ok := fileLanguages[base]; ok {
		return lang
	}
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(base))]; ok {
		return lang
	}
	return Plain
}

// ForFile detects the language of a file: by name first, then by shebang,
// then, for files without an extension, by content.
func ForFile(path string, content []byte) Language {
	if lang := ByName(path); lang != Plain {
		return lang
	}
	if filepath.Ext(path) != "" {
		return fromEnryName(shebang(content))
	}
	return Detect(content)
}

// fromEnryName maps go-enry language names onto supported languages.
func fromEnryName(name string) Language {
	switch name {
	case "Go":
		return Go
	case "Rust":
		return Rust
	case "Python":
		return Python
	case "JavaScript":
		return JavaScript
	case "TypeScript":
		return TypeScript
	case "TSX":
		return TSX
	case "C":
		return C
	case "C++":
		return CPP
	case "Shell":
		return Bash
	case "YAML":
		return YAML
	case "TOML":
		return TOML
	case "JSON", "JSON with Comments":
		return JSON
	case "Markdown":
		return Markdown
	default:
		return Plain
	}
}
