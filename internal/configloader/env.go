package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sevenzing/rust-html-generator/pkg/config"
)

// envVarPrefix is the prefix for all hlgen environment variables.
const envVarPrefix = "HLGEN_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"PROJECT_NAME":               {field: "project_name", typ: envTypeString, help: "Root name of the file tree"},
	"OUTPUT":                     {field: "output", typ: envTypeString, help: "Path of the generated report"},
	"SCAN_WHOLE":                 {field: "scan_whole", typ: envTypeBool, help: "Index library roots: true or false"},
	"NO_COMPRESS":                {field: "no_compress", typ: envTypeBool, help: "Skip minification: true or false"},
	"IGNORE":                     {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore globs"},
	"THEME":                      {field: "theme", typ: envTypeString, help: "Chroma style for highlight colors"},
	"MAX_FILE_SIZE":              {field: "max_file_size", typ: envTypeInt, help: "Largest analyzed file in bytes"},
	"LIBRARY_ROOTS":              {field: "library_roots", typ: envTypeSlice, help: "Comma-separated library directories"},
	"JOBS":                       {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"NAVIGATION_REFERENCES_ONLY": {field: "navigation.references_only", typ: envTypeBool, help: "Reference-only navigation: true or false"},
	"NAVIGATION_REFERENCES":      {field: "navigation.references", typ: envTypeBool, help: "Render reference lists: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with HLGEN_ (e.g., HLGEN_THEME).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "project_name":
		cfg.ProjectName = value
	case "output":
		cfg.Output = value
	case "theme":
		cfg.Theme = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "scan_whole":
		cfg.ScanWhole = value
	case "no_compress":
		cfg.NoCompress = value
	case "navigation.references_only":
		cfg.Navigation.ReferencesOnly = value
	case "navigation.references":
		cfg.Navigation.References = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "max_file_size":
		cfg.MaxFileSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "library_roots":
		cfg.LibraryRoots = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.help
	}
	return out
}
