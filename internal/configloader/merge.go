package configloader

import "github.com/sevenzing/rust-html-generator/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Pointers: override overwrites base if non-nil
//   - Booleans: only true is carried over, a file cannot unset a flag
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.ProjectName != "" {
		result.ProjectName = override.ProjectName
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.Dir != "" {
		result.Dir = override.Dir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.ScanWhole {
		result.ScanWhole = true
	}
	if override.NoCompress {
		result.NoCompress = true
	}
	if override.Navigation.ReferencesOnly {
		result.Navigation.ReferencesOnly = true
	}
	if override.Navigation.References != nil {
		result.Navigation.References = override.Navigation.References
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.LibraryRoots != nil {
		result.LibraryRoots = override.LibraryRoots
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
