package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenzing/rust-html-generator/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "output.html", cfg.Output)
	assert.Equal(t, int64(1<<20), cfg.MaxFileSize)
	assert.True(t, cfg.Navigation.ReferencesEnabled())
	assert.False(t, cfg.Navigation.ReferencesOnly)
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		t.Parallel()
		refs := false
		original := &config.Config{
			Ignore:       []string{"*.min.js", "vendor/**"},
			LibraryRoots: []string{"/lib"},
			Navigation:   config.NavigationConfig{References: &refs},
			Dir:          "/src",
			Jobs:         4,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.LibraryRoots[0] = "changed"
		*clone.Navigation.References = true

		assert.Equal(t, "*.min.js", original.Ignore[0])
		assert.Equal(t, "/lib", original.LibraryRoots[0])
		assert.False(t, original.Navigation.ReferencesEnabled())
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ProjectName = "demo"
	cfg.Theme = "monokai"
	cfg.Ignore = []string{"**/*.lock"}
	cfg.Dir = "/not/persisted"

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "project_name: demo")
	assert.NotContains(t, string(data), "/not/persisted")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "demo", parsed.ProjectName)
	assert.Equal(t, "monokai", parsed.Theme)
	assert.Equal(t, []string{"**/*.lock"}, parsed.Ignore)
	assert.Empty(t, parsed.Dir)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("navigation:\n  references: false\nscan_whole: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.ScanWhole)
	assert.False(t, cfg.Navigation.ReferencesEnabled())

	_, err = config.FromYAML([]byte("output: [unclosed"))
	require.Error(t, err)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\noutput: output.html\n`, string(data))
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses to defaults", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# hlgen configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultOutput, cfg.Output)
		assert.Empty(t, cfg.ProjectName)
	})

	t.Run("project name is filled in", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{ProjectName: "my: app"})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "my: app", cfg.ProjectName)
	})

	t.Run("full template lists every setting", func(t *testing.T) {
		t.Parallel()
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultMaxFileSize, cfg.MaxFileSize)
		assert.True(t, cfg.Navigation.ReferencesEnabled())
		assert.Contains(t, string(data), "references: true")
	})
}
