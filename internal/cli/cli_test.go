package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenzing/rust-html-generator/internal/cli"
	"github.com/sevenzing/rust-html-generator/internal/configloader"
	"github.com/sevenzing/rust-html-generator/pkg/fsutil"
	"github.com/sevenzing/rust-html-generator/pkg/runner"
	"github.com/sevenzing/rust-html-generator/pkg/tokenstream"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "hlgen", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"generate", "init", "themes", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, "subcommand %q", name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestGenerateCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	genCmd, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	expectedFlags := []string{
		"dir",
		"project-name",
		"output",
		"scan-whole",
		"no-compress",
		"jobs",
		"ignore",
		"theme",
		"references-only",
		"no-references",
		"format",
		"compact",
	}
	for _, flagName := range expectedFlags {
		assert.NotNil(t, genCmd.Flags().Lookup(flagName), "flag %q", flagName)
	}

	assert.Equal(t, "output.html", genCmd.Flags().Lookup("output").DefValue)
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "global flag %q", flagName)
	}
}

func TestGenerateRequiresDir(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"generate"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dir")
}

func TestGenerateRejectsArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"generate", "--dir", t.TempDir(), "extra"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestGenerateHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"generate", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Usage:\n  hlgen generate [flags]")
	assert.Contains(t, help, "Examples:\n  hlgen generate --dir .")
	assert.Contains(t, help, "-d, --dir string")
	assert.Contains(t, help, `(default "summary")`)
	assert.Contains(t, help, "Global Flags:")
	assert.NotContains(t, help, "\x1b[")
}

func TestThemesCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"themes", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "monokai\n")
	assert.Contains(t, out.String(), "github\n")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"plain", errors.New("boom"), cli.ExitFailure},
		{"validation", errors.Join(errors.New("failed to load configuration"),
			&configloader.ValidationError{Field: "dir"}), cli.ExitConfigError},
		{"not a directory", fmt.Errorf("discover files: %w", runner.ErrNotDirectory), cli.ExitConfigError},
		{"invariant", fmt.Errorf("render files: %w",
			&tokenstream.InvariantError{Path: "a.go", Err: errors.New("overlap")}), cli.ExitInternalError},
		{"write output", fmt.Errorf("%w: %w", cli.ErrWriteOutput, errors.New("disk full")), cli.ExitIOError},
		{"read", fmt.Errorf("load engine: %w", fsutil.ErrPermissionDenied), cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
