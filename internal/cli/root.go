// Package cli provides the Cobra command structure for hlgen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sevenzing/rust-html-generator/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root hlgen command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "hlgen",
		Short: "Render a source tree into one navigable HTML file",
		Long: `hlgen renders a source tree into a single self-contained HTML document.

The document has a file tree on one side and the selected file on the other,
with syntax highlighting, inlay type hints, hover text, foldable regions and
clickable jump-to-definition and references. It needs no server: open the
file in a browser.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newThemesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd)

	return rootCmd
}
