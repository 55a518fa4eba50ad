package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevenzing/rust-html-generator/internal/ui/pretty"
	"github.com/sevenzing/rust-html-generator/pkg/report"
)

func newThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List highlighting themes",
		Long: `List the chroma styles accepted by --theme and the theme config key.
Without a theme the built-in palette is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorFlag(cmd), out))

			var b strings.Builder
			for _, name := range report.ThemeNames() {
				b.WriteString(styles.Name.Render(name))
				b.WriteString("\n")
			}
			if _, err := fmt.Fprint(out, b.String()); err != nil {
				return fmt.Errorf("print themes: %w", err)
			}
			return nil
		},
	}
}
