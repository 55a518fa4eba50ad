package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sevenzing/rust-html-generator/internal/configloader"
	"github.com/sevenzing/rust-html-generator/internal/logging"
	"github.com/sevenzing/rust-html-generator/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force       bool
	full        bool
	output      string
	projectName string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new hlgen configuration file",
		Long: `Create a new .hlgen.yml configuration file in the current directory
with sensible defaults. The file can be customized to set the output path,
ignore patterns, theme and navigation options.`,
		Example: `  hlgen init                       # Create a minimal .hlgen.yml
  hlgen init --full                # Create a config with every option
  hlgen init --output custom.yml   # Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, afero.NewOsFs(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every option")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "Output file path")
	cmd.Flags().StringVar(&flags.projectName, "project-name", "", "Project name written into the template")

	return cmd
}

func runInit(ctx context.Context, fsys afero.Fs, flags *initFlags) error {
	logger := logging.FromContext(ctx)

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:        flags.full,
		ProjectName: flags.projectName,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	err = configloader.WriteConfig(ctx, fsys, absPath, content, flags.force)
	if errors.Is(err, configloader.ErrConfigExists) {
		return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
	}
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'hlgen generate --dir .' to render the project")

	return nil
}
