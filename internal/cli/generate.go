package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sevenzing/rust-html-generator/internal/configloader"
	"github.com/sevenzing/rust-html-generator/internal/logging"
	"github.com/sevenzing/rust-html-generator/internal/ui/pretty"
	"github.com/sevenzing/rust-html-generator/pkg/config"
	"github.com/sevenzing/rust-html-generator/pkg/engine"
	"github.com/sevenzing/rust-html-generator/pkg/engine/treesitter"
	"github.com/sevenzing/rust-html-generator/pkg/filetree"
	"github.com/sevenzing/rust-html-generator/pkg/fsutil"
	"github.com/sevenzing/rust-html-generator/pkg/navigation"
	"github.com/sevenzing/rust-html-generator/pkg/pipeline"
	"github.com/sevenzing/rust-html-generator/pkg/report"
	"github.com/sevenzing/rust-html-generator/pkg/reporter"
	"github.com/sevenzing/rust-html-generator/pkg/runner"
	"github.com/sevenzing/rust-html-generator/pkg/tokenstream"
)

// ErrWriteOutput wraps failures to write the report.
var ErrWriteOutput = errors.New("write output")

// outputFileMode is the file mode of the generated report.
const outputFileMode = 0644

type generateFlags struct {
	dir            string
	projectName    string
	output         string
	scanWhole      bool
	noCompress     bool
	jobs           int
	ignore         []string
	theme          string
	referencesOnly bool
	noReferences   bool
	format         string
	compact        bool
}

func newGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Render a source tree into one HTML file",
		Long:    generateLongDescription,
		Example: generateExamples,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "project root directory")
	cmd.Flags().StringVar(&flags.projectName, "project-name", "", "name shown at the root of the file tree (default: base name of --dir)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultOutput, "path of the generated HTML file")
	cmd.Flags().BoolVar(&flags.scanWhole, "scan-whole", false, "index library roots and keep vendored files")
	cmd.Flags().BoolVar(&flags.noCompress, "no-compress", false, "skip HTML minification")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to leave out")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "chroma style for highlighting (see 'hlgen themes')")
	cmd.Flags().BoolVar(&flags.referencesOnly, "references-only", false, "link tokens that have references but no definition")
	cmd.Flags().BoolVar(&flags.noReferences, "no-references", false, "omit reference lists")
	cmd.Flags().StringVar(&flags.format, "format", "summary", "report format: summary, text, json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "one-line summary, unindented JSON")

	_ = cmd.MarkFlagRequired("dir") //nolint:errcheck // The flag is registered above.

	return cmd
}

const generateLongDescription = `Render every source file below --dir into a single self-contained HTML
document with a file tree, syntax highlighting, folding and
jump-to-definition/references.`

const generateExamples = `  hlgen generate --dir .                          # Write ./output.html
  hlgen generate --dir ~/src/app -o app.html      # Custom output path
  hlgen generate --dir . --theme monokai          # Use a chroma style
  hlgen generate --dir . --ignore 'testdata/**'   # Leave out test fixtures
  hlgen generate --dir . --no-compress            # Keep the HTML readable`

// cliConfig maps explicitly set flags onto a config layer.
func cliConfig(cmd *cobra.Command, flags *generateFlags) *config.Config {
	changed := cmd.Flags().Changed
	cfg := &config.Config{
		ProjectName: flags.projectName,
		ScanWhole:   flags.scanWhole,
		NoCompress:  flags.noCompress,
		Ignore:      flags.ignore,
		Theme:       flags.theme,
		Dir:         flags.dir,
		Jobs:        flags.jobs,
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	cfg.Navigation.ReferencesOnly = flags.referencesOnly
	if changed("no-references") {
		enabled := !flags.noReferences
		cfg.Navigation.References = &enabled
	}
	return cfg
}

// canonicalDir resolves dir to an absolute path without symlinks.
func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return resolved, nil
}

func runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	cliCfg := cliConfig(cmd, flags)
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   flags.dir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	cfg.Dir, err = canonicalDir(cfg.Dir)
	if err != nil {
		return err
	}
	if cfg.ProjectName == "" {
		cfg.ProjectName = filepath.Base(cfg.Dir)
	}
	cfg.Output, err = filepath.Abs(cfg.Output)
	if err != nil {
		return fmt.Errorf("resolve output: %w", err)
	}
	cfg.LibraryRoots, err = libraryRoots(cfg.LibraryRoots)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	rep, err := reporter.New(reporter.Options{
		Writer:  cmd.OutOrStdout(),
		Format:  format,
		Color:   colorFlag(cmd),
		Compact: flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	run, err := generate(ctx, afero.NewOsFs(), cfg, logger)
	if err != nil {
		return err
	}
	run.Report.Warnings = len(loadResult.Warnings)

	if err := rep.Report(ctx, run); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// generate renders the project described by cfg and writes the report.
// cfg.Dir, cfg.Output and cfg.ProjectName must already be resolved.
func generate(ctx context.Context, fsys afero.Fs, cfg *config.Config, logger *log.Logger) (reporter.Run, error) {
	logger.Debug("starting generate run",
		logging.FieldWorkingDir, cfg.Dir,
		logging.FieldProject, cfg.ProjectName,
		logging.FieldOutput, cfg.Output,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldTheme, cfg.Theme,
		logging.FieldCompress, !cfg.NoCompress,
	)

	runOpts := runner.Options{
		Dir:       cfg.Dir,
		Output:    cfg.Output,
		Ignore:    cfg.Ignore,
		ScanWhole: cfg.ScanWhole,
		Jobs:      cfg.Jobs,
		Fs:        fsys,
	}
	files, err := runner.Discover(ctx, runOpts)
	if err != nil {
		return reporter.Run{}, fmt.Errorf("discover files: %w", err)
	}
	runOpts.Files = files
	logger.Debug("discovered files", logging.FieldFiles, len(files))

	eng, err := treesitter.Load(ctx, fsys, treesitter.LoadOptions{
		Files:        files,
		LibraryRoots: cfg.LibraryRoots,
		ScanWhole:    cfg.ScanWhole,
		Jobs:         cfg.Jobs,
		MaxFileSize:  cfg.MaxFileSize,
	})
	if err != nil {
		return reporter.Run{}, fmt.Errorf("load engine: %w", err)
	}
	defer eng.Close()

	resolver := navigation.NewResolver(eng, navigation.Options{
		Root:           cfg.Dir,
		ProjectName:    cfg.ProjectName,
		Scope:          &engine.SearchScope{Files: eng.Files()},
		ReferencesOnly: cfg.Navigation.ReferencesOnly,
		SkipReferences: !cfg.Navigation.ReferencesEnabled(),
	})

	assets, err := report.LoadAssets(report.AssetOptions{Theme: cfg.Theme})
	if err != nil {
		return reporter.Run{}, fmt.Errorf("load assets: %w", err)
	}

	proc := pipeline.New(eng, tokenstream.NewBuilder(eng, resolver), assets, pipeline.Options{
		Root:        cfg.Dir,
		ProjectName: cfg.ProjectName,
		MaxFileSize: cfg.MaxFileSize,
	})

	result, err := runner.New(proc).Run(ctx, runOpts)
	if err != nil {
		return reporter.Run{}, fmt.Errorf("render files: %w", err)
	}

	prefix := cfg.ProjectName + "/"
	treePaths := result.TreePaths()
	relPaths := make([]string, len(treePaths))
	for i, p := range treePaths {
		relPaths[i] = strings.TrimPrefix(p, prefix)
	}
	tree := filetree.FromPaths(relPaths, cfg.ProjectName)
	tree.Sort()

	doc, err := report.NewAssembler(assets, report.Options{
		Title:  cfg.ProjectName,
		Minify: !cfg.NoCompress,
	}).Assemble(tree, result.Rendered())
	if err != nil {
		return reporter.Run{}, fmt.Errorf("assemble report: %w", err)
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, fsys, cfg.Output, doc, outputFileMode)
	if err != nil {
		return reporter.Run{}, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	logger.Debug("report written",
		logging.FieldOutput, cfg.Output,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldSkipped, result.Stats.FilesSkipped,
		logging.FieldLinks, result.Stats.NavigationLinks,
		logging.FieldChanged, changed,
	)

	return reporter.Run{
		Report: pretty.Report{
			Output:  displayPath(cfg.Output),
			Bytes:   len(doc),
			Changed: changed,
			Stats:   result.Stats,
		},
		Result: result,
	}, nil
}

// libraryRoots expands a leading "~" and makes every root absolute.
func libraryRoots(roots []string) ([]string, error) {
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		if root == "~" || strings.HasPrefix(root, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("expand %s: %w", root, err)
			}
			root = filepath.Join(home, strings.TrimPrefix(root, "~"))
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve library root %s: %w", root, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// displayPath shortens path relative to the working directory when it is
// below it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, ok := navigation.RelativePath(wd, path); ok {
		return rel
	}
	return path
}
