package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/gridcol/internal/cel"
	"github.com/oakwood-commons/gridcol/internal/config"
	"github.com/oakwood-commons/gridcol/internal/formatter"
	"github.com/oakwood-commons/gridcol/pkg/column"
	"github.com/oakwood-commons/gridcol/pkg/loader"
	"github.com/oakwood-commons/gridcol/pkg/logger"
	"github.com/oakwood-commons/gridcol/pkg/settings"
)

type resolveFlags struct {
	output     outputFormat
	rowNumbers rowNumberStyle
	width      int
	compact    bool
	redefine   []string
}

func newResolveCmd() *cobra.Command {
	f := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Resolve column descriptions and print the resulting models",
		Long: `Resolve reads column descriptions from a file, or from stdin when no file
is given, and prints the resolved models.

Each --redefine file is applied in order as a redefinition of the same
columns: models are rebuilt by name, sort and filter state not mentioned in
the redefinition is kept, and columns missing from it are dropped.

A sortingAlgorithm may be written as a CEL expression over a and b,
returning a number (its sign orders the pair) or a bool (a sorts first).`,
		Example: `  gridcol resolve columns.yaml
  gridcol resolve columns.yaml --redefine narrow.yaml -o yaml
  cat columns.json | gridcol resolve -o json`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return newUsageError("accepts at most 1 file, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			run := settings.RunFromContext(cmd.Context())
			if cmd.Flags().Changed("output") {
				run.OutputFormat = f.output.String()
			}
			if cmd.Flags().Changed("row-numbers") {
				run.RowNumbers = f.rowNumbers.String()
			}
			if cmd.Flags().Changed("width") {
				if f.width < 0 {
					return newUsageError("--width must not be negative, got %d", f.width)
				}
				run.Width = f.width
			}
			if cmd.Flags().Changed("compact") {
				run.Compact = f.compact
			}
			return runResolve(cmd, args, f.redefine, run)
		},
	}

	cmd.Flags().VarP(&f.output, "output", "o", "output format: table|yaml|json (default from config)")
	cmd.Flags().Var(&f.rowNumbers, "row-numbers", "row number style: numbered|index|bullet|none (default from config)")
	cmd.Flags().IntVar(&f.width, "width", 0, "table width in columns (0 = terminal width)")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "hide report columns that are empty for every model")
	cmd.Flags().StringArrayVar(&f.redefine, "redefine", nil, "apply another description file as a redefinition (repeatable)")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string, redefine []string, run *settings.Run) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)

	eval, err := cel.NewEvaluator()
	if err != nil {
		return fmt.Errorf("create comparator compiler: %w", err)
	}
	opts := loader.DecodeOptions{Comparators: eval.CompileComparator}

	var errs []error
	descs, source, err := readDescriptions(cmd, args, opts)
	if err != nil {
		if descs == nil {
			return err
		}
		errs = append(errs, err)
	}

	coll := column.NewCollection(column.NewBuilder(column.WithLogger(*lgr)))

	if err := coll.Define(descs); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", source, err))
	}
	for _, path := range redefine {
		next, err := loader.LoadDescriptionsFile(path, opts)
		if err != nil {
			if next == nil {
				return loadError(path, next, err)
			}
			errs = append(errs, loadError(path, next, err))
		}
		if err := coll.Define(next); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	lgr.V(1).Info("columns defined", "source", source, "redefinitions", len(redefine), "columns", coll.Len())

	if err := writeModels(cmd.OutOrStdout(), coll.Models(), run, configFromContext(ctx)); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// readDescriptions loads from the file argument, or from stdin when none is
// given or the argument is "-".
func readDescriptions(cmd *cobra.Command, args []string, opts loader.DecodeOptions) ([]*column.Description, string, error) {
	if len(args) == 1 && args[0] != "-" {
		descs, err := loader.LoadDescriptionsFile(args[0], opts)
		return descs, args[0], loadError(args[0], descs, err)
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, "", newUsageError("no input: pass a file or pipe column descriptions on stdin")
	}
	descs, err := loader.LoadDescriptionsReader(in, opts)
	return descs, "stdin", loadError("stdin", descs, err)
}

// loadError wraps a loader error with its source. Input that could not be
// read at all reads "load <source>"; per-column decode failures, which still
// come with the other descriptions, read "<source>".
func loadError(source string, descs []*column.Description, err error) error {
	switch {
	case err == nil:
		return nil
	case descs == nil:
		return fmt.Errorf("load %s: %w", source, err)
	default:
		return fmt.Errorf("%s: %w", source, err)
	}
}

func writeModels(w io.Writer, models []*column.Model, run *settings.Run, cfg config.Config) error {
	var (
		out string
		err error
	)
	switch run.OutputFormat {
	case settings.OutputYAML:
		out, err = formatter.FormatModelsYAML(models)
	case settings.OutputJSON:
		out, err = formatter.FormatModelsJSON(models)
	default:
		applyTheme(cfg.ActiveTheme())
		out = formatter.RenderModels(models, formatter.ReportOptions{
			NoColor:        run.NoColor || !isTerminal(w),
			TotalWidth:     run.Width,
			RowNumberStyle: run.RowNumbers,
			Compact:        run.Compact,
		})
	}
	if err != nil {
		return fmt.Errorf("format %s: %w", run.OutputFormat, err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func applyTheme(theme config.ThemeConfig) {
	formatter.SetTableTheme(formatter.TableColors{
		HeaderFG:       formatter.ParseColor(string(theme.HeaderFG)),
		HeaderBG:       formatter.ParseColor(string(theme.HeaderBG)),
		KeyColor:       formatter.ParseColor(string(theme.KeyColor)),
		ValueColor:     formatter.ParseColor(string(theme.ValueColor)),
		SeparatorColor: formatter.ParseColor(string(theme.SeparatorColor)),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
