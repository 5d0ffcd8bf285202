package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/gridcol/internal/config"
	"github.com/oakwood-commons/gridcol/pkg/logger"
	"github.com/oakwood-commons/gridcol/pkg/settings"
)

// Exit codes returned by ExitCode.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// rootFlags holds flags shared by every subcommand.
type rootFlags struct {
	configFile string
	debug      bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Resolve loose column descriptions into column models",
		Long: `gridcol reads column descriptions (YAML, JSON, NDJSON or TOML) and resolves
each one into a column model: width classified as pixels, percent or a
flexible weight, bounds and display names defaulted, and sort/filter state
carried across redefinitions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// debug => zap.DebugLevel (-1), which also enables V(1) builder traces
			var level int8
			if flags.debug {
				level = -1
			}
			lgr := logger.Get(level)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

			run, cfg, err := loadRunSettings(cmd, flags)
			if err != nil {
				return err
			}
			run.MinLogLevel = level

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			ctx = settings.IntoContext(ctx, run)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/gridcol/config.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log column resolution details to stderr")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable color output")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.AddCommand(newResolveCmd(), newConfigCmd(), newVersionCmd())
	return cmd
}

// loadRunSettings merges defaults, the config file, and root flags.
func loadRunSettings(cmd *cobra.Command, flags *rootFlags) (*settings.Run, config.Config, error) {
	run := settings.NewCliParams()
	run.ConfigFile = config.ResolvePath(flags.configFile)

	cfg, err := config.Load(run.ConfigFile)
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyTo(run)

	if cmd.Flags().Changed("no-color") {
		run.NoColor = flags.noColor
	}
	return run, cfg, nil
}

type configContextKey struct{}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configContextKey{}).(config.Config); ok {
		return cfg
	}
	cfg, _ := config.Default()
	return cfg
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
