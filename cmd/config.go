package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/gridcol/internal/config"
	"github.com/oakwood-commons/gridcol/internal/formatter"
	"github.com/oakwood-commons/gridcol/pkg/settings"
)

func newConfigCmd() *cobra.Command {
	output := outputFormat(settings.OutputYAML)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			return printConfig(cmd.OutOrStdout(), cfg, output.String())
		},
	}
	cmd.Flags().VarP(&output, "output", "o", "output format: yaml|json")

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := settings.RunFromContext(cmd.Context()).ConfigFile
			if path == "" {
				path = "(embedded defaults)"
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Print the embedded default configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(config.DefaultConfigYAML())
			return err
		},
	})
	return cmd
}

func printConfig(w io.Writer, cfg config.Config, format string) error {
	switch format {
	case settings.OutputJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case settings.OutputYAML:
		out, err := formatter.FormatYAML(cfg, formatter.YAMLFormatOptions{})
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return newUsageError("invalid output for config: %s (use yaml|json)", format)
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return newUsageError("%s accepts no arguments, received %d", cmd.CommandPath(), len(args))
	}
	return nil
}
