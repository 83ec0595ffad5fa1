// Package cli provides the command-line interface for chromaset.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaset/internal/config"
	"github.com/jmylchreest/chromaset/internal/version"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

// NewRootCmd builds the chromaset command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "chromaset",
		Short: "Build hue-balanced palettes from a catalog of named colours",
		Long: `Chromaset turns a catalog of traditional named colours into fixed-size
palettes (8, 16, 32, 64 and 128 colours) that cover the hue circle evenly,
keep neighbouring colours perceptually distinct, and always contain a
curated set of anchor colours.

The catalog is sorted, de-duplicated and numbered, then exported as CSV,
JSON, a SQLite database and PNG swatch sheets.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (YAML or JSON, default $"+config.EnvConfig+")")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newPaletteCmd(opts))
	rootCmd.AddCommand(newInspectCmd(opts))

	return rootCmd
}

// logger returns a logger writing to the command's stderr.
func (o *rootOptions) logger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "chromaset",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
}

// loadConfig layers the config file and environment over the defaults.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Path(o.configPath, os.Getenv))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text":
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.GetInfo())
			default:
				return fmt.Errorf("unknown format %q: expected text or json", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return cmd
}
