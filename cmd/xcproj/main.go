package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/xcproj/internal/ctxlog"
	"github.com/spf13/cobra"
)

const version = "xcproj 0.1.0-dev"

// rootOptions holds the persistent flags and the state derived from them
// before any subcommand runs.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "xcproj",
		Short:         "Decode, edit and re-encode project document objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
				cfg.LogLevel = opts.logLevel
			}
			if cmd.Flags().Changed("log-format") || cfg.LogFormat == "" {
				cfg.LogFormat = opts.logFormat
			}
			logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			logger.Debug("config loaded", "path", opts.configPath, "names", len(cfg.Names))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", defaultConfigPath, "path to the TOML config file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newEncodeCmd(opts))
	root.AddCommand(newAddFileCmd(opts))
	root.AddCommand(newRemoveFileCmd(opts))
	root.AddCommand(newDiffCmd(opts))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
