// Package cli implements ringctl, the headless companion to the progress
// ring window: it validates configurations, prints arc spans and renders
// rings to PNG.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"progressring/internal/config"
	"progressring/internal/logging"
)

type options struct {
	configPath string
	logLevel   string
	logFormat  string
	logger     *logging.Logger
}

// NewRootCmd builds the ringctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ringctl",
		Short: "Inspect and render circular progress rings",
		Long: `ringctl works with the same configuration as the progress ring window.

Examples:
  ringctl validate
  ringctl spans --update
  ringctl render --out-dir shots --scale 2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return opts.logger.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: platform config dir)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newValidateCmd(opts),
		newSpansCmd(opts),
		newRenderCmd(opts),
		newInitCmd(opts),
	)
	return root
}

// Execute runs ringctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *options) setupLogging(w io.Writer) error {
	cfg, err := logging.FromSettings(o.logLevel, o.logFormat, "stderr", "")
	if err != nil {
		return err
	}
	cfg.Writer = w
	cfg.Component = "ringctl"

	l, err := logging.New(cfg)
	if err != nil {
		return err
	}
	o.logger = l
	logging.SetDefault(l)
	l.Debug("logging configured", slog.String("level", logging.LevelString(l.Level())))
	return nil
}

func (o *options) log() *slog.Logger {
	if o.logger == nil {
		return logging.Default().Logger
	}
	return o.logger.Logger
}

// loadConfig loads and validates the configuration.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
