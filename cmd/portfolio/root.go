package main

import (
	"portfolio-site/config"
	"portfolio-site/pkg/logger"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel  string
	logFormat string
}

// loadConfig reads the environment and applies the logging flags on top.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio site with a contact form relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Override LOG_FORMAT (json, text)")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newContentCmd())
	cmd.AddCommand(newRelayCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func initLogging(cfg *config.Config) {
	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
}
