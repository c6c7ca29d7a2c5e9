package main

import (
	"file_vault/internal/config"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configFile string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	serve := newServeCmd(opts)

	cmd := &cobra.Command{
		Use:          "file_vault",
		Short:        "Authentication, user management and file storage over HTTP",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file path (default configs/config.yml)")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env)")
	flags.String(config.FlagPort, "", "HTTP port, overrides config and PORT")
	flags.String(config.FlagLogLevel, "", "log level: debug, info, warn or error")

	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCmd(opts))
	return cmd
}

// loadConfig reads .env files, the config file, the environment and the flags of cmd.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFiles...); err != nil {
		return nil, err
	}
	v := config.NewViper(opts.configFile)
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.Load(v)
}
