package main

import (
	"file_vault/internal/logger"
	"file_vault/internal/repository/db"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return oops.Code("CONFIG_INVALID").Wrap(err)
			}
			log := logger.Get(cfg.LogLevel)
			ctx := cmd.Context()

			conn, err := db.Open(ctx, cfg.DB, log)
			if err != nil {
				return oops.Code("DB_CONNECT_FAILED").With("driver", cfg.DB.Driver).Wrap(err)
			}
			defer func() { _ = conn.Close() }()

			if err := db.Migrate(ctx, conn, cfg.DB.Driver, log); err != nil {
				return oops.Code("MIGRATION_FAILED").With("driver", cfg.DB.Driver).Wrap(err)
			}
			version, err := db.Version(ctx, conn, cfg.DB.Driver)
			if err != nil {
				return oops.Code("MIGRATION_FAILED").Wrap(err)
			}
			log.Infow("migrations applied", "driver", cfg.DB.Driver, "version", version)
			return nil
		},
	}
}
