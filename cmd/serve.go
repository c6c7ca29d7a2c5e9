package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"file_vault/internal/config"
	"file_vault/internal/handlers"
	"file_vault/internal/logger"
	"file_vault/internal/mail"
	"file_vault/internal/metrics"
	"file_vault/internal/repository"
	"file_vault/internal/repository/db"
	"file_vault/internal/server"
	"file_vault/internal/service"
	"file_vault/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return oops.Code("CONFIG_INVALID").Wrap(err)
			}
			log := logger.Get(cfg.LogLevel)
			if err := serve(cmd.Context(), cfg, log); err != nil {
				log.Errorw("server stopped with error", "err", err)
				return err
			}
			return nil
		},
	}
}

// serve wires repositories, services and handlers and runs the HTTP server
// until ctx is cancelled or SIGINT/SIGTERM arrives.
func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DB, log)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("driver", cfg.DB.Driver).Wrap(err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()
	if err := db.Migrate(ctx, conn, cfg.DB.Driver, log); err != nil {
		return oops.Code("MIGRATION_FAILED").With("driver", cfg.DB.Driver).Wrap(err)
	}

	repos := repository.NewRepository(conn)
	if cfg.Storage.Backend == config.StorageS3 {
		blobs, err := storage.NewS3BlobStore(ctx, cfg.Storage.S3)
		if err != nil {
			return oops.Code("BLOB_STORE_FAILED").With("bucket", cfg.Storage.S3.Bucket).Wrap(err)
		}
		repos.Blobs = blobs
	}

	mailer, err := mail.NewSMTPSender(cfg.Mail)
	if err != nil {
		return oops.Code("MAIL_SETUP_FAILED").With("host", cfg.Mail.Host).Wrap(err)
	}
	tokens, err := service.NewTokenManager(cfg.JWT.Secret)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	m := metrics.New()
	services := service.NewService(service.Deps{
		Repos:          repos,
		Tokens:         tokens,
		Hasher:         service.NewBcryptHasher(0),
		Mailer:         mailer,
		Metrics:        m,
		Log:            log,
		MaxUploadBytes: cfg.Files.MaxUploadBytes,
	})

	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(m),
		handlers.WithDB(conn),
		handlers.WithAllowedOriginPrefix(cfg.CORS.AllowedOriginPrefix),
	)

	srv := &server.Server{}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(cfg.Port, apiHandler.InitRoutes())
	}()
	log.Infow("server started",
		"port", cfg.Port,
		"db", cfg.DB.Driver,
		"storage", cfg.Storage.Backend,
	)

	select {
	case err := <-errCh:
		if err != nil {
			return oops.Code("HTTP_SERVER_FAILED").With("port", cfg.Port).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.Code("HTTP_SHUTDOWN_FAILED").Wrap(err)
	}
	return <-errCh
}
