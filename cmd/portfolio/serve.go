package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-site/config"
	v1 "portfolio-site/internal/delivery/http/v1"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository/yamlcontent"
	"portfolio-site/internal/usecase"
	"portfolio-site/pkg/email"
	"portfolio-site/pkg/logger"
	pkgredis "portfolio-site/pkg/redis"
	"portfolio-site/pkg/security"
	"portfolio-site/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(root *rootFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Override PORT")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	initLogging(cfg)
	gin.SetMode(cfg.GinMode)

	env := "development"
	if cfg.IsProduction() {
		env = "production"
	}
	secLog := security.InitSecurityLogger("portfolio-site", env)
	defer func() { _ = secLog.Sync() }()

	logger.Log.Info("Starting portfolio site", "port", cfg.Port, "env", env)

	validate := validation.New()

	content, err := yamlcontent.NewRepository(cfg.ContentPath, validate)
	if err != nil {
		return err
	}

	relay, err := email.NewRelay(cfg)
	switch {
	case errors.Is(err, domain.ErrRelayNotConfigured):
		logger.Log.Warn("Contact relay not configured - contact form submissions will fail", "provider", cfg.RelayProvider)
	case err != nil:
		return err
	}

	redisClient := connectRedis(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	probes := map[string]usecase.HealthProbe{}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error { return pkgredis.HealthCheck(ctx, redisClient) }
	}

	contactUC := usecase.NewContactUsecase(relay, validate, usecase.ContactOptions{
		Form: usecase.ContactFormOptions{
			ResetDelay:   cfg.ContactStatusReset,
			RelayTimeout: cfg.RelayTimeout,
		},
		FormTTL: cfg.ContactFormTTL,
	})

	router, err := v1.NewRouter(v1.RouterDeps{
		ContentRepo: content,
		ContactUC:   contactUC,
		ThemeUC:     usecase.NewThemeUsecase(),
		HealthUC:    usecase.NewHealthUsecase(content, relay, probes),
		Redis:       redisClient,
		Config:      cfg,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Relay calls run on the request goroutine and can take up to RelayTimeout.
		WriteTimeout: cfg.RelayTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.ContentWatch && content.Path() != "" {
		watcher, err := yamlcontent.NewWatcher(content, 0, nil)
		if err != nil {
			return err
		}
		if err := watcher.Start(gctx); err != nil {
			watcher.Stop()
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			watcher.Stop()
			return nil
		})
	}

	g.Go(func() error {
		logger.Log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Log.Info("Server exiting")
	return nil
}

// connectRedis returns nil when Redis is not configured or unreachable; every
// Redis-backed feature has a local fallback.
func connectRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	client, err := pkgredis.Connect(ctx, pkgredis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable - using in-memory rate limits and cookie theme store", "error", err)
		return nil
	}
	logger.Log.Info("Redis connected")
	return client
}
