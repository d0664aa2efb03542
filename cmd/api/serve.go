package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dhnext/launchpad/internal/application"
	appcompliance "github.com/dhnext/launchpad/internal/application/compliance"
	appworkspace "github.com/dhnext/launchpad/internal/application/workspace"
	"github.com/dhnext/launchpad/internal/config"
	"github.com/dhnext/launchpad/internal/infra/httpserver"
	"github.com/dhnext/launchpad/internal/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the launchpad api server",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, err := loadConfig(cmd)
		cobra.CheckErr(err)
		cobra.CheckErr(serve(cmd.Context(), cfg))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeStore()

	extractor, err := newExtractor(cfg)
	if err != nil {
		return fmt.Errorf("setting up extraction: %w", err)
	}

	checker := appcompliance.NewService(newFetcher(cfg), extractor, kv, application.SystemClock{})
	ws := appworkspace.NewService(kv)

	handler := httpserver.NewRouter(checker, ws, httpserver.Options{
		Strategy:       extractor.Strategy(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		APIKeys:        cfg.Server.APIKeys,
		RateLimiter:    middleware.NewRateLimiter(cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst),
		Metrics:        middleware.NewMetrics(),
		HealthCheckers: map[string]middleware.HealthChecker{
			"storage": middleware.StoreHealthChecker{Store: kv},
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().
		Str("listen", addr).
		Str("storage", cfg.Storage.Driver).
		Str("strategy", string(extractor.Strategy())).
		Int("api_keys", len(cfg.Server.APIKeys)).
		Msg("starting launchpad service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
