package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/marquee/internal/adapter/driven/cms"
	sqliteadapter "github.com/ericfisherdev/marquee/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/marquee/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/marquee/internal/adapter/driving/web"
	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/config"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"content_source", cfg.ContentSource,
		"dataset", cfg.CMS.Dataset,
		"use_cdn", cfg.CMS.UseCDN,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Create CMS client.
	cmsClient, err := cms.NewClient(cms.Options{
		ProjectID:  cfg.CMS.ProjectID,
		Dataset:    cfg.CMS.Dataset,
		APIVersion: cfg.CMS.APIVersion,
		Token:      cfg.CMS.Token,
		UseCDN:     cfg.CMS.UseCDN,
		BaseURL:    cfg.CMS.BaseURL,
	})
	if err != nil {
		return err
	}

	// 4. Choose the read side: the CMS directly, or the local mirror kept
	// current by the sync loop.
	var source driven.ContentSource = cmsClient
	var syncSvc *application.SyncService

	if cfg.UsesMirror() {
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		slog.Info("database opened", "path", db.Path())

		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			return err
		}
		slog.Info("migrations complete")

		mirror := sqliteadapter.NewDocumentRepo(db)
		source = mirror

		syncSvc = application.NewSyncService(cmsClient, mirror, cfg.SyncInterval)
		go syncSvc.Start(ctx)
	}

	// 5. Create application services.
	contentSvc := application.NewContentService(source)
	assets := application.NewAssetResolver(application.AssetConfig{
		ProjectID:       cfg.CMS.ProjectID,
		Dataset:         cfg.CMS.Dataset,
		ImageBaseURL:    cfg.Media.ImageBaseURL,
		ExternalBaseURL: cfg.Media.ExternalBaseURL,
		ExternalCloud:   cfg.Media.CloudName,
		FallbackURL:     cfg.Media.FallbackURL,
	})
	tokens, err := application.DefaultTokens()
	if err != nil {
		return err
	}

	// 6. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(contentSvc, syncSvc, cfg.ContentSource, cfg.SyncWebhookSecret, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// 7. Create web handler and register site routes.
	webHandler := webhandler.NewHandler(contentSvc, assets, tokens, cfg.SiteName, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("marquee started",
		"listen_addr", cfg.ListenAddr,
		"site_name", cfg.SiteName,
		"content_source", cfg.ContentSource,
	)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
