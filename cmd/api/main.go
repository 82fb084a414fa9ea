package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"registry/internal/adapter/repo"
	"registry/internal/http/handlers"
	httpapi "registry/internal/http/httpapi"
	"registry/internal/infra"
	"registry/internal/infra/geoip"
	"registry/internal/middleware"
	"registry/internal/overview"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	catalogue, err := cfg.Catalogue()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid column catalogue")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := repo.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open donor store")
	}
	defer stores.Close()

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	app := handlers.NewApp(stores.Overviews, stores.Overrides, overview.Options{
		Catalogue:   catalogue,
		DataURL:     "/donor/overview/data",
		ExportURL:   "/donor/overview/export",
		DetailURL:   cfg.DetailURLTemplate,
		LanguageURL: cfg.LanguageURL,
	}, logger)
	app.RedrawWait = cfg.RedrawWait
	if cfg.OverridesURL != "" {
		app.Source = overview.NewHTTPSource(cfg.OverridesURL, cfg.OverridesToken)
	}
	app.Pages = overview.NewPageRegistry(ctx, cfg.PageTTL, app.NewController, logger)
	go app.Pages.Run(ctx, time.Minute)

	router := httpapi.NewRouter(app, httpapi.RouterConfig{
		JWTSecret:       cfg.JWTSecret,
		DefaultLocale:   middleware.LocaleCzech,
		CountryLookup:   resolver.Lookup(),
		ExportPerMinute: cfg.RateLimitPerMin,
	}, logger)

	server := infra.NewHTTPServer(cfg, router, logger)

	go func() {
		logger.Info().Str("port", cfg.Port).Str("store", stores.Backend).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
