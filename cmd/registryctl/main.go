package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"registry/internal/adapter/repo"
	"registry/internal/cli"
	"registry/internal/domain"
	"registry/internal/infra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	logger := infra.NewLogger(cfg.AppEnv)
	catalogue, err := cfg.Catalogue()
	if err != nil {
		return err
	}

	app := &cli.App{
		Catalogue: catalogue,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger,
		OpenOverviews: func(ctx context.Context) (domain.OverviewRepository, func(), error) {
			stores, err := repo.OpenStores(ctx, cfg, logger)
			if err != nil {
				return nil, nil, err
			}
			return stores.Overviews, stores.Close, nil
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
