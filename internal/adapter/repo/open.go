package repo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"registry/internal/domain"
	"registry/internal/infra"
)

// Stores bundles the repositories selected by configuration.
type Stores struct {
	Overviews domain.OverviewRepository
	Overrides domain.OverrideRepository
	// Backend is "postgres" or "fixtures".
	Backend string
	close   func()
}

// Close releases the database pool, if any.
func (s *Stores) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// OpenStores connects to PostgreSQL when DATABASE_URL is set and falls back
// to the YAML fixtures otherwise.
func OpenStores(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*Stores, error) {
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		runner := infra.NewSQLRunner(pool, logger)
		return &Stores{
			Overviews: NewOverviewRepository(runner, cfg.PGCollation),
			Overrides: NewOverrideRepository(runner),
			Backend:   "postgres",
			close:     pool.Close,
		}, nil
	}
	if cfg.FixturesPath == "" {
		return nil, fmt.Errorf("no database url or fixtures path configured")
	}
	store, err := LoadFixtures(cfg.FixturesPath)
	if err != nil {
		return nil, err
	}
	return &Stores{Overviews: store, Overrides: store, Backend: "fixtures"}, nil
}
