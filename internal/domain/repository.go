package domain

import "context"

// OverviewRepository reads the donors overview table.
type OverviewRepository interface {
	Query(ctx context.Context, q OverviewQuery) (OverviewPage, error)
	Get(ctx context.Context, rc string) (*Overview, error)
}

// OverrideRepository lists manual overrides of donor fields.
type OverrideRepository interface {
	Overrides(ctx context.Context) (OverrideMap, error)
}
