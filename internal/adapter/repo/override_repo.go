package repo

import (
	"context"
	"fmt"

	"registry/internal/domain"
	"registry/internal/infra"
	"registry/internal/sqlinline"
)

// OverrideRepositoryPG reads donors_override.
type OverrideRepositoryPG struct {
	db infra.SQLExecutor
}

// NewOverrideRepository creates a new OverrideRepositoryPG.
func NewOverrideRepository(db infra.SQLExecutor) *OverrideRepositoryPG {
	return &OverrideRepositoryPG{db: db}
}

// Overrides returns, per donor, which columns hold a manual value. Donors
// without any non-empty override column are left out.
func (r *OverrideRepositoryPG) Overrides(ctx context.Context) (domain.OverrideMap, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListOverrides)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	out := make(domain.OverrideMap)
	for rows.Next() {
		var rc string
		set := make([]bool, len(domain.OverrideColumns))
		dest := []any{&rc}
		for i := range set {
			dest = append(dest, &set[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		flags := make(domain.OverrideFlags)
		for i, column := range domain.OverrideColumns {
			if set[i] {
				flags[column] = true
			}
		}
		if len(flags) > 0 {
			out[rc] = flags
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return out, nil
}

var _ domain.OverrideRepository = (*OverrideRepositoryPG)(nil)
