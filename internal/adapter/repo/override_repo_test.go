package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registry/internal/domain"
	"registry/internal/sqlinline"
)

func TestOverridesFromFlags(t *testing.T) {
	db := newFakeDB()
	db.on(markerOf(sqlinline.QListOverrides),
		[]any{"7801011230", true, false, false, true, false, false},
		[]any{"8552151234", false, false, false, false, false, false},
	)
	r := NewOverrideRepository(db)

	got, err := r.Overrides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.OverrideMap{
		"7801011230": {domain.ColFirstName: true, domain.ColCity: true},
	}, got)
	assert.True(t, got.IsOverridden("7801011230", domain.ColCity))
	assert.False(t, got.IsOverridden("8552151234", domain.ColCity))
}

func TestOverridesQueryError(t *testing.T) {
	r := NewOverrideRepository(newFakeDB())
	_, err := r.Overrides(context.Background())
	assert.Error(t, err)
}
