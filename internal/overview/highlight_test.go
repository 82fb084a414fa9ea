package overview

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registry/internal/domain"
)

func staticSource(m domain.OverrideMap) OverrideSource {
	return OverrideSourceFunc(func(context.Context) (domain.OverrideMap, error) {
		return m, nil
	})
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel")
	}
}

func TestHighlighter_EndToEnd(t *testing.T) {
	h := NewHighlighter(staticSource(domain.OverrideMap{"123456": {"city": true}}), domain.OverrideColumns, zerolog.Nop())
	defs := h.Extend(nil)

	h.Load(context.Background(), nil)
	waitClosed(t, h.Ready())

	marked := domain.Overview{RodneCislo: "123456", City: "Praha"}
	plain := domain.Overview{RodneCislo: "999999", City: "Praha"}

	assert.Equal(t, `<mark title="Tato hodnota byla ručně nastavena">Praha</mark>`, RenderCell(defs, domain.ColCity, marked, ModeDisplay))
	assert.Equal(t, "Praha", RenderCell(defs, domain.ColCity, plain, ModeDisplay))
}

func TestHighlighter_OnlyDisplayMode(t *testing.T) {
	h := NewHighlighter(staticSource(domain.OverrideMap{"123456": {"city": true, "postal_code": true}}), domain.OverrideColumns, zerolog.Nop())
	defs := h.Extend(nil)
	h.Load(context.Background(), nil)
	waitClosed(t, h.Ready())

	row := domain.Overview{RodneCislo: "123456", City: "Brno", PostalCode: "60200"}
	for _, mode := range []RenderMode{ModeSort, ModeFilter, ModeType} {
		assert.Equal(t, "Brno", RenderCell(defs, domain.ColCity, row, mode))
		assert.Equal(t, "60200", RenderCell(defs, domain.ColPostalCode, row, mode))
	}
}

func TestHighlighter_IffIdentifierAndColumnFlagged(t *testing.T) {
	overrides := domain.OverrideMap{
		"111": {"first_name": true, "city": false},
		"222": {"last_name": true},
	}
	h := NewHighlighter(staticSource(overrides), domain.OverrideColumns, zerolog.Nop())
	defs := h.Extend(nil)
	h.Load(context.Background(), nil)
	waitClosed(t, h.Ready())

	rows := []domain.Overview{
		{RodneCislo: "111", FirstName: "Jan", LastName: "Novák", City: "Ostrava"},
		{RodneCislo: "222", FirstName: "Eva", LastName: "Malá", City: "Třinec"},
		{RodneCislo: "333", FirstName: "Petr", LastName: "Král", City: "Opava"},
	}
	for _, row := range rows {
		for _, column := range domain.OverrideColumns {
			out := RenderCell(defs, column, row, ModeDisplay)
			want := overrides.IsOverridden(row.RodneCislo, column)
			assert.Equal(t, want, len(out) > 5 && out[:5] == "<mark", "row %s column %s", row.RodneCislo, column)
		}
	}
}

func TestHighlighter_EmptyUntilLoaded(t *testing.T) {
	release := make(chan struct{})
	src := OverrideSourceFunc(func(ctx context.Context) (domain.OverrideMap, error) {
		<-release
		return domain.OverrideMap{"123456": {"city": true}}, nil
	})
	h := NewHighlighter(src, domain.OverrideColumns, zerolog.Nop())
	defs := h.Extend(nil)
	row := domain.Overview{RodneCislo: "123456", City: "Praha"}

	h.Load(context.Background(), nil)
	assert.Equal(t, "Praha", RenderCell(defs, domain.ColCity, row, ModeDisplay))

	close(release)
	waitClosed(t, h.Ready())
	assert.Contains(t, RenderCell(defs, domain.ColCity, row, ModeDisplay), "<mark")
}

func TestHighlighter_FailedFetchLeavesMapEmpty(t *testing.T) {
	src := OverrideSourceFunc(func(context.Context) (domain.OverrideMap, error) {
		return nil, errors.New("boom")
	})
	h := NewHighlighter(src, domain.OverrideColumns, zerolog.Nop())
	defs := h.Extend(nil)
	var called atomic.Bool

	h.Load(context.Background(), func() { called.Store(true) })
	waitClosed(t, h.Settled())

	assert.False(t, called.Load())
	assert.Empty(t, h.Overrides())
	select {
	case <-h.Ready():
		t.Fatal("ready must stay open after a failed fetch")
	default:
	}
	row := domain.Overview{RodneCislo: "123456", City: "Praha"}
	assert.Equal(t, "Praha", RenderCell(defs, domain.ColCity, row, ModeDisplay))
}

func TestHighlighter_FetchesAtMostOnce(t *testing.T) {
	var fetches, callbacks atomic.Int32
	src := OverrideSourceFunc(func(context.Context) (domain.OverrideMap, error) {
		fetches.Add(1)
		return domain.OverrideMap{}, nil
	})
	h := NewHighlighter(src, domain.OverrideColumns, zerolog.Nop())

	for i := 0; i < 3; i++ {
		h.Load(context.Background(), func() { callbacks.Add(1) })
	}
	waitClosed(t, h.Settled())

	assert.Equal(t, int32(1), fetches.Load())
	assert.Equal(t, int32(1), callbacks.Load())
}

func TestHighlighter_ExtendAppendsOneRulePerColumn(t *testing.T) {
	h := NewHighlighter(nil, []string{"city", "address"}, zerolog.Nop())
	existing := []ColumnDef{{Target: domain.ColRodneCislo}}

	defs := h.Extend(existing)

	require.Len(t, defs, 3)
	assert.Equal(t, "city", defs[1].Target)
	assert.Equal(t, "address", defs[2].Target)
}
