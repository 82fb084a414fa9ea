package overview

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"registry/internal/domain"
)

// HighlightTitle is the tooltip of a highlighted value.
const HighlightTitle = "Tato hodnota byla ručně nastavena"

// OverrideSource provides the override map.
type OverrideSource interface {
	Overrides(ctx context.Context) (domain.OverrideMap, error)
}

// OverrideSourceFunc adapts a function to OverrideSource.
type OverrideSourceFunc func(ctx context.Context) (domain.OverrideMap, error)

func (f OverrideSourceFunc) Overrides(ctx context.Context) (domain.OverrideMap, error) {
	return f(ctx)
}

// Highlighter marks manually overridden values in the display representation
// of watched columns. The override map starts empty and is filled by a single
// fetch started with Load.
type Highlighter struct {
	source  OverrideSource
	columns []string
	logger  zerolog.Logger

	overrides atomic.Pointer[domain.OverrideMap]
	once      sync.Once
	ready     chan struct{}
	settled   chan struct{}
}

// NewHighlighter watches the given columns for overrides served by source.
func NewHighlighter(source OverrideSource, columns []string, logger zerolog.Logger) *Highlighter {
	h := &Highlighter{
		source:  source,
		columns: append([]string(nil), columns...),
		logger:  logger,
		ready:   make(chan struct{}),
		settled: make(chan struct{}),
	}
	empty := domain.OverrideMap{}
	h.overrides.Store(&empty)
	return h
}

// Extend appends one render rule per watched column to defs.
func (h *Highlighter) Extend(defs []ColumnDef) []ColumnDef {
	for _, column := range h.columns {
		defs = append(defs, ColumnDef{Target: column, Render: h.renderer(column)})
	}
	return defs
}

func (h *Highlighter) renderer(column string) Renderer {
	return func(value string, mode RenderMode, row domain.Overview) string {
		if mode != ModeDisplay {
			return value
		}
		if h.Overrides().IsOverridden(row.RodneCislo, column) {
			return `<mark title="` + HighlightTitle + `">` + value + `</mark>`
		}
		return value
	}
}

// Load fetches the override map once in the background. On success the map
// replaces the empty placeholder and onReady runs. A failed fetch is logged
// and leaves highlighting disabled. Later calls do nothing.
func (h *Highlighter) Load(ctx context.Context, onReady func()) {
	h.once.Do(func() {
		go h.fetch(ctx, onReady)
	})
}

func (h *Highlighter) fetch(ctx context.Context, onReady func()) {
	defer close(h.settled)
	if h.source == nil {
		return
	}
	m, err := h.source.Overrides(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("overview: override fetch failed, values will not be highlighted")
		return
	}
	if m == nil {
		m = domain.OverrideMap{}
	}
	h.overrides.Store(&m)
	close(h.ready)
	h.logger.Debug().Int("donors", len(m)).Msg("overview: overrides loaded")
	if onReady != nil {
		onReady()
	}
}

// Overrides returns the current override map. It is empty until Load
// succeeds.
func (h *Highlighter) Overrides() domain.OverrideMap {
	return *h.overrides.Load()
}

// Ready is closed once the override map has been loaded.
func (h *Highlighter) Ready() <-chan struct{} { return h.ready }

// Settled is closed when the fetch finished, successfully or not.
func (h *Highlighter) Settled() <-chan struct{} { return h.settled }

// Columns returns the watched columns.
func (h *Highlighter) Columns() []string {
	return append([]string(nil), h.columns...)
}
