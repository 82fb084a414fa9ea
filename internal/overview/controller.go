package overview

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"registry/internal/domain"
	"registry/internal/domain/columncfg"
)

// DrawMode tells the grid how much of its state to throw away on redraw.
type DrawMode string

const (
	// DrawPage re-renders the current page keeping paging, ordering and search.
	DrawPage DrawMode = "page"
	// DrawFullReset goes back to the first page.
	DrawFullReset DrawMode = "full-reset"
)

// Grid is the table widget driven by the controller.
type Grid interface {
	Draw(mode DrawMode)
}

// State is the lifecycle of a Controller.
type State int

const (
	StateUninitialized State = iota
	StateConstructed
	StateRedrawn
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConstructed:
		return "constructed"
	case StateRedrawn:
		return "redrawn"
	}
	return "unknown"
}

// Options configures a Controller.
type Options struct {
	Catalogue   columncfg.Catalogue
	DataURL     string
	ExportURL   string
	DetailURL   string // contains DetailPlaceholder
	LanguageURL string
	OrderLocale string
}

// DefaultOrderLocale is the collation used for text columns.
const DefaultOrderLocale = "cs-CZ"

// Controller owns the column definitions of one overview page and the grid
// showing them.
type Controller struct {
	opts        Options
	highlighter *Highlighter
	defs        []ColumnDef
	logger      zerolog.Logger

	mu    sync.Mutex
	grid  Grid
	state State
}

// NewController builds the column definitions and lets the highlighter
// extend them, so highlight rules exist before the grid draws anything.
func NewController(opts Options, highlighter *Highlighter, logger zerolog.Logger) *Controller {
	if opts.OrderLocale == "" {
		opts.OrderLocale = DefaultOrderLocale
	}
	defs := []ColumnDef{
		{Target: domain.ColRodneCislo, Render: IdentifierLink(opts.DetailURL)},
		{Target: domain.ColDonations, Render: DonationsCell},
		{Target: domain.ColNote, Render: NotesCell, Orderable: boolPtr(false)},
	}
	if highlighter != nil {
		defs = highlighter.Extend(defs)
	}
	return &Controller{
		opts:        opts,
		highlighter: highlighter,
		defs:        defs,
		logger:      logger,
	}
}

// Start attaches the grid and begins the override fetch. When the overrides
// arrive the grid redraws its current page. The grid is attached first so the
// fetch callback always finds it.
func (c *Controller) Start(ctx context.Context, grid Grid) {
	c.mu.Lock()
	c.grid = grid
	if c.state == StateUninitialized {
		c.state = StateConstructed
	}
	c.mu.Unlock()

	if c.highlighter != nil {
		c.highlighter.Load(ctx, c.overridesReady)
	}
}

func (c *Controller) overridesReady() {
	c.mu.Lock()
	grid := c.grid
	if grid != nil {
		c.state = StateRedrawn
	}
	c.mu.Unlock()

	if grid == nil {
		return
	}
	c.logger.Debug().Msg("overview: redrawing page with overrides")
	grid.Draw(DrawPage)
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Defs returns a copy of the column definitions.
func (c *Controller) Defs() []ColumnDef {
	return append([]ColumnDef(nil), c.defs...)
}

// Highlighter returns the highlighter wired into the controller.
func (c *Controller) Highlighter() *Highlighter { return c.highlighter }

// Catalogue returns the columns shown by the controller.
func (c *Controller) Catalogue() columncfg.Catalogue { return c.opts.Catalogue }

// Cell renders one column of a row in the given mode.
func (c *Controller) Cell(row domain.Overview, column string, mode RenderMode) string {
	return RenderCell(c.defs, column, row, mode)
}

// RenderRow renders every catalogue column of row.
func (c *Controller) RenderRow(row domain.Overview) map[string]Cell {
	out := make(map[string]Cell, len(c.opts.Catalogue.Columns))
	for _, col := range c.opts.Catalogue.Columns {
		out[col.Name] = Cell{
			Display: c.Cell(row, col.Name, ModeDisplay),
			Sort:    c.Cell(row, col.Name, ModeSort),
			Filter:  c.Cell(row, col.Name, ModeFilter),
		}
	}
	return out
}

// RenderRows renders a page of rows.
func (c *Controller) RenderRows(rows []domain.Overview) []map[string]Cell {
	out := make([]map[string]Cell, 0, len(rows))
	for _, row := range rows {
		out = append(out, c.RenderRow(row))
	}
	return out
}

// Orderable reports whether the grid may sort by column.
func (c *Controller) Orderable(column string) bool {
	col, ok := c.opts.Catalogue.Lookup(column)
	if !ok || !col.Sortable() {
		return false
	}
	for _, def := range c.defs {
		if def.Target == column && def.Orderable != nil && !*def.Orderable {
			return false
		}
	}
	return true
}
