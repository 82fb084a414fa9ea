package overview

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registry/internal/domain"
	"registry/internal/domain/columncfg"
)

type recordingGrid struct {
	mu    sync.Mutex
	draws []DrawMode
	drawn chan struct{}
}

func newRecordingGrid() *recordingGrid {
	return &recordingGrid{drawn: make(chan struct{}, 8)}
}

func (g *recordingGrid) Draw(mode DrawMode) {
	g.mu.Lock()
	g.draws = append(g.draws, mode)
	g.mu.Unlock()
	g.drawn <- struct{}{}
}

func (g *recordingGrid) Draws() []DrawMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]DrawMode(nil), g.draws...)
}

func testOptions() Options {
	return Options{
		Catalogue:   columncfg.Default(),
		DataURL:     "/donor/overview/data",
		ExportURL:   "/donor/overview/export",
		DetailURL:   "/donor/detail/" + DetailPlaceholder,
		LanguageURL: "//cdn.datatables.net/plug-ins/1.10.21/i18n/Czech.json",
	}
}

func TestController_RedrawsPageWhenOverridesArrive(t *testing.T) {
	h := NewHighlighter(staticSource(domain.OverrideMap{"123456": {"city": true}}), domain.OverrideColumns, zerolog.Nop())
	c := NewController(testOptions(), h, zerolog.Nop())
	assert.Equal(t, StateUninitialized, c.State())

	grid := newRecordingGrid()
	c.Start(context.Background(), grid)
	waitClosed(t, h.Settled())

	assert.Equal(t, []DrawMode{DrawPage}, grid.Draws())
	assert.Equal(t, StateRedrawn, c.State())

	row := domain.Overview{RodneCislo: "123456", City: "Praha"}
	assert.Contains(t, c.Cell(row, domain.ColCity, ModeDisplay), "<mark")
}

func TestController_NoRedrawWhenFetchFails(t *testing.T) {
	src := OverrideSourceFunc(func(context.Context) (domain.OverrideMap, error) {
		return nil, errors.New("offline")
	})
	h := NewHighlighter(src, domain.OverrideColumns, zerolog.Nop())
	c := NewController(testOptions(), h, zerolog.Nop())
	grid := newRecordingGrid()

	c.Start(context.Background(), grid)
	waitClosed(t, h.Settled())

	assert.Empty(t, grid.Draws())
	assert.Equal(t, StateConstructed, c.State())
}

func TestController_IdentifierRawOutsideDisplay(t *testing.T) {
	h := NewHighlighter(staticSource(domain.OverrideMap{"7801011230": {"rodne_cislo": true}}), []string{domain.ColRodneCislo}, zerolog.Nop())
	c := NewController(testOptions(), h, zerolog.Nop())
	grid := newRecordingGrid()
	c.Start(context.Background(), grid)
	waitClosed(t, h.Ready())

	row := domain.Overview{RodneCislo: "7801011230"}
	for _, mode := range []RenderMode{ModeSort, ModeFilter, ModeType} {
		assert.Equal(t, "7801011230", c.Cell(row, domain.ColRodneCislo, mode))
	}
	assert.Equal(t,
		`<mark title="Tato hodnota byla ručně nastavena"><a href='/donor/detail/7801011230'>7801011230</a></mark>`,
		c.Cell(row, domain.ColRodneCislo, ModeDisplay))
}

func TestController_RenderRow(t *testing.T) {
	c := NewController(testOptions(), nil, zerolog.Nop())
	note := domain.ParseNotes("jan@novak.cz")
	row := domain.Overview{
		RodneCislo: "7801011230",
		FirstName:  "Jan & syn",
		Donations:  domain.NewDonationSummary(3, 3),
		LastAward:  domain.NoAward,
		Note:       &note,
	}

	cells := c.RenderRow(row)

	require.Len(t, cells, len(columncfg.Default().Columns))
	assert.Equal(t, "Jan &amp; syn", cells[domain.ColFirstName].Display)
	assert.Equal(t, "Jan & syn", cells[domain.ColFirstName].Sort)
	assert.Equal(t, "3", cells[domain.ColDonations].Sort)
	assert.Contains(t, cells[domain.ColDonations].Display, "❓")
	assert.Equal(t, `<a href="mailto:jan@novak.cz" title="jan@novak.cz">📧</a>`, cells[domain.ColNote].Display)
	assert.Equal(t, "jan@novak.cz", cells[domain.ColNote].Filter)
	assert.Equal(t, domain.NoAward, cells[domain.ColLastAward].Display)
}

func TestController_NotesWithoutNoteRenderEmpty(t *testing.T) {
	c := NewController(testOptions(), nil, zerolog.Nop())

	assert.Equal(t, "", c.Cell(domain.Overview{RodneCislo: "1"}, domain.ColNote, ModeDisplay))
}

func TestController_Options(t *testing.T) {
	c := NewController(testOptions(), nil, zerolog.Nop())

	opts := c.Options()

	assert.True(t, opts.ServerSide)
	assert.True(t, opts.Processing)
	assert.True(t, opts.StateSave)
	assert.Equal(t, -1, opts.StateDuration)
	assert.Equal(t, "cs-CZ", opts.OrderLocale)
	assert.Equal(t, "Blfrtip", opts.Dom)
	require.Len(t, opts.Buttons, 1)
	assert.Equal(t, "Stáhnout tabulku", opts.Buttons[0].Text)
	assert.Equal(t, "export", opts.Buttons[0].Filename)
	assert.Equal(t, "", opts.Buttons[0].Title)
	assert.Equal(t, []any{10, 25, 50, 100, -1}, opts.LengthMenu[0])
	assert.Equal(t, []any{10, 25, 50, 100, "Všechny"}, opts.LengthMenu[1])

	byName := map[string]ColumnOptions{}
	for _, col := range opts.Columns {
		byName[col.Name] = col
	}
	assert.False(t, byName[domain.ColNote].Orderable)
	assert.True(t, byName[domain.ColCity].Orderable)
	assert.Equal(t, "Město", byName[domain.ColCity].Title)

	raw, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"stateDuration":-1`)
	assert.Contains(t, string(raw), `"serverSide":true`)
}
