// Package overview renders the donors overview table: cell renderers, the
// override highlighter and the page controller that ties them to a grid.
package overview

import (
	"html"

	"registry/internal/domain"
)

// RenderMode selects which representation of a cell is produced. Only
// ModeDisplay is shown to the user; the others feed sorting and filtering.
type RenderMode string

const (
	ModeDisplay RenderMode = "display"
	ModeSort    RenderMode = "sort"
	ModeFilter  RenderMode = "filter"
	ModeType    RenderMode = "type"
)

// Renderer transforms the value of a cell. value is the output of the
// previous renderer registered for the same column, or the plain column
// value (HTML-escaped in display mode) for the first one.
type Renderer func(value string, mode RenderMode, row domain.Overview) string

// ColumnDef attaches a renderer to a column.
type ColumnDef struct {
	Target    string
	Render    Renderer
	Orderable *bool
}

// Cell holds the orthogonal representations of one cell.
type Cell struct {
	Display string `json:"display"`
	Sort    string `json:"sort"`
	Filter  string `json:"filter"`
}

// RenderCell runs every definition targeting column, in registration order.
func RenderCell(defs []ColumnDef, column string, row domain.Overview, mode RenderMode) string {
	value, _ := row.Value(column)
	if mode == ModeDisplay {
		value = html.EscapeString(value)
	}
	for _, def := range defs {
		if def.Target != column || def.Render == nil {
			continue
		}
		value = def.Render(value, mode, row)
	}
	return value
}

func boolPtr(v bool) *bool { return &v }
