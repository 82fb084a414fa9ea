package overview

import (
	"registry/internal/domain/columncfg"
)

// Export button settings.
const (
	ExportButtonText = "Stáhnout tabulku"
	ExportFilename   = "export"
	ExportTitle      = ""
)

// TableOptions is the grid configuration sent to the browser.
type TableOptions struct {
	Language      LanguageOptions `json:"language"`
	Processing    bool            `json:"processing"`
	ServerSide    bool            `json:"serverSide"`
	StateSave     bool            `json:"stateSave"`
	StateDuration int             `json:"stateDuration"`
	Ajax          string          `json:"ajax"`
	Columns       []ColumnOptions `json:"columns"`
	Buttons       []ButtonOptions `json:"buttons"`
	Dom           string          `json:"dom"`
	LengthMenu    [2][]any        `json:"lengthMenu"`
	OrderLocale   string          `json:"orderLocale"`
}

type LanguageOptions struct {
	URL string `json:"url,omitempty"`
}

type ColumnOptions struct {
	Data      string            `json:"data"`
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	Orderable bool              `json:"orderable"`
	Render    map[string]string `json:"render"`
}

type ButtonOptions struct {
	Extend   string `json:"extend"`
	Text     string `json:"text"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// sessionStateDuration keeps the saved grid state in session storage.
const sessionStateDuration = -1

var orthogonalRender = map[string]string{
	"_":       string(ModeDisplay),
	"display": string(ModeDisplay),
	"sort":    string(ModeSort),
	"type":    string(ModeSort),
	"filter":  string(ModeFilter),
}

// Options returns the grid configuration for this page.
func (c *Controller) Options() TableOptions {
	opts := TableOptions{
		Language:      LanguageOptions{URL: c.opts.LanguageURL},
		Processing:    true,
		ServerSide:    true,
		StateSave:     true,
		StateDuration: sessionStateDuration,
		Ajax:          c.opts.DataURL,
		Dom:           "Blfrtip",
		OrderLocale:   c.opts.OrderLocale,
		Buttons: []ButtonOptions{{
			Extend:   "excel",
			Text:     ExportButtonText,
			Title:    ExportTitle,
			Filename: ExportFilename,
			URL:      c.opts.ExportURL,
		}},
		LengthMenu: lengthMenu(c.opts.Catalogue.PageLengths),
	}
	for _, col := range c.opts.Catalogue.Columns {
		opts.Columns = append(opts.Columns, ColumnOptions{
			Data:      col.Name,
			Name:      col.Name,
			Title:     col.Title,
			Orderable: c.Orderable(col.Name),
			Render:    orthogonalRender,
		})
	}
	return opts
}

func lengthMenu(lengths []int) [2][]any {
	if len(lengths) == 0 {
		lengths = columncfg.DefaultPageLengths
	}
	var menu [2][]any
	for _, n := range lengths {
		menu[0] = append(menu[0], n)
		if n == columncfg.AllRowsLength {
			menu[1] = append(menu[1], columncfg.AllRowsLabel)
		} else {
			menu[1] = append(menu[1], n)
		}
	}
	return menu
}
