package columncfg

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"registry/internal/domain"
)

// Kind controls how a column is sorted and exported.
type Kind string

const (
	KindText    Kind = "text"
	KindNumber  Kind = "number"
	KindAward   Kind = "award"
	KindNote    Kind = "note"
	KindUnknown Kind = ""
)

type Column struct {
	Name      string `yaml:"name"`
	Title     string `yaml:"title"`
	Kind      Kind   `yaml:"kind"`
	Orderable *bool  `yaml:"orderable"`
}

// Sortable reports whether the grid may order by the column.
func (c Column) Sortable() bool {
	if c.Orderable != nil {
		return *c.Orderable
	}
	return c.Kind != KindNote
}

// Catalogue lists the overview columns and the override columns watched for
// highlighting.
type Catalogue struct {
	Columns        []Column `yaml:"columns"`
	WatchedColumns []string `yaml:"watched_columns"`
	PageLengths    []int    `yaml:"page_lengths"`
}

const (
	// AllRowsLength is the page length meaning "every row".
	AllRowsLength = -1
	// AllRowsLabel is the page-size menu label for AllRowsLength.
	AllRowsLabel = "Všechny"
)

// DefaultPageLengths is the page-size menu when none is configured.
var DefaultPageLengths = []int{10, 25, 50, 100, AllRowsLength}

// Default returns the catalogue of the donors overview table.
func Default() Catalogue {
	return Catalogue{
		Columns: []Column{
			{Name: domain.ColRodneCislo, Title: "Rodné číslo", Kind: KindText},
			{Name: domain.ColFirstName, Title: "Jméno", Kind: KindText},
			{Name: domain.ColLastName, Title: "Příjmení", Kind: KindText},
			{Name: domain.ColAddress, Title: "Adresa", Kind: KindText},
			{Name: domain.ColCity, Title: "Město", Kind: KindText},
			{Name: domain.ColPostalCode, Title: "PSČ", Kind: KindText},
			{Name: domain.ColKodPojistovny, Title: "Pojišťovna", Kind: KindText},
			{Name: domain.ColDonations, Title: "Darování Celkem", Kind: KindNumber},
			{Name: domain.ColLastAward, Title: "Ocenění", Kind: KindAward},
			{Name: domain.ColNote, Title: "Poznámka", Kind: KindNote},
		},
		WatchedColumns: append([]string(nil), domain.OverrideColumns...),
		PageLengths:    append([]int(nil), DefaultPageLengths...),
	}
}

// Load reads a catalogue from a YAML file. Missing sections fall back to
// Default.
func Load(path string) (Catalogue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalogue{}, fmt.Errorf("columncfg: read %s: %w", path, err)
	}
	var c Catalogue
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalogue{}, fmt.Errorf("columncfg: parse %s: %w", path, err)
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return Catalogue{}, err
	}
	return c, nil
}

// Normalize fills missing sections and column attributes with defaults.
func (c *Catalogue) Normalize() {
	if c == nil {
		return
	}
	def := Default()
	if len(c.Columns) == 0 {
		c.Columns = def.Columns
	}
	if c.WatchedColumns == nil {
		c.WatchedColumns = def.WatchedColumns
	}
	if len(c.PageLengths) == 0 {
		c.PageLengths = def.PageLengths
	}
	known := make(map[string]Column, len(def.Columns))
	for _, col := range def.Columns {
		known[col.Name] = col
	}
	for i := range c.Columns {
		col := &c.Columns[i]
		col.Name = strings.TrimSpace(col.Name)
		d, ok := known[col.Name]
		if !ok {
			continue
		}
		if col.Title == "" {
			col.Title = d.Title
		}
		if col.Kind == KindUnknown {
			col.Kind = d.Kind
		}
	}
}

// Validate rejects columns the overview repository cannot serve.
func (c Catalogue) Validate() error {
	var probe domain.Overview
	seen := make(map[string]struct{}, len(c.Columns))
	for _, col := range c.Columns {
		if _, ok := probe.Value(col.Name); !ok {
			return fmt.Errorf("columncfg: %w: %q", domain.ErrUnknownColumn, col.Name)
		}
		if _, dup := seen[col.Name]; dup {
			return fmt.Errorf("columncfg: duplicate column %q", col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	for _, name := range c.WatchedColumns {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("columncfg: watched column %q is not in the table", name)
		}
	}
	for _, n := range c.PageLengths {
		if n == 0 || n < AllRowsLength {
			return fmt.Errorf("columncfg: invalid page length %d", n)
		}
	}
	return nil
}

// Names returns the column names in table order.
func (c Catalogue) Names() []string {
	out := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		out = append(out, col.Name)
	}
	return out
}

// Lookup finds a column by name.
func (c Catalogue) Lookup(name string) (Column, bool) {
	for _, col := range c.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}
