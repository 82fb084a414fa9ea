package repo

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"registry/internal/domain"
)

// fixtureFile is the on-disk layout read by LoadFixtures.
type fixtureFile struct {
	Donors    []fixtureDonor     `yaml:"donors"`
	Overrides domain.OverrideMap `yaml:"overrides"`
}

type fixtureDonor struct {
	RodneCislo    string                 `yaml:"rodne_cislo"`
	FirstName     string                 `yaml:"first_name"`
	LastName      string                 `yaml:"last_name"`
	Address       string                 `yaml:"address"`
	City          string                 `yaml:"city"`
	PostalCode    string                 `yaml:"postal_code"`
	KodPojistovny string                 `yaml:"kod_pojistovny"`
	Donations     domain.DonationSummary `yaml:"donations"`
	Medals        []string               `yaml:"medals"`
	Note          string                 `yaml:"note"`
}

func (d fixtureDonor) overview() domain.Overview {
	awarded := make(map[string]bool, len(d.Medals))
	for _, slug := range d.Medals {
		awarded[strings.TrimSpace(slug)] = true
	}
	o := domain.Overview{
		RodneCislo:    domain.NormalizeRC(d.RodneCislo),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Address:       d.Address,
		City:          d.City,
		PostalCode:    d.PostalCode,
		KodPojistovny: d.KodPojistovny,
		Donations:     d.Donations,
		LastAward:     domain.LastAward(awarded),
	}
	if strings.TrimSpace(d.Note) != "" {
		n := domain.ParseNotes(d.Note)
		o.Note = &n
	}
	return o
}

// MemoryStore serves donors and overrides from a YAML fixture file. It
// implements both domain.OverviewRepository and domain.OverrideRepository.
type MemoryStore struct {
	donors    []domain.Overview
	overrides domain.OverrideMap
	lang      language.Tag
}

// LoadFixtures reads a fixture file.
func LoadFixtures(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures builds a store from YAML. Duplicate identifiers are
// rejected.
func ParseFixtures(data []byte) (*MemoryStore, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	donors := make([]domain.Overview, 0, len(file.Donors))
	seen := make(map[string]struct{}, len(file.Donors))
	for i, d := range file.Donors {
		o := d.overview()
		if o.RodneCislo == "" {
			return nil, fmt.Errorf("parse fixtures: donor %d has no rodne_cislo", i)
		}
		if _, dup := seen[o.RodneCislo]; dup {
			return nil, fmt.Errorf("parse fixtures: duplicate rodne_cislo %s", o.RodneCislo)
		}
		seen[o.RodneCislo] = struct{}{}
		donors = append(donors, o)
	}
	return NewMemoryStore(donors, file.Overrides), nil
}

// NewMemoryStore wraps already loaded rows.
func NewMemoryStore(donors []domain.Overview, overrides domain.OverrideMap) *MemoryStore {
	if overrides == nil {
		overrides = domain.OverrideMap{}
	}
	return &MemoryStore{donors: donors, overrides: overrides, lang: language.Czech}
}

// Query filters, orders and pages the donors. Text columns are compared
// with Czech collation, so "Čech" sorts after "Cibulka".
func (s *MemoryStore) Query(ctx context.Context, q domain.OverviewQuery) (domain.OverviewPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.OverviewPage{}, err
	}
	for _, o := range q.Order {
		if _, ok := (domain.Overview{}).Value(o.Column); !ok {
			return domain.OverviewPage{}, fmt.Errorf("%w: %q", domain.ErrUnknownColumn, o.Column)
		}
	}

	matched := s.filter(q.Search)
	s.sort(matched, q.Order)

	page := domain.OverviewPage{Total: len(s.donors), Filtered: len(matched)}
	start := q.Start
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if q.Length >= 0 && start+q.Length < end {
		end = start + q.Length
	}
	page.Rows = append(make([]domain.Overview, 0, end-start), matched[start:end]...)
	return page, nil
}

// Get returns one donor.
func (s *MemoryStore) Get(ctx context.Context, rc string) (*domain.Overview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc = domain.NormalizeRC(rc)
	for i := range s.donors {
		if s.donors[i].RodneCislo == rc {
			o := s.donors[i]
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Overrides returns a copy of the fixture override map.
func (s *MemoryStore) Overrides(ctx context.Context) (domain.OverrideMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(domain.OverrideMap, len(s.overrides))
	for rc, flags := range s.overrides {
		cp := make(domain.OverrideFlags, len(flags))
		for column, set := range flags {
			if set {
				cp[column] = true
			}
		}
		out[domain.NormalizeRC(rc)] = cp
	}
	return out, nil
}

var searchColumns = []string{
	domain.ColRodneCislo,
	domain.ColFirstName,
	domain.ColLastName,
	domain.ColAddress,
	domain.ColCity,
	domain.ColPostalCode,
	domain.ColKodPojistovny,
	domain.ColNote,
}

func (s *MemoryStore) filter(search string) []domain.Overview {
	search = strings.TrimSpace(search)
	out := make([]domain.Overview, 0, len(s.donors))
	if search == "" {
		return append(out, s.donors...)
	}
	fold := cases.Fold()
	needle := fold.String(search)
	for _, o := range s.donors {
		for _, column := range searchColumns {
			v, _ := o.Value(column)
			if strings.Contains(fold.String(v), needle) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

func (s *MemoryStore) sort(rows []domain.Overview, order []domain.Ordering) {
	col := collate.New(s.lang)
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range order {
			c := compareColumn(col, rows[i], rows[j], o.Column)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return rows[i].RodneCislo < rows[j].RodneCislo
	})
}

func compareColumn(col *collate.Collator, a, b domain.Overview, column string) int {
	switch column {
	case domain.ColDonations:
		return compareInt(a.Donations.Total, b.Donations.Total)
	case domain.ColLastAward:
		return compareInt(domain.AwardRank(a.LastAward), domain.AwardRank(b.LastAward))
	case domain.ColRodneCislo:
		return strings.Compare(a.RodneCislo, b.RodneCislo)
	}
	av, _ := a.Value(column)
	bv, _ := b.Value(column)
	return col.CompareString(av, bv)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var (
	_ domain.OverviewRepository = (*MemoryStore)(nil)
	_ domain.OverrideRepository = (*MemoryStore)(nil)
)
