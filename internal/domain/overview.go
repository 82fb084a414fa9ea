package domain

import "strconv"

// Column names shared by the overview table, the repositories and the export.
const (
	ColRodneCislo    = "rodne_cislo"
	ColFirstName     = "first_name"
	ColLastName      = "last_name"
	ColAddress       = "address"
	ColCity          = "city"
	ColPostalCode    = "postal_code"
	ColKodPojistovny = "kod_pojistovny"
	ColDonations     = "donations"
	ColLastAward     = "last_award"
	ColNote          = "note"
)

// Overview is one donor row of the overview table.
type Overview struct {
	RodneCislo    string          `json:"rodne_cislo" yaml:"rodne_cislo"`
	FirstName     string          `json:"first_name" yaml:"first_name"`
	LastName      string          `json:"last_name" yaml:"last_name"`
	Address       string          `json:"address" yaml:"address"`
	City          string          `json:"city" yaml:"city"`
	PostalCode    string          `json:"postal_code" yaml:"postal_code"`
	KodPojistovny string          `json:"kod_pojistovny" yaml:"kod_pojistovny"`
	Donations     DonationSummary `json:"donations" yaml:"donations"`
	LastAward     string          `json:"last_award" yaml:"last_award"`
	Note          *Notes          `json:"note" yaml:"note"`
}

// Value returns the plain text value of the named column. The second result
// is false for unknown columns.
func (o Overview) Value(column string) (string, bool) {
	switch column {
	case ColRodneCislo:
		return o.RodneCislo, true
	case ColFirstName:
		return o.FirstName, true
	case ColLastName:
		return o.LastName, true
	case ColAddress:
		return o.Address, true
	case ColCity:
		return o.City, true
	case ColPostalCode:
		return o.PostalCode, true
	case ColKodPojistovny:
		return o.KodPojistovny, true
	case ColDonations:
		return strconv.Itoa(o.Donations.Total), true
	case ColLastAward:
		return o.LastAward, true
	case ColNote:
		if o.Note == nil {
			return "", true
		}
		return o.Note.Raw, true
	}
	return "", false
}

// OverviewQuery selects one page of the overview table.
type OverviewQuery struct {
	Start  int
	Length int // negative means all rows
	Search string
	Order  []Ordering
}

// Ordering is a single sort key.
type Ordering struct {
	Column string
	Desc   bool
}

// OverviewPage is the result of an OverviewQuery.
type OverviewPage struct {
	Rows     []Overview
	Total    int
	Filtered int
}
