package domain

// NoAward is shown for donors without any medal.
const NoAward = "Žádné"

// Medal is an award for a number of donations.
type Medal struct {
	Slug             string
	Title            string
	MinimumDonations int
}

// Medals is ordered from the lowest award to the highest.
var Medals = []Medal{
	{Slug: "br", Title: "Bronzová medaile", MinimumDonations: 10},
	{Slug: "st", Title: "Stříbrná medaile", MinimumDonations: 20},
	{Slug: "zl", Title: "Zlatá medaile", MinimumDonations: 40},
	{Slug: "kr3", Title: "Zlatý kříž 3. třídy", MinimumDonations: 80},
	{Slug: "kr2", Title: "Zlatý kříž 2. třídy", MinimumDonations: 120},
	{Slug: "kr1", Title: "Zlatý kříž 1. třídy", MinimumDonations: 160},
	{Slug: "plk", Title: "Plaketa ČČK", MinimumDonations: 250},
}

// LastAward returns the title of the highest awarded medal.
func LastAward(awarded map[string]bool) string {
	for i := len(Medals) - 1; i >= 0; i-- {
		if awarded[Medals[i].Slug] {
			return Medals[i].Title
		}
	}
	return NoAward
}

// AwardRank orders award titles: NoAward is 0, then 1 for the lowest medal.
func AwardRank(title string) int {
	for i, m := range Medals {
		if m.Title == title {
			return i + 1
		}
	}
	return 0
}
