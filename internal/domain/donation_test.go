package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDonationSummaryJSONKeepsOrder(t *testing.T) {
	s := NewDonationSummary(12, 5, 0, 7, 0)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t,
		`{"fm":{"name":"Nemocnice FM","count":5},"fm_bubenik":{"name":"Krevní centrum","count":0},"trinec":{"name":"Nemocnice Třinec","count":7},"manual":{"name":"Jinde","count":0},"total":12}`,
		string(raw))

	var back DonationSummary
	require.NoError(t, json.Unmarshal([]byte(`{"z":{"name":"Z","count":1},"total":3,"a":{"name":"A","count":2}}`), &back))
	assert.Equal(t, 3, back.Total)
	require.Len(t, back.Categories, 2)
	assert.Equal(t, "z", back.Categories[0].Slug)
	assert.Equal(t, "a", back.Categories[1].Slug)
}

func TestDonationSummaryNullJSON(t *testing.T) {
	var s DonationSummary
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.Zero(t, s.Total)
	assert.Empty(t, s.Categories)
}

func TestDonationSummaryYAMLKeepsOrder(t *testing.T) {
	doc := `
trinec: {name: Nemocnice Třinec, count: 4}
fm: {name: Nemocnice FM, count: 1}
total: 5
`
	var s DonationSummary
	require.NoError(t, yaml.Unmarshal([]byte(doc), &s))
	assert.Equal(t, 5, s.Total)
	require.Len(t, s.Categories, 2)
	assert.Equal(t, DonationCount{Slug: "trinec", Name: "Nemocnice Třinec", Count: 4}, s.Categories[0])
	assert.Equal(t, "fm", s.Categories[1].Slug)
}
