package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNotes_ContactsAndRemainder(t *testing.T) {
	n := ParseNotes("volat 603 123 456 nebo +420 777 888 999, mail jan@novak.cz")

	assert.Equal(t, []string{"jan@novak.cz"}, n.Emails)
	assert.Equal(t, []string{"603 123 456", "+420 777 888 999"}, n.Phones)
	assert.Contains(t, n.Other, "volat")
	assert.NotContains(t, n.Other, "@")
	assert.Equal(t, "volat 603 123 456 nebo +420 777 888 999, mail jan@novak.cz", n.Raw)
}

func TestParseNotes_LongDigitRunIsNotAPhone(t *testing.T) {
	n := ParseNotes("stare rc 7801011230")

	assert.Empty(t, n.Phones)
	assert.Equal(t, "stare rc 7801011230", n.Other)
}

func TestParseNotes_Blank(t *testing.T) {
	n := ParseNotes("   ")

	assert.Empty(t, n.Emails)
	assert.Empty(t, n.Phones)
	assert.Empty(t, n.Other)
	assert.True(t, n.Empty())
}

func TestNotesEmpty(t *testing.T) {
	var missing *Notes
	assert.True(t, missing.Empty())
	assert.True(t, (&Notes{Other: " \t"}).Empty())
	assert.False(t, (&Notes{Phones: []string{"111"}}).Empty())
}
