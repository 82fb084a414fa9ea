package domain

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeRC strips the slash and whitespace from a rodne cislo.
func NormalizeRC(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidRC validates a Czech birth number. Nine digits are accepted for
// people born before 1954, ten digits must pass the mod 11 checksum.
func IsValidRC(value string) bool {
	for _, r := range value {
		if !(r >= '0' && r <= '9') && r != '/' && r != ' ' {
			return false
		}
	}
	rc := NormalizeRC(value)
	if len(rc) != 9 && len(rc) != 10 {
		return false
	}

	yy, _ := strconv.Atoi(rc[0:2])
	mm, _ := strconv.Atoi(rc[2:4])
	dd, _ := strconv.Atoi(rc[4:6])

	if mm > 50 {
		mm -= 50
	}
	if mm < 1 || mm > 12 {
		return false
	}

	var year int
	if len(rc) == 9 {
		year = 1900 + yy
		if year >= 1954 {
			return false
		}
	} else if yy >= 54 {
		year = 1900 + yy
	} else {
		year = 2000 + yy
	}

	date := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != mm || date.Day() != dd {
		return false
	}

	if len(rc) == 10 {
		num, err := strconv.Atoi(rc[:9])
		if err != nil {
			return false
		}
		check := num % 11
		if check == 10 {
			check = 0
		}
		if check != int(rc[9]-'0') {
			return false
		}
	}
	return true
}
