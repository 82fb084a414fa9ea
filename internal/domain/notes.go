package domain

import (
	"regexp"
	"strings"
)

// Notes is a free-text donor note split into contact annotations.
type Notes struct {
	Emails []string `json:"emails" yaml:"emails"`
	Phones []string `json:"phones" yaml:"phones"`
	Other  string   `json:"other" yaml:"other"`
	Raw    string   `json:"raw" yaml:"raw"`
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// Group 1 is a number with a country prefix, group 2 a bare 9-digit
	// number which must not be part of a longer digit run.
	phoneRe = regexp.MustCompile(`((?:\+420|00420)\s?[1-9]\d{2}\s?\d{3}\s?\d{3})|([1-9]\d{2}\s?\d{3}\s?\d{3})`)
)

// ParseNotes extracts e-mail addresses and phone numbers from a note. The
// remaining text ends up in Other.
func ParseNotes(raw string) Notes {
	n := Notes{Raw: raw}
	if strings.TrimSpace(raw) == "" {
		return n
	}

	rest := raw
	n.Emails = emailRe.FindAllString(rest, -1)
	rest = emailRe.ReplaceAllString(rest, " ")

	var spans [][2]int
	for offset := 0; offset < len(rest); {
		loc := phoneRe.FindStringSubmatchIndex(rest[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		if loc[2] < 0 && !digitBoundary(rest, start, end) {
			offset = start + 1
			continue
		}
		n.Phones = append(n.Phones, rest[start:end])
		spans = append(spans, [2]int{start, end})
		offset = end
	}
	for i := len(spans) - 1; i >= 0; i-- {
		rest = rest[:spans[i][0]] + " " + rest[spans[i][1]:]
	}

	n.Other = strings.Trim(strings.Join(strings.Fields(rest), " "), " ,;")
	return n
}

func digitBoundary(s string, start, end int) bool {
	if start > 0 && isDigit(s[start-1]) {
		return false
	}
	if end < len(s) && isDigit(s[end]) {
		return false
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Empty reports whether the note carries nothing worth an icon.
func (n *Notes) Empty() bool {
	return n == nil || (len(n.Emails) == 0 && len(n.Phones) == 0 && strings.TrimSpace(n.Other) == "")
}
