package overview

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"registry/internal/domain"
)

// DetailPlaceholder is replaced by the rodne cislo in the detail URL template.
const DetailPlaceholder = "REPLACE_ME"

const modalAttrs = `data-toggle="modal" data-target="#titleModal"`

// IdentifierLink renders the rodne cislo as a link to the donor detail page.
// Non-display modes return the value untouched so sorting and filtering see
// the raw identifier.
func IdentifierLink(detailURL string) Renderer {
	return func(value string, mode RenderMode, row domain.Overview) string {
		if mode != ModeDisplay {
			return value
		}
		href := strings.ReplaceAll(detailURL, DetailPlaceholder, url.PathEscape(row.RodneCislo))
		return "<a href='" + html.EscapeString(href) + "'>" + html.EscapeString(row.RodneCislo) + "</a>"
	}
}

// DonationsCell renders the total followed by a help icon listing donations
// per category.
func DonationsCell(value string, mode RenderMode, row domain.Overview) string {
	if mode != ModeDisplay {
		return value
	}
	return strconv.Itoa(row.Donations.Total) + DonationsTooltip(row.Donations)
}

// DonationsTooltip returns the help icon for a donation summary.
func DonationsTooltip(s domain.DonationSummary) string {
	return modalIcon(DonationsTitle(s), "❓")
}

// DonationsTitle lists "name: count" for every category, one per line.
func DonationsTitle(s domain.DonationSummary) string {
	lines := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		if c.Slug == domain.DonationTotalKey {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %d", c.Name, c.Count))
	}
	return strings.Join(lines, "\n")
}

// NotesCell renders contact icons for the row note.
func NotesCell(value string, mode RenderMode, row domain.Overview) string {
	if mode != ModeDisplay {
		return value
	}
	return NotesIcons(row.Note)
}

// NotesIcons renders a mail link per e-mail, one phone icon for all phone
// numbers and a warning icon when the note holds any other text.
func NotesIcons(n *domain.Notes) string {
	if n == nil {
		return ""
	}
	var icons []string
	for _, email := range n.Emails {
		e := html.EscapeString(email)
		icons = append(icons, `<a href="mailto:`+e+`" title="`+e+`">📧</a>`)
	}
	if len(n.Phones) > 0 {
		icons = append(icons, modalIcon(strings.Join(n.Phones, "\n"), "📞"))
	}
	if strings.TrimSpace(n.Other) != "" {
		icons = append(icons, modalIcon(n.Raw, "⚠️"))
	}
	return strings.Join(icons, " ")
}

func modalIcon(title, icon string) string {
	return `<span ` + modalAttrs + ` title="` + html.EscapeString(title) + `">` + icon + `</span>`
}
