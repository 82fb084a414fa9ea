package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DonationTotalKey is the reserved key holding the total in a summary.
const DonationTotalKey = "total"

// DonationCount is the number of donations for one category.
type DonationCount struct {
	Slug  string
	Name  string
	Count int
}

// DonationCategories lists the donation places tracked in donors_overview, in
// display order.
var DonationCategories = []DonationCount{
	{Slug: "fm", Name: "Nemocnice FM"},
	{Slug: "fm_bubenik", Name: "Krevní centrum"},
	{Slug: "trinec", Name: "Nemocnice Třinec"},
	{Slug: "manual", Name: "Jinde"},
}

// DonationSummary maps donation categories to their counts plus the total.
// Category order is preserved through JSON and YAML.
type DonationSummary struct {
	Categories []DonationCount
	Total      int
}

// NewDonationSummary builds a summary from counts listed in the order of
// DonationCategories.
func NewDonationSummary(total int, counts ...int) DonationSummary {
	s := DonationSummary{Total: total}
	for i, c := range DonationCategories {
		if i < len(counts) {
			c.Count = counts[i]
		}
		s.Categories = append(s.Categories, c)
	}
	return s
}

type donationEntry struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func (s DonationSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, c := range s.Categories {
		key, err := json.Marshal(c.Slug)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(donationEntry{Name: c.Name, Count: c.Count})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		buf.WriteByte(',')
	}
	fmt.Fprintf(&buf, "%q:%d}", DonationTotalKey, s.Total)
	return buf.Bytes(), nil
}

func (s *DonationSummary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = DonationSummary{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("donation summary: expected object, got %v", tok)
	}
	out := DonationSummary{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if key == DonationTotalKey {
			if err := dec.Decode(&out.Total); err != nil {
				return fmt.Errorf("donation summary: total: %w", err)
			}
			continue
		}
		var entry donationEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("donation summary: %s: %w", key, err)
		}
		out.Categories = append(out.Categories, DonationCount{Slug: key, Name: entry.Name, Count: entry.Count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func (s *DonationSummary) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("donation summary: expected mapping at line %d", node.Line)
	}
	out := DonationSummary{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if key == DonationTotalKey {
			if err := node.Content[i+1].Decode(&out.Total); err != nil {
				return fmt.Errorf("donation summary: total: %w", err)
			}
			continue
		}
		var entry donationEntry
		if err := node.Content[i+1].Decode(&entry); err != nil {
			return fmt.Errorf("donation summary: %s: %w", key, err)
		}
		out.Categories = append(out.Categories, DonationCount{Slug: key, Name: entry.Name, Count: entry.Count})
	}
	*s = out
	return nil
}
