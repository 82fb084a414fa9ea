package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OverrideColumns are the overview columns that can be set by hand in
// donors_override.
var OverrideColumns = []string{
	ColFirstName,
	ColLastName,
	ColAddress,
	ColCity,
	ColPostalCode,
	ColKodPojistovny,
}

// OverrideFlags marks which columns of one donor were overridden.
type OverrideFlags map[string]bool

// OverrideMap holds override flags keyed by rodne cislo.
type OverrideMap map[string]OverrideFlags

// IsOverridden reports whether column of the donor rc was set by hand.
func (m OverrideMap) IsOverridden(rc, column string) bool {
	flags, ok := m[rc]
	if !ok {
		return false
	}
	return flags[column]
}

// UnmarshalJSON accepts any JSON scalar as a flag. Booleans, non-empty
// strings and non-zero numbers count as set.
func (f *OverrideFlags) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("override flags: %w", err)
	}
	out := make(OverrideFlags, len(raw))
	for column, v := range raw {
		out[column] = truthy(v)
	}
	*f = out
	return nil
}

// UnmarshalYAML applies the same truthiness rules to fixture files.
func (f *OverrideFlags) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("override flags: %w", err)
	}
	out := make(OverrideFlags, len(raw))
	for column, v := range raw {
		out[column] = truthy(v)
	}
	*f = out
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return strings.TrimSpace(t) != "" && t != "false" && t != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return false
}
