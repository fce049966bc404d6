// Package rules defines the authored rule documents the assembly engine
// consumes and the level-scaling resolver for templated feature text.
package rules

import (
	"encoding/json"
	"sort"
	"strings"
)

// Breakpoint is one scaling threshold: the value a placeholder takes on once
// the character reaches MinLevel.
type Breakpoint struct {
	MinLevel int    `json:"min_level"`
	Value    string `json:"value"`
}

// Feature is a single authored feature. Content authors write either a bare
// string or an object carrying a description with {placeholder} tokens and a
// scaling table per placeholder.
type Feature struct {
	Description string                  `json:"description"`
	Scaling     map[string][]Breakpoint `json:"scaling,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and the object form
func (f *Feature) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Feature{Description: s}
		return nil
	}

	type alias Feature
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = Feature(a)
	return nil
}

// MarshalJSON writes the compact string form when there is no scaling table
func (f Feature) MarshalJSON() ([]byte, error) {
	if len(f.Scaling) == 0 {
		return json.Marshal(f.Description)
	}

	type alias Feature
	return json.Marshal(alias(f))
}

// ValueAt returns the value of the breakpoint with the largest MinLevel not
// exceeding level. Ties on MinLevel resolve to the later entry after the
// ascending sort, so the result is independent of input ordering. The second
// return is false when level is below every breakpoint.
func ValueAt(breakpoints []Breakpoint, level int) (string, bool) {
	sorted := make([]Breakpoint, len(breakpoints))
	copy(sorted, breakpoints)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinLevel < sorted[j].MinLevel
	})

	var value string
	found := false
	for _, bp := range sorted {
		if bp.MinLevel <= level {
			value = bp.Value
			found = true
		}
	}
	return value, found
}

// ResolveAt substitutes every scaled placeholder in the description with its
// value at the given level. Placeholders whose lowest breakpoint is above the
// level stay verbatim. Substitution is a single pass over the description: a
// substituted value is never re-scanned for further placeholders.
func (f Feature) ResolveAt(level int) string {
	if len(f.Scaling) == 0 {
		return f.Description
	}

	values := make(map[string]string, len(f.Scaling))
	for name, breakpoints := range f.Scaling {
		if v, ok := ValueAt(breakpoints, level); ok {
			values[name] = v
		}
	}
	return substitute(f.Description, values)
}

func substitute(s string, values map[string]string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			b.WriteString(s)
			return b.String()
		}
		length := strings.IndexByte(s[open:], '}')
		if length < 0 {
			b.WriteString(s)
			return b.String()
		}

		b.WriteString(s[:open])
		token := s[open : open+length+1]
		if v, ok := values[token[1:len(token)-1]]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(token)
		}
		s = s[open+length+1:]
	}
}
