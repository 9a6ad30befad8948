// Package fieldpath parses dot-delimited field addresses such as
// "address.city" or "items.0.name" into ordered segments. A segment made up
// entirely of digits is always an array index, never an object field name;
// object schemas with literal all-digit field names are therefore not
// addressable, a documented limitation of the path format.
package fieldpath

import (
	"strconv"
	"strings"
)

// Segment is one step of a parsed field path.
type Segment struct {
	// Name holds the object field name for name segments and the raw text
	// for index segments.
	Name string
	// Index holds the parsed position for index segments. Arrays are modeled
	// as homogeneous, so resolution only cares that the segment is an index,
	// not which one.
	Index int
	// IsIndex reports whether the segment addresses an array position.
	IsIndex bool
}

// Path is the ordered segment list parsed from one field address string.
type Path []Segment

// Parse splits raw into segments. Parsing is total: it never fails, and an
// empty string yields an empty path addressing the root node. Malformed
// segments (for example the empty segment in "a..b") are kept as name
// segments and simply fail to resolve later.
func Parse(raw string) Path {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		if idx, ok := parseIndex(part); ok {
			path = append(path, Segment{Name: part, Index: idx, IsIndex: true})
			continue
		}
		path = append(path, Segment{Name: part})
	}
	return path
}

// String reassembles the path into its dot-delimited form.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p))
	for _, seg := range p {
		parts = append(parts, seg.Name)
	}
	return strings.Join(parts, ".")
}

func parseIndex(part string) (int, bool) {
	if part == "" {
		return 0, false
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	// Out-of-range digit runs still count as index segments; the position is
	// irrelevant for homogeneous arrays.
	idx, err := strconv.Atoi(part)
	if err != nil {
		return 0, true
	}
	return idx, true
}
