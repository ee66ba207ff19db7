package model1

import "strings"

// Filter is a parsed free-text table filter. A bare term matches any field
// (case-insensitive substring). A COL=term term matches only the named
// column. Multiple terms are ANDed.
type Filter struct {
	terms []filterTerm
}

type filterTerm struct {
	col   string // uppercased column name, empty for any-column terms
	value string // lowercased substring
}

// ParseFilter parses a filter expression, e.g. "ani", "name=ani status=aktif".
func ParseFilter(expr string) Filter {
	var f Filter
	for _, tok := range strings.Fields(expr) {
		if col, val, ok := strings.Cut(tok, "="); ok && col != "" {
			f.terms = append(f.terms, filterTerm{
				col:   strings.ToUpper(col),
				value: strings.ToLower(val),
			})
			continue
		}
		f.terms = append(f.terms, filterTerm{value: strings.ToLower(tok)})
	}
	return f
}

// IsBlank returns true when the filter matches everything.
func (f Filter) IsBlank() bool {
	return len(f.terms) == 0
}

// Match returns true if the row satisfies every filter term.
func (f Filter) Match(h Header, r Row) bool {
	for _, t := range f.terms {
		if !t.match(h, r) {
			return false
		}
	}
	return true
}

func (t filterTerm) match(h Header, r Row) bool {
	if t.col != "" {
		idx, ok := h.IndexOf(t.col, true)
		if !ok || idx >= len(r.Fields) {
			return false
		}
		return strings.Contains(strings.ToLower(r.Fields[idx]), t.value)
	}

	for _, field := range r.Fields {
		if strings.Contains(strings.ToLower(field), t.value) {
			return true
		}
	}
	return false
}
