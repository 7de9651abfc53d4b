package router

import (
	"net/url"
)

// Matcher resolves incoming requests to table entries. Matching is a
// pure read over the table's stored order: the first entry whose path
// equals the normalized request path and whose query key, if any, is
// present in the request's query parameters wins. Because the table
// orders keyed entries before the same path's catch-all, the linear
// scan realizes most-specific-first selection.
type Matcher struct {
	table *Table
}

// NewMatcher creates a matcher over the given table.
func NewMatcher(table *Table) *Matcher {
	return &Matcher{table: table}
}

// Match returns the best-matching entry for the request path and query
// parameters, or (nil, false) when no entry matches. Path comparison
// is exact string equality after normalization; query keys are matched
// by presence only, their values are ignored.
func (m *Matcher) Match(path string, query url.Values) (*Entry, bool) {
	p := NormalizePath(path)

	for _, e := range m.table.entries {
		if e.path != p {
			continue
		}
		if e.queryKey == "" || query.Has(e.queryKey) {
			return e, true
		}
	}

	return nil, false
}
