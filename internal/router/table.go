package router

import (
	"github.com/routemux/routemux/internal/util"
)

// routeKey is the identity of an entry within a table.
type routeKey struct {
	path     string
	queryKey string
}

// Table is an ordered collection of entries. Entries with a non-empty
// query key precede the same path's empty-key catch-all; entries for
// different paths keep their relative registration order. Registration
// happens during single-threaded setup only; after that the table is
// read-only and safe for concurrent matching.
type Table struct {
	entries []*Entry
	index   map[routeKey]*Entry
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		entries: make([]*Entry, 0),
		index:   make(map[routeKey]*Entry),
	}
}

// Register adds an entry to the table, maintaining specificity
// ordering. It fails with a DuplicateRouteError when an entry with the
// same (path, queryKey) pair already exists; the table is left
// unchanged in that case.
func (t *Table) Register(e *Entry) error {
	if e == nil {
		return util.ErrInvalidInput
	}

	key := routeKey{path: e.path, queryKey: e.queryKey}
	if _, exists := t.index[key]; exists {
		return util.NewDuplicateRouteError(e.path, e.queryKey)
	}

	t.entries = insertOrdered(t.entries, e)
	t.index[key] = e

	getRouterMetrics().routesRegistered.Set(float64(len(t.entries)))

	return nil
}

// insertOrdered places a keyed entry before the first empty-key entry
// sharing its path; everything else appends. Same-path keyed siblings
// and cross-path entries keep registration order.
func insertOrdered(entries []*Entry, e *Entry) []*Entry {
	if e.queryKey != "" {
		for i, existing := range entries {
			if existing.path == e.path && existing.queryKey == "" {
				entries = append(entries, nil)
				copy(entries[i+1:], entries[i:])
				entries[i] = e
				return entries
			}
		}
	}
	return append(entries, e)
}

// Entries returns the entries in match-priority order. The returned
// slice is a copy; the entries themselves are shared and must be
// treated as read-only.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the entry registered under the exact (path, queryKey)
// pair. The path is normalized before lookup.
func (t *Table) Lookup(path, queryKey string) (*Entry, bool) {
	e, ok := t.index[routeKey{path: NormalizePath(path), queryKey: queryKey}]
	return e, ok
}

// Len returns the number of registered entries.
func (t *Table) Len() int {
	return len(t.entries)
}
