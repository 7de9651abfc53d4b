package router

import (
	"fmt"
	"net/http"
	"strings"
)

// Well-known response header names with dedicated entry setters.
const (
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderCacheControl       = "Cache-Control"
	HeaderConnection         = "Connection"
)

// Handler is the callback invoked on a successful route match. The
// request's query parameters are available through r.URL.Query(); the
// entry's configured headers have already been applied to w when the
// handler runs.
type Handler func(w http.ResponseWriter, r *http.Request)

// HeaderField is a single configured response header. Field order is
// preserved as configured.
type HeaderField struct {
	Name  string
	Value string
}

// Entry describes one route: a normalized path, an optional query-key
// discriminator, an ordered response header list, and an optional
// handler. Entries are built during setup and must not be mutated
// after their table is published for matching.
type Entry struct {
	path               string
	queryKey           string
	headers            []HeaderField
	uniqueHeaderFields bool
	handler            Handler
}

// NewEntry creates an entry for the given raw path and query key. The
// path is normalized; the unique-header-fields policy defaults to on.
func NewEntry(path, queryKey string) *Entry {
	return &Entry{
		path:               NormalizePath(path),
		queryKey:           queryKey,
		uniqueHeaderFields: true,
	}
}

// NormalizePath collapses a raw path to its canonical form: empty input
// maps to "/", all leading and trailing slashes are stripped, empty
// internal segments are dropped, and exactly one leading slash is
// prefixed. The function is idempotent.
func NormalizePath(raw string) string {
	parts := strings.Split(raw, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}

// JoinPath joins a path and subpath and normalizes the result.
func JoinPath(path, subpath string) string {
	return NormalizePath(path + "/" + subpath)
}

// Path returns the normalized path.
func (e *Entry) Path() string {
	return e.path
}

// QueryKey returns the query-key discriminator; empty means the entry
// matches regardless of query parameters.
func (e *Entry) QueryKey() string {
	return e.queryKey
}

// Headers returns a copy of the configured headers in stored order.
func (e *Entry) Headers() []HeaderField {
	out := make([]HeaderField, len(e.headers))
	copy(out, e.headers)
	return out
}

// Handler returns the configured handler, nil if none.
func (e *Entry) Handler() Handler {
	return e.handler
}

// SetHandler configures the handler invoked on match.
func (e *Entry) SetHandler(h Handler) {
	e.handler = h
}

// SetUniqueHeaderFields controls the header replacement policy. When
// true (the default), SetHeader replaces an existing field of the same
// name in place; when false it appends a duplicate.
func (e *Entry) SetUniqueHeaderFields(unique bool) {
	e.uniqueHeaderFields = unique
}

// UniqueHeaderFields reports the current header replacement policy.
func (e *Entry) UniqueHeaderFields() bool {
	return e.uniqueHeaderFields
}

// SetHeader configures a response header. Names compare
// case-insensitively. Under the unique-field policy an existing field
// keeps its position and takes the new value; otherwise a new field is
// appended. Empty names and empty values are dropped: empty values are
// never written to the wire.
func (e *Entry) SetHeader(name, value string) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return
	}

	if e.uniqueHeaderFields {
		for i := range e.headers {
			if strings.EqualFold(e.headers[i].Name, name) {
				e.headers[i].Value = value
				return
			}
		}
	}

	e.headers = append(e.headers, HeaderField{Name: name, Value: value})
}

// AddHeader appends a response header regardless of the unique-field
// policy. Empty names and values are dropped.
func (e *Entry) AddHeader(name, value string) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return
	}
	e.headers = append(e.headers, HeaderField{Name: name, Value: value})
}

// GetHeader returns the value of the first header with the given name
// (case-insensitive), or "" if not configured.
func (e *Entry) GetHeader(name string) string {
	for i := range e.headers {
		if strings.EqualFold(e.headers[i].Name, name) {
			return e.headers[i].Value
		}
	}
	return ""
}

// SetContentType configures the Content-Type header. An empty value is
// a no-op.
func (e *Entry) SetContentType(value string) {
	e.SetHeader(HeaderContentType, value)
}

// SetContentDisposition configures the Content-Disposition header. An
// empty value is a no-op.
func (e *Entry) SetContentDisposition(value string) {
	e.SetHeader(HeaderContentDisposition, value)
}

// SetCacheControl configures the Cache-Control header. An empty value
// is a no-op.
func (e *Entry) SetCacheControl(value string) {
	e.SetHeader(HeaderCacheControl, value)
}

// SetConnection configures the Connection header. An empty value is a
// no-op.
func (e *Entry) SetConnection(value string) {
	e.SetHeader(HeaderConnection, value)
}

// SetFilename synthesizes a Content-Disposition attachment header from
// a download filename. Mutual exclusion with an explicitly configured
// disposition is enforced by the configuration layer before entries
// are built.
func (e *Entry) SetFilename(filename string) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return
	}
	e.SetContentDisposition(fmt.Sprintf("attachment; filename=%q", filename))
}
