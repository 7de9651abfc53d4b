package router

import (
	"net/http"
)

// ApplyHeaders writes an entry's configured headers to the response
// header map in stored order. Headers are applied fresh from the
// immutable entry on every request; no state is shared between
// dispatches. Uniqueness of field names is the entry's concern
// (SetHeader), not re-checked here.
func ApplyHeaders(h http.Header, e *Entry) {
	for _, field := range e.headers {
		if field.Value == "" {
			continue
		}
		h.Add(field.Name, field.Value)
	}
}
