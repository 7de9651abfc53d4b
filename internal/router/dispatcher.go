package router

import (
	"net/http"
	"time"

	"github.com/routemux/routemux/internal/observability"
)

// Outcome is the result of a dispatch: the request was either handled
// by a matched entry or no entry matched. NotFound is a normal result
// value, not an error; the surrounding server decides the user-visible
// response.
type Outcome int

// Dispatch outcomes.
const (
	Handled Outcome = iota
	NotFound
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Dispatcher orchestrates request handling: match against the table,
// apply the matched entry's headers, invoke its handler. A dispatcher
// holds no per-request state and is safe for concurrent use once its
// table is fully registered.
type Dispatcher struct {
	table   *Table
	matcher *Matcher
	logger  observability.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger observability.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a dispatcher over the given table.
func NewDispatcher(table *Table, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		table:   table,
		matcher: NewMatcher(table),
		logger:  observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Table returns the dispatcher's route table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Dispatch resolves the request against the route table. On a match it
// applies the entry's headers and invokes its handler; an entry with
// no handler still gets its headers written, with an empty body and
// success status. On a miss it writes nothing and returns NotFound.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request) Outcome {
	start := time.Now()
	metrics := getRouterMetrics()

	entry, ok := d.matcher.Match(r.URL.Path, r.URL.Query())
	if !ok {
		metrics.dispatchTotal.WithLabelValues(NotFound.String()).Inc()
		d.logger.WithContext(r.Context()).Debug("no route matched",
			observability.String("path", r.URL.Path),
		)
		return NotFound
	}

	ApplyHeaders(w.Header(), entry)

	if handler := entry.Handler(); handler != nil {
		handler(w, r)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	metrics.dispatchTotal.WithLabelValues(Handled.String()).Inc()
	metrics.dispatchDuration.Observe(time.Since(start).Seconds())

	d.logger.WithContext(r.Context()).Debug("route dispatched",
		observability.String("path", entry.Path()),
		observability.String("query_key", entry.QueryKey()),
		observability.Duration("duration", time.Since(start)),
	)

	return Handled
}
