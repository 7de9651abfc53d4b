package config

import (
	"net/http"
	"os"

	"github.com/routemux/routemux/internal/observability"
	"github.com/routemux/routemux/internal/router"
	"github.com/routemux/routemux/internal/util"
)

// BuildEntries compiles validated route definitions into router
// entries. Generic headers are applied first, dedicated fields after;
// under the unique-field policy the dedicated fields override generic
// headers of the same name.
func BuildEntries(cfg *Config) []*router.Entry {
	defaultPath := cfg.EffectiveDefaultPath()
	entries := make([]*router.Entry, 0, len(cfg.Routes))

	for i := range cfg.Routes {
		route := &cfg.Routes[i]

		e := router.NewEntry(route.FinalPath(defaultPath), route.Key)
		e.SetUniqueHeaderFields(cfg.EffectiveUniqueHeaderFields(route))

		for _, h := range route.Headers {
			e.SetHeader(h.Name, h.Value)
		}

		e.SetContentType(route.ContentType)
		e.SetCacheControl(route.CacheControl)
		e.SetConnection(route.Connection)

		// Validation rejected routes configuring both.
		if route.Filename != "" {
			e.SetFilename(route.Filename)
		} else {
			e.SetContentDisposition(route.ContentDisposition)
		}

		if handler := buildHandler(route); handler != nil {
			e.SetHandler(handler)
		}

		entries = append(entries, e)
	}

	return entries
}

// buildHandler compiles a route's configured response body into a
// handler. Routes with neither body nor bodyFile get no handler and
// respond with headers only.
func buildHandler(route *RouteConfig) router.Handler {
	switch {
	case route.Body != "":
		body := []byte(route.Body)
		return func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(body)
		}

	case route.BodyFile != "":
		path := route.BodyFile
		return func(w http.ResponseWriter, r *http.Request) {
			data, err := os.ReadFile(path) //nolint:gosec // path comes from validated configuration
			if err != nil {
				observability.L().WithContext(r.Context()).Error("failed to read body file",
					observability.String("path", path),
					observability.Error(err),
				)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write(data)
		}

	default:
		return nil
	}
}

// BuildTable validates the configuration, compiles its routes, and
// registers them into a fresh table. The table re-enforces the
// duplicate invariant even though validation already checked it.
func BuildTable(cfg *Config) (*router.Table, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	table := router.NewTable()
	for _, e := range BuildEntries(cfg) {
		if err := table.Register(e); err != nil {
			return nil, util.WrapError(err, "failed to register route")
		}
	}

	return table, nil
}
