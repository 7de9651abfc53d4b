package config

import (
	"github.com/routemux/routemux/internal/router"
)

// DefaultRoutePath is the fallback path prefix applied to routes that
// omit their own path.
const DefaultRoutePath = "download"

// Config is the top-level routemux configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Tracing TracingConfig `yaml:"tracing,omitempty"`

	// DefaultPath is the path prefix used by routes without an
	// explicit path. Defaults to DefaultRoutePath.
	DefaultPath string `yaml:"defaultPath,omitempty"`

	// UniqueHeaderFields sets the default header replacement policy
	// for all routes. Defaults to true.
	UniqueHeaderFields *bool `yaml:"uniqueHeaderFields,omitempty"`

	Routes []RouteConfig `yaml:"routes"`
}

// ServerConfig holds listener configuration.
type ServerConfig struct {
	Address        string           `yaml:"address,omitempty"`
	Port           int              `yaml:"port,omitempty"`
	ReadTimeout    Duration         `yaml:"readTimeout,omitempty"`
	WriteTimeout   Duration         `yaml:"writeTimeout,omitempty"`
	IdleTimeout    Duration         `yaml:"idleTimeout,omitempty"`
	MaxHeaderBytes int              `yaml:"maxHeaderBytes,omitempty"`
	RateLimit      *RateLimitConfig `yaml:"rateLimit,omitempty"`
}

// RateLimitConfig configures the listener-wide token bucket.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled,omitempty"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond,omitempty"`
	Burst             int     `yaml:"burst,omitempty"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled,omitempty"`
	ServiceName  string  `yaml:"serviceName,omitempty"`
	OTLPEndpoint string  `yaml:"otlpEndpoint,omitempty"`
	SamplingRate float64 `yaml:"samplingRate,omitempty"`
}

// RouteConfig declares one route. Path and subpath are joined and
// normalized; key discriminates between routes sharing a path. At most
// one of filename and contentDisposition may be set.
type RouteConfig struct {
	Path    string `yaml:"path,omitempty"`
	Subpath string `yaml:"subpath,omitempty"`
	Key     string `yaml:"key,omitempty"`

	ContentType        string `yaml:"contentType,omitempty"`
	ContentDisposition string `yaml:"contentDisposition,omitempty"`
	Filename           string `yaml:"filename,omitempty"`
	CacheControl       string `yaml:"cacheControl,omitempty"`
	Connection         string `yaml:"connection,omitempty"`

	// Headers is the generic ordered header list, applied before the
	// dedicated fields above.
	Headers []HeaderConfig `yaml:"headers,omitempty"`

	// UniqueHeaderFields overrides the global policy for this route.
	UniqueHeaderFields *bool `yaml:"uniqueHeaderFields,omitempty"`

	// Body is a static inline response body. BodyFile serves the
	// contents of a file instead. At most one may be set; with
	// neither, the route responds with headers only.
	Body     string `yaml:"body,omitempty"`
	BodyFile string `yaml:"bodyFile,omitempty"`
}

// HeaderConfig is one name/value pair in a route's generic header list.
type HeaderConfig struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// FinalPath returns the route's normalized full path, falling back to
// the given default when the route has no path of its own.
func (r *RouteConfig) FinalPath(defaultPath string) string {
	path := r.Path
	if path == "" {
		path = defaultPath
	}
	return router.JoinPath(path, r.Subpath)
}

// EffectiveDefaultPath returns the configured default path prefix.
func (c *Config) EffectiveDefaultPath() string {
	if c.DefaultPath != "" {
		return c.DefaultPath
	}
	return DefaultRoutePath
}

// EffectiveUniqueHeaderFields resolves a route's header policy against
// the global default.
func (c *Config) EffectiveUniqueHeaderFields(r *RouteConfig) bool {
	if r.UniqueHeaderFields != nil {
		return *r.UniqueHeaderFields
	}
	if c.UniqueHeaderFields != nil {
		return *c.UniqueHeaderFields
	}
	return true
}
