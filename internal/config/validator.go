package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/routemux/routemux/internal/util"
)

// headerNamePattern matches valid HTTP header field names (RFC 7230
// token characters).
var headerNamePattern = regexp.MustCompile("^[!#$%&'*+\\-.^_`|~0-9A-Za-z]+$")

// validLogLevels are the accepted logging levels.
var validLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig validates the full configuration. Validation is
// fail-fast: the first violation is returned and the configuration
// must not be brought online.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return util.NewConfigError("", "configuration is nil")
	}

	if err := validateServer(&cfg.Server); err != nil {
		return err
	}

	if !validLogLevels[strings.ToLower(cfg.Logging.Level)] {
		return util.NewConfigError("logging.level",
			fmt.Sprintf("unknown level %q", cfg.Logging.Level))
	}

	if len(cfg.Routes) == 0 {
		return util.NewConfigError("routes", "at least one route must be defined")
	}

	defaultPath := cfg.EffectiveDefaultPath()

	type identity struct {
		path string
		key  string
	}
	seen := make(map[identity]int)

	for i := range cfg.Routes {
		route := &cfg.Routes[i]
		field := fmt.Sprintf("routes[%d]", i)

		if err := validateRoute(route, field); err != nil {
			return err
		}

		finalPath := route.FinalPath(defaultPath)
		id := identity{path: finalPath, key: route.Key}
		if prev, exists := seen[id]; exists {
			return util.WrapError(
				util.NewDuplicateRouteError(finalPath, route.Key),
				fmt.Sprintf("%s conflicts with routes[%d]", field, prev),
			)
		}
		seen[id] = i
	}

	return nil
}

// validateServer validates listener settings.
func validateServer(s *ServerConfig) error {
	if s.Port < 0 || s.Port > 65535 {
		return util.NewConfigError("server.port",
			fmt.Sprintf("port %d out of range", s.Port))
	}

	if rl := s.RateLimit; rl != nil && rl.Enabled {
		if rl.RequestsPerSecond <= 0 {
			return util.NewConfigError("server.rateLimit.requestsPerSecond",
				"must be positive when rate limiting is enabled")
		}
		if rl.Burst <= 0 {
			return util.NewConfigError("server.rateLimit.burst",
				"must be positive when rate limiting is enabled")
		}
	}

	return nil
}

// validateRoute validates a single route definition.
func validateRoute(route *RouteConfig, field string) error {
	if route.Filename != "" && route.ContentDisposition != "" {
		return util.NewConflictingDispositionError(route.FinalPath(DefaultRoutePath), route.Key)
	}

	if route.Body != "" && route.BodyFile != "" {
		return util.NewConfigError(field, "body and bodyFile are mutually exclusive")
	}

	if strings.ContainsAny(route.Key, " \t=&") {
		return util.NewConfigError(field+".key",
			fmt.Sprintf("invalid query key %q", route.Key))
	}

	for j, h := range route.Headers {
		headerField := fmt.Sprintf("%s.headers[%d]", field, j)

		name := strings.TrimSpace(h.Name)
		if name == "" {
			return util.NewConfigError(headerField, "header name must not be empty")
		}
		if !headerNamePattern.MatchString(name) {
			return util.NewConfigError(headerField,
				fmt.Sprintf("invalid header name %q", h.Name))
		}
		if strings.ContainsAny(h.Value, "\r\n") {
			return util.NewConfigError(headerField, "header value must not contain CR or LF")
		}
	}

	return nil
}
