// Package middleware provides HTTP middleware for the routemux server.
//
// Middleware are functions of the form func(http.Handler) http.Handler
// and compose with Chain. The server installs request ID propagation,
// panic recovery, access logging, optional rate limiting, and request
// metrics around the route dispatcher.
package middleware
