// Package server hosts the route dispatcher behind an HTTP listener.
//
// The server wires the middleware stack (recovery, request ID, access
// logging, metrics, optional rate limiting and tracing) around the
// dispatcher and exposes /healthz and /metrics endpoints alongside the
// configured routes.
package server
