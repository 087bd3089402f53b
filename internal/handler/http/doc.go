// Package http implements the REST transport of the notes API on top of chi.
//
// Handlers translate form-encoded submissions and query parameters into
// service calls and map service and store errors to HTTP statuses. Request
// tracing, access logging, compression, Prometheus metrics, rate limiting,
// request timeouts and bearer authentication are applied as middleware.
package http
