// Package httpserver provides the HTTP/HTTPS server for the rendezvous
// service.
//
// This package implements the external API using stdlib net/http:
//
//   - Rendezvous endpoints: /rendezvous, /rendezvous/{id}
//   - Health endpoints: /health, /ready
//   - Metrics endpoint: /metrics
//
// Features:
//
//   - TLS support
//   - Middleware chain: Recover, RequestID, RateLimit, Audit, Metrics
//   - Graceful shutdown with configurable timeout
//   - Mode-dependent routing (disabled, native, delegated)
package httpserver
