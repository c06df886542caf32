// Package main provides the entry point for rendezvous-server.
//
// The server exposes a short-lived, ETag-coordinated byte exchange
// over HTTP for out-of-band client handshakes (e.g. sign in with QR).
//
// Usage:
//
//	rendezvous-server [flags]
//	rendezvous-server --config /path/to/config.yaml
//
// The server loads configuration, initializes the in-memory session
// store, and starts the HTTP listener.
package main
