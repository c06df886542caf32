// Package logger provides structured logging for the rendezvous server.
//
// This package wraps the standard library log/slog:
//
//   - logger.go: Logger construction, level parsing, default logger
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Dynamic log level adjustment (config hot reload)
//   - Automatic masking of credential-looking fields
//   - Context propagation for request correlation
package logger
