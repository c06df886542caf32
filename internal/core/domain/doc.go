// Package domain defines the core domain models for the rendezvous server.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Session: rendezvous channel entity with entity-tag versioning
//   - Errors: domain-specific error definitions with wire error codes
//
// All timestamps are Unix milliseconds supplied by the caller; the
// package itself never reads the wall clock, which keeps session
// lifecycle fully testable.
package domain
