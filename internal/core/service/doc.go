// Package service provides the domain service for the rendezvous server.
//
// RendezvousService contains the business logic for the session channel:
// input validation, content-type defaulting, and the mapping between
// store outcomes and domain errors. It defines the SessionStore
// interface for its storage dependency, allowing for dependency
// injection and testability.
//
// The service is stateless and thread-safe; all shared state lives
// behind the SessionStore.
package service
