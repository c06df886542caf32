// Package memory provides the in-memory rendezvous session store.
//
// The store is the sole shared mutable state of the server. A single
// mutex serializes every operation end to end; there are no suspension
// points inside an operation, which makes each call linearizable with
// respect to every other. The deferred eviction pass runs on the same
// serialization domain (the callback takes the store mutex).
//
// Two indexes are maintained: a hash map by session id for O(1) lookup,
// and an intrusive doubly-linked list ordered by last modification time
// for TTL expiry and LRU-style capacity eviction. Because the TTL is
// constant, modification order and expiry order are the same order.
package memory
