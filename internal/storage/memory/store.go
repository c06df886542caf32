// Package memory provides the in-memory rendezvous session store.
package memory

import (
	"container/list"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/yndnr/rendezvous-go/internal/core/domain"
)

// Store defaults. All of them are configurable via Options.
const (
	// DefaultTTL is the session lifetime, counted from last mutation.
	DefaultTTL = 5 * time.Minute

	// DefaultSoftCapacity is the size above which a deferred eviction
	// pass is scheduled.
	DefaultSoftCapacity = 100

	// DefaultHardCapacity is the size never exceeded between
	// operations; inserts at the limit evict synchronously.
	DefaultHardCapacity = 200

	// DefaultMaxContentLength bounds the payload size in bytes.
	DefaultMaxContentLength = 4096

	// EvictionInterval is the delay before a scheduled eviction pass.
	EvictionInterval = time.Second
)

// maxIDAttempts bounds the retry loop for session id collisions. With
// 64 bits of entropy a single retry is already astronomically unlikely.
const maxIDAttempts = 8

// Stats is a snapshot of store counters.
type Stats struct {
	// Active is the number of live sessions.
	Active int

	// Created counts successful session creations.
	Created uint64

	// Expired counts sessions dropped because their TTL elapsed.
	Expired uint64

	// Evicted counts sessions dropped to stay within capacity.
	Evicted uint64

	// Deleted counts explicit client deletions.
	Deleted uint64
}

// Store holds rendezvous sessions by id, enforces capacity, and owns
// eviction. It implements the service.SessionStore contract.
type Store struct {
	mu    sync.Mutex
	clock clock.Clock

	ttl              time.Duration
	softCapacity     int
	hardCapacity     int
	maxContentLength int

	// Primary index: id -> list element whose Value is *domain.Session.
	sessions map[string]*list.Element

	// Modification order: oldest at the front. Every successful write
	// moves its session to the back.
	order *list.List

	// evictionScheduled guards against overlapping deferred passes.
	evictionScheduled bool

	stats Stats
}

// Option configures the Store.
type Option func(*Store)

// WithClock sets the time source. Tests pass clock.NewMock().
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithSoftCapacity sets the deferred-eviction threshold.
func WithSoftCapacity(n int) Option {
	return func(s *Store) {
		s.softCapacity = n
	}
}

// WithHardCapacity sets the synchronous-eviction limit.
func WithHardCapacity(n int) Option {
	return func(s *Store) {
		s.hardCapacity = n
	}
}

// WithMaxContentLength sets the payload size limit in bytes.
func WithMaxContentLength(n int) Option {
	return func(s *Store) {
		s.maxContentLength = n
	}
}

// New creates a new in-memory rendezvous store.
func New(opts ...Option) *Store {
	s := &Store{
		clock:            clock.New(),
		ttl:              DefaultTTL,
		softCapacity:     DefaultSoftCapacity,
		hardCapacity:     DefaultHardCapacity,
		maxContentLength: DefaultMaxContentLength,
		sessions:         make(map[string]*list.Element),
		order:            list.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// MaxContentLength returns the configured payload size limit.
func (s *Store) MaxContentLength() int {
	return s.maxContentLength
}

// Create allocates a fresh session holding the given content and
// inserts it. If the store is at the hard capacity, the oldest sessions
// are evicted synchronously first; the insert itself never fails for
// capacity. Crossing the soft capacity schedules a deferred eviction
// pass at now plus EvictionInterval.
func (s *Store) Create(contentType string, payload []byte) (*domain.Session, error) {
	if len(payload) > s.maxContentLength {
		return nil, domain.ErrPayloadTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.newSessionLocked(contentType, payload)
	if err != nil {
		return nil, err
	}

	for s.order.Len() >= s.hardCapacity {
		s.removeLocked(s.order.Front(), &s.stats.Evicted)
	}

	if err := session.Touch(s.clock.Now(), s.ttl); err != nil {
		return nil, err
	}
	s.sessions[session.ID] = s.order.PushBack(session)
	s.stats.Created++

	if s.order.Len() > s.softCapacity && !s.evictionScheduled {
		s.evictionScheduled = true
		s.clock.AfterFunc(EvictionInterval, s.evictionPass)
	}

	return session.Clone(), nil
}

// Get returns the session's current record. Reads never refresh the
// expiry or the modification order. When ifNoneMatch equals the current
// entity tag, the record is returned together with ErrNotModified: the
// match decision and the record come from the same locked lookup, so a
// conditional reader never observes a tag from a write it raced with.
func (s *Store) Get(id, ifNoneMatch string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.liveLocked(id)
	if err != nil {
		return nil, err
	}

	if ifNoneMatch != "" && session.ETagMatches(ifNoneMatch) {
		return session.Clone(), domain.ErrNotModified
	}

	return session.Clone(), nil
}

// Update replaces the session content under optimistic concurrency.
// ifMatch is mandatory; a stale tag means the other side wrote first.
// A successful update refreshes the expiry and moves the session to the
// back of the modification order.
func (s *Store) Update(id, ifMatch, contentType string, payload []byte) (*domain.Session, error) {
	if ifMatch == "" {
		return nil, domain.ErrPreconditionRequired
	}
	if len(payload) > s.maxContentLength {
		return nil, domain.ErrPayloadTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.liveLocked(id)
	if err != nil {
		return nil, err
	}

	if !session.ETagMatches(ifMatch) {
		return nil, domain.ErrConcurrentWrite
	}

	// Touch is the only fallible step; it goes first so a failure leaves
	// the record exactly as it was.
	if err := session.Touch(s.clock.Now(), s.ttl); err != nil {
		return nil, err
	}
	session.Replace(contentType, payload)
	s.order.MoveToBack(s.sessions[id])

	return session.Clone(), nil
}

// Delete removes the session. ErrSessionNotFound reports that no live
// session existed; callers may still treat the operation as idempotent.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.liveLocked(id); err != nil {
		return err
	}

	s.removeLocked(s.sessions[id], &s.stats.Deleted)
	return nil
}

// Len returns the number of sessions currently held, including expired
// ones not yet observed by a lookup or swept by an eviction pass.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	stats.Active = s.order.Len()
	return stats
}

// newSessionLocked allocates a session with an id not currently in use.
func (s *Store) newSessionLocked(contentType string, payload []byte) (*domain.Session, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		session, err := domain.NewSession(contentType, payload)
		if err != nil {
			return nil, err
		}
		if _, exists := s.sessions[session.ID]; !exists {
			return session, nil
		}
	}
	return nil, domain.ErrSessionConflict
}

// liveLocked resolves id to a live session. Expiry is observed lazily:
// an expired row found here is dropped on the spot and reported as not
// found, indistinguishable from a session that never existed.
func (s *Store) liveLocked(id string) (*domain.Session, error) {
	elem, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	session := elem.Value.(*domain.Session)
	if session.IsExpired(s.clock.Now()) {
		s.removeLocked(elem, &s.stats.Expired)
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// evictionPass is the deferred soft-capacity pass: drop everything past
// its TTL, then evict oldest-first down to the soft capacity. The pass
// is idempotent; invoked under the limit it is a TTL sweep and a no-op.
func (s *Store) evictionPass() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	// The list is ordered by last modification and the TTL is constant,
	// so the first unexpired session ends the sweep.
	for elem := s.order.Front(); elem != nil; elem = s.order.Front() {
		if !elem.Value.(*domain.Session).IsExpired(now) {
			break
		}
		s.removeLocked(elem, &s.stats.Expired)
	}

	for s.order.Len() > s.softCapacity {
		s.removeLocked(s.order.Front(), &s.stats.Evicted)
	}

	s.evictionScheduled = false
}

// removeLocked unlinks a session from both indexes and bumps the given
// counter.
func (s *Store) removeLocked(elem *list.Element, counter *uint64) {
	session := s.order.Remove(elem).(*domain.Session)
	delete(s.sessions, session.ID)
	*counter++
}
