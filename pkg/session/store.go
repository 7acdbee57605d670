// Package session owns per-conversation state: turn counters, cumulative
// intelligence and the latest verdict, keyed by caller-supplied session id.
//
// Thread-safe in-memory storage with TTL-based cleanup. Mutation of a
// single session is serialized behind a per-entry lock; different
// sessions proceed fully in parallel.
package session

import (
	"sync"
	"time"

	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
)

// Record is the accumulated state of one honeypot conversation. Turn
// counts inbound messages processed; the bundle only ever grows.
type Record struct {
	SessionID    string
	CreatedAt    time.Time
	LastSeenAt   time.Time
	Turn         int
	Intelligence intel.Bundle
	Verdict      scam.Verdict
}

// Duration is the engagement span so far in wall-clock terms.
func (r Record) Duration() time.Duration {
	return r.LastSeenAt.Sub(r.CreatedAt)
}

type entry struct {
	mu  sync.Mutex
	rec Record
}

// Store is an in-memory session store. Suitable for single-node
// deployments; all state is memory-resident by design.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	ttl          time.Duration // 0 disables expiry
	cleanupEvery time.Duration

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long an idle session survives before cleanup reclaims
// it. Zero disables expiry entirely.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithCleanupInterval sets how often the cleanup routine runs.
func WithCleanupInterval(d time.Duration) Option {
	return func(s *Store) { s.cleanupEvery = d }
}

// NewStore creates a session store. A background cleanup goroutine runs
// unless TTL is zero; stop it with Close.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions:     make(map[string]*entry),
		ttl:          24 * time.Hour,
		cleanupEvery: 5 * time.Minute,
		stopCleanup:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl > 0 {
		go s.cleanupLoop()
	}
	return s
}

// GetOrCreate returns the current record for the session, creating a
// fresh one (turn 0, empty bundle, unknown verdict) on first access.
func (s *Store) GetOrCreate(sessionID string) Record {
	e := s.entryFor(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.rec)
}

// Get returns the record for a session if it exists and is not expired.
func (s *Store) Get(sessionID string) (Record, bool) {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return Record{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.expired(e.rec) {
		return Record{}, false
	}
	return snapshot(e.rec), true
}

// Update applies one inbound message's results atomically: increments the
// turn counter, merges the extracted bundle into the cumulative one,
// overwrites the verdict and bumps the last-seen timestamp. An unknown
// session id is an implicit create, never an error. Concurrent updates
// for the same session serialize; no increments are lost.
func (s *Store) Update(sessionID string, bundle intel.Bundle, verdict scam.Verdict) Record {
	e := s.entryFor(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rec.Turn++
	e.rec.Intelligence.Merge(bundle)
	e.rec.Verdict = verdict
	e.rec.LastSeenAt = time.Now()
	return snapshot(e.rec)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background cleanup goroutine. Safe to call more than
// once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
}

// entryFor returns the live entry for a session id, creating it if
// needed. A stale entry is reset in place rather than resurrected.
func (s *Store) entryFor(sessionID string) *entry {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sessions[sessionID]; ok {
		return e
	}
	now := time.Now()
	e = &entry{rec: Record{
		SessionID:    sessionID,
		CreatedAt:    now,
		LastSeenAt:   now,
		Intelligence: intel.NewBundle(),
		Verdict:      scam.UnknownVerdict(),
	}}
	s.sessions[sessionID] = e
	return e
}

func (s *Store) expired(rec Record) bool {
	return s.ttl > 0 && time.Since(rec.LastSeenAt) > s.ttl
}

func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Store) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		e.mu.Lock()
		stale := s.expired(e.rec)
		e.mu.Unlock()
		if stale {
			delete(s.sessions, id)
		}
	}
}

// snapshot deep-copies a record so callers never alias store-owned
// bundle slices.
func snapshot(rec Record) Record {
	out := rec
	out.Intelligence = intel.NewBundle()
	out.Intelligence.Merge(rec.Intelligence)
	return out
}
