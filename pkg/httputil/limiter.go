// Package httputil provides small HTTP-side utilities for the gateway.
package httputil

import "sync/atomic"

// DefaultLimit is used when a limiter is built with a non-positive
// capacity.
const DefaultLimit = 256

// Limiter bounds how many honeypot turns the gateway processes at once.
// Turns over capacity are shed, never queued: a honeypot reply that
// arrives a minute late has lost the scammer anyway, so there is no
// blocking acquire path.
type Limiter struct {
	limit int64
	inUse atomic.Int64
	shed  atomic.Int64
}

// NewLimiter creates a limiter admitting up to capacity concurrent turns.
func NewLimiter(capacity int) *Limiter {
	if capacity <= 0 {
		capacity = DefaultLimit
	}
	return &Limiter{limit: int64(capacity)}
}

// TryAcquire admits a turn without blocking. Returns false when at
// capacity; the caller should answer 503.
func (l *Limiter) TryAcquire() bool {
	if l.inUse.Add(1) > l.limit {
		l.inUse.Add(-1)
		l.shed.Add(1)
		return false
	}
	return true
}

// Release frees a slot after a successful TryAcquire. An unpaired
// release is clamped so the in-use count never goes negative.
func (l *Limiter) Release() {
	if l.inUse.Add(-1) < 0 {
		l.inUse.Add(1)
	}
}

// Stats reports limiter occupancy for the health endpoint.
type Stats struct {
	Capacity int   `json:"capacity"`
	InUse    int   `json:"inUse"`
	Shed     int64 `json:"shed"`
}

// Stats returns current occupancy.
func (l *Limiter) Stats() Stats {
	return Stats{
		Capacity: int(l.limit),
		InUse:    int(l.inUse.Load()),
		Shed:     l.shed.Load(),
	}
}
