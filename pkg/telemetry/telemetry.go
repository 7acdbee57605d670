// Package telemetry keeps in-process counters of honeypot activity for
// the health endpoint. No events leave the process.
package telemetry

import "sync"

// Recorder tallies processed turns. Safe for concurrent use. A nil
// Recorder is valid and records nothing.
type Recorder struct {
	mu         sync.Mutex
	turns      int64
	fallbacks  int64
	urgent     int64
	byCategory map[string]int64
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{byCategory: make(map[string]int64)}
}

// RecordTurn counts one processed inbound message.
func (r *Recorder) RecordTurn(category string, urgent bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns++
	r.byCategory[category]++
	if urgent {
		r.urgent++
	}
}

// RecordFallback counts a malformed-input turn answered with the
// fallback reply.
func (r *Recorder) RecordFallback() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks++
}

// Stats is a point-in-time copy of the counters.
type Stats struct {
	Turns      int64            `json:"turns"`
	Fallbacks  int64            `json:"fallbacks"`
	Urgent     int64            `json:"urgent"`
	ByCategory map[string]int64 `json:"byCategory"`
}

// Snapshot returns a copy of the current counters.
func (r *Recorder) Snapshot() Stats {
	if r == nil {
		return Stats{ByCategory: map[string]int64{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	by := make(map[string]int64, len(r.byCategory))
	for k, v := range r.byCategory {
		by[k] = v
	}
	return Stats{Turns: r.turns, Fallbacks: r.fallbacks, Urgent: r.urgent, ByCategory: by}
}
