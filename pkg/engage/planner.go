package engage

import (
	"hash/fnv"

	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
)

// Plan is the outcome of reply selection for one turn: the persona's next
// utterance plus the intelligence kinds still missing after this turn's
// extraction. Plans are transient; nothing here is persisted.
type Plan struct {
	Reply        string       `json:"reply"`
	MissingKinds []intel.Kind `json:"missingKinds"`
	Probed       intel.Kind   `json:"probed,omitempty"`
}

// Planner selects replies from a Script. Stateless: turn index, category
// and cumulative intelligence are passed in fresh every call.
type Planner struct {
	script *Script
}

// NewPlanner builds a planner over the builtin persona script.
func NewPlanner() *Planner {
	return &Planner{script: builtinScript()}
}

// NewPlannerWithScript builds a planner over a customized script, e.g.
// one loaded with YAML overrides.
func NewPlannerWithScript(s *Script) *Planner {
	return &Planner{script: s}
}

// Next picks the reply for the given turn index (0-based: turn 0 is the
// session's first inbound message). Selection precedence:
//
//  1. Turn 0: the category's fixed opener, regardless of what the first
//     message contained.
//  2. Probing window: if a kind is still wholly missing and this turn is
//     inside its probe window, append a solicitation for the highest-
//     priority missing kind to the scripted line.
//  3. Otherwise the category arc entry for this turn; past the end of
//     the arc, the final entry repeats indefinitely.
//  4. Unknown category falls back to the generic stalling arc.
func (p *Planner) Next(turn int, cat scam.Category, bundle intel.Bundle, sessionID string) Plan {
	if turn < 0 {
		turn = 0
	}
	missing := bundle.Missing()

	base := p.baseReply(turn, cat, sessionID)
	if turn == 0 {
		return Plan{Reply: base, MissingKinds: missing}
	}

	idx := turnIndex(turn)
	plan := Plan{Reply: base, MissingKinds: missing}
	if idx < scriptTurns-1 {
		if kind, ok := p.probeFor(turn, missing); ok {
			plan.Reply = base + " " + p.script.probeWording(cat, kind)
			plan.Probed = kind
		}
	}
	return plan
}

// Fallback returns the deterministic reply for unusable input.
func (p *Planner) Fallback() string {
	return p.script.Fallback
}

func (p *Planner) baseReply(turn int, cat scam.Category, sessionID string) string {
	idx := turnIndex(turn)
	if arc, ok := p.script.Arcs[cat]; ok && len(arc) == scriptTurns {
		return arc[idx]
	}
	variants := p.script.Generic[idx]
	return variants[sessionVariant(sessionID, len(variants))]
}

// probeFor returns the highest-priority missing kind whose probe window
// has opened.
func (p *Planner) probeFor(turn int, missing []intel.Kind) (intel.Kind, bool) {
	for _, k := range missing {
		if turn >= probeMinTurn[k] {
			return k, true
		}
	}
	return "", false
}

func turnIndex(turn int) int {
	if turn >= scriptTurns {
		return scriptTurns - 1
	}
	return turn
}

// sessionVariant derives a stable variant index from the session id, so a
// session keeps one consistent voice while different sessions vary.
func sessionVariant(sessionID string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(n))
}
