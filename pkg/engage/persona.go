package engage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
)

// Script is the full persona definition the planner selects from.
type Script struct {
	Arcs     map[scam.Category][]string
	Generic  [scriptTurns][]string
	Probes   map[scam.Category]map[intel.Kind]string
	Fallback string
}

// builtinScript assembles the compiled-in persona. Copies the maps so a
// YAML override never mutates package data.
func builtinScript() *Script {
	s := &Script{
		Arcs:     make(map[scam.Category][]string, len(categoryArcs)),
		Generic:  genericArc,
		Probes:   make(map[scam.Category]map[intel.Kind]string, len(probeWordings)),
		Fallback: FallbackReply,
	}
	for cat, arc := range categoryArcs {
		s.Arcs[cat] = append([]string(nil), arc...)
	}
	for cat, probes := range probeWordings {
		m := make(map[intel.Kind]string, len(probes))
		for k, v := range probes {
			m[k] = v
		}
		s.Probes[cat] = m
	}
	return s
}

func (s *Script) probeWording(cat scam.Category, kind intel.Kind) string {
	if probes, ok := s.Probes[cat]; ok {
		if w, ok := probes[kind]; ok {
			return w
		}
	}
	// Unclassified sessions borrow the bank_fraud vocabulary.
	return s.Probes[scam.CategoryBankFraud][kind]
}

// ScriptFile is the on-disk persona override format. Any arc supplied
// must have exactly ten entries; probes and the fallback merge entry by
// entry over the builtin script.
//
//	arcs:
//	  lottery_scam: ["...", ...ten entries...]
//	probes:
//	  upi_fraud:
//	    payment_handle: "Which UPI ID should I send to, beta?"
//	fallback: "Hello? The line is very bad..."
type ScriptFile struct {
	Arcs     map[scam.Category][]string                `yaml:"arcs"`
	Probes   map[scam.Category]map[intel.Kind]string   `yaml:"probes"`
	Generic  [][]string                                `yaml:"generic"`
	Fallback string                                    `yaml:"fallback"`
}

// LoadScriptFile reads persona overrides from a YAML file and merges them
// over the builtin script.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	var file ScriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse persona file %s: %w", path, err)
	}

	s := builtinScript()
	for cat, arc := range file.Arcs {
		if !scam.ValidCategory(cat) {
			return nil, fmt.Errorf("persona file %s: unknown category %q", path, cat)
		}
		if len(arc) != scriptTurns {
			return nil, fmt.Errorf("persona file %s: arc for %s has %d entries, want %d",
				path, cat, len(arc), scriptTurns)
		}
		s.Arcs[cat] = append([]string(nil), arc...)
	}
	for cat, probes := range file.Probes {
		if !scam.ValidCategory(cat) {
			return nil, fmt.Errorf("persona file %s: unknown category %q", path, cat)
		}
		if s.Probes[cat] == nil {
			s.Probes[cat] = make(map[intel.Kind]string, len(probes))
		}
		for kind, wording := range probes {
			if !validKind(kind) {
				return nil, fmt.Errorf("persona file %s: unknown intelligence kind %q", path, kind)
			}
			s.Probes[cat][kind] = wording
		}
	}
	if len(file.Generic) > 0 {
		if len(file.Generic) != scriptTurns {
			return nil, fmt.Errorf("persona file %s: generic arc has %d turns, want %d",
				path, len(file.Generic), scriptTurns)
		}
		for i, variants := range file.Generic {
			if len(variants) == 0 {
				return nil, fmt.Errorf("persona file %s: generic turn %d has no variants", path, i)
			}
			s.Generic[i] = append([]string(nil), variants...)
		}
	}
	if file.Fallback != "" {
		s.Fallback = file.Fallback
	}
	return s, nil
}

func validKind(k intel.Kind) bool {
	for _, known := range intel.Kinds() {
		if k == known {
			return true
		}
	}
	return false
}
