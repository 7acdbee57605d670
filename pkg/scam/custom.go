package scam

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// SignalFile is the on-disk format for operator-supplied signal overrides.
// Phrases become case-insensitive word-boundary matches; entries with a
// pattern are compiled verbatim.
//
//	categories:
//	  bank_fraud:
//	    - phrase: insurance premium
//	      weight: 0.8
//	    - pattern: '(?i)\bA/?C\s+freeze\b'
//	      label: ac freeze
//	      weight: 1.0
//	urgency:
//	  - phrase: turant
type SignalFile struct {
	Categories map[Category][]SignalDef `yaml:"categories"`
	Urgency    []SignalDef              `yaml:"urgency"`
}

// SignalDef is one signal entry in a SignalFile.
type SignalDef struct {
	Phrase  string  `yaml:"phrase"`
	Pattern string  `yaml:"pattern"`
	Label   string  `yaml:"label"`
	Weight  float64 `yaml:"weight"`
}

func (d SignalDef) compile() (signal, error) {
	weight := d.Weight
	if weight <= 0 {
		weight = 1.0
	}
	switch {
	case d.Phrase != "":
		s := phrase(d.Phrase, weight)
		if d.Label != "" {
			s.label = d.Label
		}
		return s, nil
	case d.Pattern != "":
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return signal{}, fmt.Errorf("compile pattern %q: %w", d.Pattern, err)
		}
		label := d.Label
		if label == "" {
			label = d.Pattern
		}
		return signal{label: label, weight: weight, re: re}, nil
	default:
		return signal{}, fmt.Errorf("signal entry needs a phrase or a pattern")
	}
}

// LoadSignalsFile merges extra signals from a YAML file into the
// classifier. Call before the classifier is shared across goroutines.
func (c *Classifier) LoadSignalsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read signals file: %w", err)
	}
	var file SignalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse signals file %s: %w", path, err)
	}

	for cat, defs := range file.Categories {
		for _, def := range defs {
			s, err := def.compile()
			if err != nil {
				return fmt.Errorf("signals file %s, category %s: %w", path, cat, err)
			}
			if err := c.addSignal(cat, s); err != nil {
				return fmt.Errorf("signals file %s: %w", path, err)
			}
		}
	}
	for _, def := range file.Urgency {
		s, err := def.compile()
		if err != nil {
			return fmt.Errorf("signals file %s, urgency: %w", path, err)
		}
		c.urgency = append(c.urgency, s)
	}
	return nil
}
