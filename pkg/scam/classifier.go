package scam

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/text/unicode/norm"
)

const (
	// saturationCeiling is the summed weight at which confidence clips to
	// 1.0. Three strong signals land around 0.94, four saturate.
	saturationCeiling = 3.2

	// tieEpsilon is the score margin inside which two categories count as
	// tied; ties go to the category whose signal appears earliest.
	tieEpsilon = 0.25

	// maxIndicators caps the fired-signal list carried on a verdict.
	maxIndicators = 10

	// maxUrgencyLevel caps the reported urgency level.
	maxUrgencyLevel = 5
)

// Verdict is the classification result for one text. Always produced:
// signal-free text yields CategoryUnknown with zero confidence, never an
// absence of verdict.
type Verdict struct {
	Category     Category `json:"category"`
	Confidence   float64  `json:"confidence"`
	Urgent       bool     `json:"urgent"`
	UrgencyLevel int      `json:"urgencyLevel"`
	Indicators   []string `json:"indicators,omitempty"`
}

// UnknownVerdict is the default verdict for empty or signal-free input.
func UnknownVerdict() Verdict {
	return Verdict{Category: CategoryUnknown}
}

// Classifier scores text against per-category weighted signal tables.
// Zero shared mutable state after construction; Classify is safe for
// concurrent use.
type Classifier struct {
	categories map[Category][]signal
	urgency    []signal
}

// NewClassifier builds a classifier from the builtin signal tables.
func NewClassifier() *Classifier {
	c := &Classifier{
		categories: make(map[Category][]signal, len(builtinSignals)),
		urgency:    append([]signal(nil), builtinUrgency...),
	}
	for cat, sigs := range builtinSignals {
		c.categories[cat] = append([]signal(nil), sigs...)
	}
	return c
}

var (
	defaultClassifier *Classifier
	defaultOnce       sync.Once
)

// Default returns the shared classifier built from builtin tables only.
func Default() *Classifier {
	defaultOnce.Do(func() {
		defaultClassifier = NewClassifier()
	})
	return defaultClassifier
}

// Classify is Default().Classify.
func Classify(text string) Verdict {
	return Default().Classify(text)
}

// addSignal registers an extra signal for a category. Used by the YAML
// override loader; panics on bad regexes are confined to that path.
func (c *Classifier) addSignal(cat Category, s signal) error {
	if !ValidCategory(cat) {
		return fmt.Errorf("unknown scam category %q", cat)
	}
	c.categories[cat] = append(c.categories[cat], s)
	return nil
}

type categoryScore struct {
	category Category
	score    float64
	leftmost int // byte offset of the earliest fired signal, or -1
}

// Classify scores the text against every category table and returns the
// winning category with a clipped confidence, plus the independent
// urgency assessment. Deterministic for any given input.
func (c *Classifier) Classify(text string) Verdict {
	input := normalizeInput(text)
	if input == "" {
		return UnknownVerdict()
	}

	var indicators []string
	scores := make([]categoryScore, 0, len(categoryOrder))

	for _, cat := range categoryOrder {
		cs := categoryScore{category: cat, leftmost: -1}
		for _, sig := range c.categories[cat] {
			loc := sig.re.FindStringIndex(input)
			if loc == nil {
				continue
			}
			cs.score += sig.weight
			if cs.leftmost < 0 || loc[0] < cs.leftmost {
				cs.leftmost = loc[0]
			}
			if len(indicators) < maxIndicators {
				indicators = append(indicators, fmt.Sprintf("%s: %q", cat, sig.label))
			}
		}
		scores = append(scores, cs)
	}

	urgencyCount := 0
	for _, sig := range c.urgency {
		if sig.re.MatchString(input) {
			urgencyCount++
			if len(indicators) < maxIndicators {
				indicators = append(indicators, fmt.Sprintf("urgency: %q", sig.label))
			}
		}
	}

	best := scores[0]
	for _, cs := range scores[1:] {
		if cs.score > best.score+tieEpsilon {
			best = cs
			continue
		}
		// Near-tie: earliest-appearing signal wins. Category order breaks
		// exact leftmost ties, keeping the result deterministic.
		if cs.score > best.score-tieEpsilon && cs.leftmost >= 0 &&
			(best.leftmost < 0 || cs.leftmost < best.leftmost) && cs.score > 0 {
			best = cs
		}
	}

	v := Verdict{
		Category:     CategoryUnknown,
		Urgent:       urgencyCount > 0,
		UrgencyLevel: minInt(urgencyCount, maxUrgencyLevel),
		Indicators:   indicators,
	}
	if best.score > 0 {
		v.Category = best.category
		v.Confidence = math.Min(1.0, best.score/saturationCeiling)
	}
	return v
}

func normNFKC(s string) string {
	return norm.NFKC.String(s)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
