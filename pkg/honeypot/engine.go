// Package honeypot orchestrates one message turn: extract intelligence,
// classify the conversation, advance the persona, persist session state
// and assemble the structured result.
package honeypot

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/NightjarHQ/nightjar/pkg/engage"
	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
	"github.com/NightjarHQ/nightjar/pkg/session"
	"github.com/NightjarHQ/nightjar/pkg/telemetry"
)

// secondsPerExchange floors the reported engagement duration: real
// conversations have network and typing delays that local processing
// time does not reflect.
const secondsPerExchange = 12.0

// Engine wires the extractor, classifier, planner and session store.
// Safe for concurrent use; per-session mutation serializes in the store.
type Engine struct {
	store             *session.Store
	classifier        *scam.Classifier
	planner           *engage.Planner
	recorder          *telemetry.Recorder
	log               zerolog.Logger
	minScamConfidence float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore supplies a session store. The engine takes ownership and
// closes it on Close.
func WithStore(s *session.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithClassifier supplies a classifier, e.g. one extended from a YAML
// signals file.
func WithClassifier(c *scam.Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithPlanner supplies a reply planner, e.g. one with persona overrides.
func WithPlanner(p *engage.Planner) Option {
	return func(e *Engine) { e.planner = p }
}

// WithRecorder supplies a telemetry recorder.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger supplies the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMinScamConfidence overrides the scam-flag policy floor. The
// default of 0 keeps the flag raised for every session (honeypot
// assumption).
func WithMinScamConfidence(v float64) Option {
	return func(e *Engine) { e.minScamConfidence = v }
}

// NewEngine builds an engine with default components unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		classifier: scam.NewClassifier(),
		planner:    engage.NewPlanner(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = session.NewStore()
	}
	return e
}

// Close releases the engine's session store.
func (e *Engine) Close() {
	e.store.Close()
}

// HandleMessage processes one inbound message and returns the persona's
// reply plus all findings. It never fails: malformed input degrades to a
// deterministic fallback reply with empty findings, because refusing to
// answer would end the engagement.
func (e *Engine) HandleMessage(ctx context.Context, req Request) Response {
	_ = ctx // no blocking work in-core; kept for interface symmetry

	text := strings.TrimSpace(req.Message.Text)
	history := scammerTexts(req.ConversationHistory)

	var (
		bundle  intel.Bundle
		verdict scam.Verdict
	)
	if text == "" {
		bundle = intel.NewBundle()
		verdict = scam.UnknownVerdict()
	} else {
		bundle = intel.ExtractCumulative(text, history)
		verdict = e.classifier.Classify(strings.Join(append(history, text), "\n"))
	}

	rec := e.store.Update(req.SessionID, bundle, verdict)
	turn := rec.Turn - 1 // planner turns are 0-based

	var plan engage.Plan
	if text == "" {
		plan = engage.Plan{Reply: e.planner.Fallback(), MissingKinds: rec.Intelligence.Missing()}
		e.recorder.RecordFallback()
	} else {
		plan = e.planner.Next(turn, verdict.Category, rec.Intelligence, req.SessionID)
		e.recorder.RecordTurn(string(verdict.Category), verdict.Urgent)
	}

	metrics := engagementMetrics(rec)
	e.log.Info().
		Str("session", req.SessionID).
		Int("turn", rec.Turn).
		Str("category", string(verdict.Category)).
		Float64("confidence", verdict.Confidence).
		Bool("urgent", verdict.Urgent).
		Int("intel", rec.Intelligence.Total()).
		Msg("turn processed")

	return Response{
		Status:                 "success",
		Reply:                  plan.Reply,
		SessionID:              req.SessionID,
		ScamDetected:           verdict.Confidence >= e.minScamConfidence,
		ScamType:               verdict.Category,
		Confidence:             verdict.Confidence,
		TotalMessagesExchanged: metrics.TotalMessagesExchanged,
		ExtractedIntelligence:  rec.Intelligence,
		EngagementMetrics:      metrics,
		AgentNotes:             agentNotes(rec, metrics),
		MissingKinds:           plan.MissingKinds,
	}
}

// Stats exposes telemetry counters for the health endpoint.
func (e *Engine) Stats() telemetry.Stats {
	return e.recorder.Snapshot()
}

// Sessions returns the number of live sessions.
func (e *Engine) Sessions() int {
	return e.store.Len()
}

func scammerTexts(history []Message) []string {
	texts := make([]string, 0, len(history))
	for _, m := range history {
		if m.Sender == SenderScammer && strings.TrimSpace(m.Text) != "" {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// engagementMetrics reports both sides of the exchange and floors the
// duration at secondsPerExchange per turn.
func engagementMetrics(rec session.Record) EngagementMetrics {
	duration := rec.Duration().Seconds()
	duration = math.Max(duration, float64(rec.Turn)*secondsPerExchange)
	duration = math.Max(duration, 1.0)
	return EngagementMetrics{
		TotalMessagesExchanged:    rec.Turn * 2,
		EngagementDurationSeconds: math.Round(duration*10) / 10,
	}
}

// agentNotes builds the human-review summary line.
func agentNotes(rec session.Record, metrics EngagementMetrics) string {
	parts := []string{
		fmt.Sprintf("Scam Type Detected: %s (confidence: %.2f)", rec.Verdict.Category, rec.Verdict.Confidence),
		fmt.Sprintf("Total Exchanges: %d", rec.Turn),
		fmt.Sprintf("Duration: %.0fs", metrics.EngagementDurationSeconds),
	}
	kindLabels := []struct {
		kind  intel.Kind
		label string
	}{
		{intel.KindPhone, "Phone Numbers"},
		{intel.KindAccount, "Bank Accounts"},
		{intel.KindHandle, "UPI IDs"},
		{intel.KindLink, "Phishing Links"},
		{intel.KindEmail, "Email Addresses"},
	}
	for _, kl := range kindLabels {
		if values := rec.Intelligence.Values(kl.kind); len(values) > 0 {
			parts = append(parts, fmt.Sprintf("%s Extracted: %s", kl.label, strings.Join(values, ", ")))
		}
	}
	if len(rec.Verdict.Indicators) > 0 {
		n := len(rec.Verdict.Indicators)
		if n > 5 {
			n = 5
		}
		parts = append(parts, "Indicators: "+strings.Join(rec.Verdict.Indicators[:n], ", "))
	}
	return strings.Join(parts, ". ")
}
