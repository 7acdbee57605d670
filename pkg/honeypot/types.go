package honeypot

import (
	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
)

// SenderScammer marks conversation messages authored by the counterpart.
// Only these feed extraction and classification; the persona's own
// replies must not pollute the intelligence pool.
const SenderScammer = "scammer"

// Message is one conversation message as supplied by the transport layer.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Metadata is optional channel information. Accepted but not required to
// influence behavior.
type Metadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// Request is one inbound message event plus its conversation history.
type Request struct {
	SessionID           string    `json:"sessionId"`
	Message             Message   `json:"message"`
	ConversationHistory []Message `json:"conversationHistory"`
	Metadata            *Metadata `json:"metadata,omitempty"`
}

// EngagementMetrics summarize how long the scammer has been kept busy.
type EngagementMetrics struct {
	TotalMessagesExchanged    int     `json:"totalMessagesExchanged"`
	EngagementDurationSeconds float64 `json:"engagementDurationSeconds"`
}

// Response is the full result for one processed message: the persona's
// reply plus every analysis field for downstream reporting.
type Response struct {
	Status                 string            `json:"status"`
	Reply                  string            `json:"reply"`
	SessionID              string            `json:"sessionId"`
	ScamDetected           bool              `json:"scamDetected"`
	ScamType               scam.Category     `json:"scamType"`
	Confidence             float64           `json:"confidence"`
	TotalMessagesExchanged int               `json:"totalMessagesExchanged"`
	ExtractedIntelligence  intel.Bundle      `json:"extractedIntelligence"`
	EngagementMetrics      EngagementMetrics `json:"engagementMetrics"`
	AgentNotes             string            `json:"agentNotes"`
	MissingKinds           []intel.Kind      `json:"missingKinds,omitempty"`
}
