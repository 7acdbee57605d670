package honeypot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/NightjarHQ/nightjar/pkg/engage"
	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := NewEngine(opts...)
	t.Cleanup(e.Close)
	return e
}

func scammerMsg(text string) Message {
	return Message{Sender: SenderScammer, Text: text}
}

func TestHandleMessageFirstTurn(t *testing.T) {
	e := newTestEngine(t)

	resp := e.HandleMessage(context.Background(), Request{
		SessionID: "s1",
		Message:   scammerMsg("Your account has been BLOCKED, send OTP to 9876543210 urgently"),
	})

	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if resp.ScamType != scam.CategoryBankFraud {
		t.Errorf("scamType = %s, want bank_fraud", resp.ScamType)
	}
	if !resp.ScamDetected {
		t.Error("scamDetected = false, want true")
	}
	if resp.Confidence <= 0 {
		t.Errorf("confidence = %.2f, want > 0", resp.Confidence)
	}
	if len(resp.ExtractedIntelligence.PhoneNumbers) != 1 {
		t.Errorf("phones = %v, want one value", resp.ExtractedIntelligence.PhoneNumbers)
	}
	if want := engage.NewPlanner().Next(0, scam.CategoryBankFraud, intel.NewBundle(), "s1").Reply; resp.Reply != want {
		t.Errorf("reply = %q, want the first-turn opener %q", resp.Reply, want)
	}
	if resp.TotalMessagesExchanged != 2 {
		t.Errorf("totalMessagesExchanged = %d, want 2", resp.TotalMessagesExchanged)
	}
}

func TestHandleMessageEmptyTextFallsBack(t *testing.T) {
	e := newTestEngine(t)

	resp := e.HandleMessage(context.Background(), Request{
		SessionID: "s1",
		Message:   scammerMsg("   "),
	})

	if resp.Reply != engage.NewPlanner().Fallback() {
		t.Errorf("reply = %q, want the fallback line", resp.Reply)
	}
	if resp.ScamType != scam.CategoryUnknown || resp.Confidence != 0 {
		t.Errorf("verdict = %s/%.2f, want unknown/0", resp.ScamType, resp.Confidence)
	}
	if resp.ExtractedIntelligence.Total() != 0 {
		t.Errorf("bundle = %+v, want empty", resp.ExtractedIntelligence)
	}
	// A degraded turn still counts as an exchange.
	if resp.TotalMessagesExchanged != 2 {
		t.Errorf("totalMessagesExchanged = %d, want 2", resp.TotalMessagesExchanged)
	}
}

func TestHandleMessageAccumulatesAcrossTurns(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	e.HandleMessage(ctx, Request{
		SessionID: "s1",
		Message:   scammerMsg("call me on 9876543210 about your blocked account"),
	})
	resp := e.HandleMessage(ctx, Request{
		SessionID: "s1",
		Message:   scammerMsg("send the fee to scammer@paytm"),
	})

	b := resp.ExtractedIntelligence
	if len(b.PhoneNumbers) != 1 || len(b.PaymentHandles) != 1 {
		t.Errorf("bundle = %+v, want phone from turn 1 and handle from turn 2", b)
	}
	if resp.TotalMessagesExchanged != 4 {
		t.Errorf("totalMessagesExchanged = %d, want 4", resp.TotalMessagesExchanged)
	}
}

func TestHandleMessageIgnoresNonScammerHistory(t *testing.T) {
	e := newTestEngine(t)

	resp := e.HandleMessage(context.Background(), Request{
		SessionID: "s1",
		Message:   scammerMsg("hello, is this the account holder?"),
		ConversationHistory: []Message{
			{Sender: "user", Text: "my number is 9123456780"},
			scammerMsg("pay to fraudster@ybl"),
		},
	})

	if len(resp.ExtractedIntelligence.PhoneNumbers) != 0 {
		t.Errorf("phones = %v, persona-side text must not feed extraction",
			resp.ExtractedIntelligence.PhoneNumbers)
	}
	if len(resp.ExtractedIntelligence.PaymentHandles) != 1 {
		t.Errorf("handles = %v, scammer history should feed extraction",
			resp.ExtractedIntelligence.PaymentHandles)
	}
}

func TestHandleMessagePlateau(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	var replies []string
	for i := 0; i < 13; i++ {
		resp := e.HandleMessage(ctx, Request{
			SessionID: "s1",
			Message:   scammerMsg(fmt.Sprintf("your account is blocked, pay now (%d)", i)),
		})
		replies = append(replies, resp.Reply)
	}

	// Turn indexes 9.. all serve the same closing line.
	for i := 10; i < len(replies); i++ {
		if replies[i] != replies[9] {
			t.Errorf("turn %d reply %q differs from plateau reply %q", i, replies[i], replies[9])
		}
	}
}

func TestHandleMessageConfidenceFloor(t *testing.T) {
	strict := newTestEngine(t, WithMinScamConfidence(0.95))
	resp := strict.HandleMessage(context.Background(), Request{
		SessionID: "s1",
		Message:   scammerMsg("please verify your account"),
	})
	if resp.ScamDetected {
		t.Errorf("one weak signal (%.2f) should stay under a 0.95 floor", resp.Confidence)
	}

	// The default floor of zero flags everything, benign text included.
	lax := newTestEngine(t)
	resp = lax.HandleMessage(context.Background(), Request{
		SessionID: "s1",
		Message:   scammerMsg("see you at dinner"),
	})
	if !resp.ScamDetected {
		t.Error("default policy flags every session")
	}
}

func TestHandleMessageConcurrentSameSession(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e.HandleMessage(ctx, Request{
				SessionID: "hot",
				Message:   scammerMsg(fmt.Sprintf("call 98765432%02d about your blocked account", i)),
			})
		}(i)
	}
	wg.Wait()

	resp := e.HandleMessage(ctx, Request{
		SessionID: "hot",
		Message:   scammerMsg("last chance, act now"),
	})
	if want := (workers + 1) * 2; resp.TotalMessagesExchanged != want {
		t.Errorf("totalMessagesExchanged = %d, want %d (no lost turns)", resp.TotalMessagesExchanged, want)
	}
	if got := len(resp.ExtractedIntelligence.PhoneNumbers); got != workers {
		t.Errorf("phones = %d, want %d", got, workers)
	}
}

func TestHandleMessageMetricsFloor(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	var resp Response
	for i := 0; i < 3; i++ {
		resp = e.HandleMessage(ctx, Request{
			SessionID: "s1",
			Message:   scammerMsg("your account is blocked"),
		})
	}

	// Local processing is near-instant; the reported duration is floored
	// at secondsPerExchange per turn.
	if want := 3 * secondsPerExchange; resp.EngagementMetrics.EngagementDurationSeconds < want {
		t.Errorf("duration = %.1f, want >= %.1f", resp.EngagementMetrics.EngagementDurationSeconds, want)
	}
}

func TestAgentNotesSummary(t *testing.T) {
	e := newTestEngine(t)

	resp := e.HandleMessage(context.Background(), Request{
		SessionID: "s1",
		Message:   scammerMsg("your account is BLOCKED, send OTP to 9876543210 and pay to scammer@paytm urgently"),
	})

	for _, want := range []string{
		"Scam Type Detected: bank_fraud",
		"Total Exchanges: 1",
		"Phone Numbers Extracted:",
		"UPI IDs Extracted: scammer@paytm",
		"Indicators:",
	} {
		if !strings.Contains(resp.AgentNotes, want) {
			t.Errorf("agentNotes %q missing %q", resp.AgentNotes, want)
		}
	}
}
