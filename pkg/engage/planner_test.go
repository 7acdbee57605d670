package engage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NightjarHQ/nightjar/pkg/intel"
	"github.com/NightjarHQ/nightjar/pkg/scam"
)

func fullBundle() intel.Bundle {
	b := intel.NewBundle()
	b.Add(intel.KindPhone, "9876543210")
	b.Add(intel.KindAccount, "123456789012")
	b.Add(intel.KindHandle, "scammer@paytm")
	b.Add(intel.KindLink, "http://kyc-update.xyz")
	b.Add(intel.KindEmail, "boss@fraud.co.in")
	return b
}

func TestNextTurnZeroOpener(t *testing.T) {
	p := NewPlanner()

	// The opener is fixed per category regardless of intelligence state.
	for _, bundle := range []intel.Bundle{intel.NewBundle(), fullBundle()} {
		plan := p.Next(0, scam.CategoryBankFraud, bundle, "s1")
		if plan.Reply != categoryArcs[scam.CategoryBankFraud][0] {
			t.Errorf("turn 0 reply = %q, want the bank_fraud opener", plan.Reply)
		}
		if plan.Probed != "" {
			t.Errorf("turn 0 must not probe, probed %s", plan.Probed)
		}
	}
}

func TestNextProbesMissingKindsInPriorityOrder(t *testing.T) {
	p := NewPlanner()

	// Nothing extracted yet: phones are the highest-priority probe.
	plan := p.Next(2, scam.CategoryBankFraud, intel.NewBundle(), "s1")
	if plan.Probed != intel.KindPhone {
		t.Errorf("probed = %s, want %s", plan.Probed, intel.KindPhone)
	}
	if !strings.Contains(plan.Reply, probeWordings[scam.CategoryBankFraud][intel.KindPhone]) {
		t.Errorf("reply %q does not solicit a phone number", plan.Reply)
	}

	// With a phone captured, the next probe is the payment handle once
	// its window opens.
	b := intel.NewBundle()
	b.Add(intel.KindPhone, "9876543210")
	plan = p.Next(3, scam.CategoryUPIFraud, b, "s1")
	if plan.Probed != intel.KindHandle {
		t.Errorf("probed = %s, want %s", plan.Probed, intel.KindHandle)
	}
}

func TestNextProbeWindowNotYetOpen(t *testing.T) {
	p := NewPlanner()

	// Turn 1 is before any probe window; the reply is the plain arc line.
	plan := p.Next(1, scam.CategoryBankFraud, intel.NewBundle(), "s1")
	if plan.Probed != "" {
		t.Errorf("turn 1 should not probe, probed %s", plan.Probed)
	}
	if plan.Reply != categoryArcs[scam.CategoryBankFraud][1] {
		t.Errorf("reply = %q, want arc entry 1", plan.Reply)
	}
	if len(plan.MissingKinds) != len(intel.ProbePriority) {
		t.Errorf("missing kinds = %v, want all five", plan.MissingKinds)
	}
}

func TestNextCompleteIntelligenceUsesPlainScript(t *testing.T) {
	p := NewPlanner()
	plan := p.Next(5, scam.CategoryLottery, fullBundle(), "s1")
	if plan.Probed != "" {
		t.Errorf("nothing missing, but probed %s", plan.Probed)
	}
	if plan.Reply != categoryArcs[scam.CategoryLottery][5] {
		t.Errorf("reply = %q, want lottery arc entry 5", plan.Reply)
	}
	if len(plan.MissingKinds) != 0 {
		t.Errorf("missing kinds = %v, want none", plan.MissingKinds)
	}
}

func TestNextPlateauBeyondScript(t *testing.T) {
	p := NewPlanner()
	b := intel.NewBundle()

	final := p.Next(9, scam.CategoryBankFraud, b, "s1")
	for _, turn := range []int{10, 25, 100} {
		plan := p.Next(turn, scam.CategoryBankFraud, b, "s1")
		if plan.Reply != final.Reply {
			t.Errorf("turn %d reply = %q, want the turn-9 plateau reply", turn, plan.Reply)
		}
	}
}

func TestNextUnknownCategoryUsesGenericArc(t *testing.T) {
	p := NewPlanner()
	plan := p.Next(1, scam.CategoryUnknown, fullBundle(), "session-a")

	found := false
	for _, variant := range genericArc[1] {
		if plan.Reply == variant {
			found = true
		}
	}
	if !found {
		t.Errorf("reply %q is not a generic turn-1 variant", plan.Reply)
	}

	// Variant choice is stable per session.
	again := p.Next(1, scam.CategoryUnknown, fullBundle(), "session-a")
	if again.Reply != plan.Reply {
		t.Error("same session should keep the same generic variant")
	}
}

func TestNextUnknownCategoryProbesWithDefaultWording(t *testing.T) {
	p := NewPlanner()
	plan := p.Next(2, scam.CategoryUnknown, intel.NewBundle(), "s1")
	if plan.Probed != intel.KindPhone {
		t.Fatalf("probed = %s, want %s", plan.Probed, intel.KindPhone)
	}
	if !strings.Contains(plan.Reply, probeWordings[scam.CategoryBankFraud][intel.KindPhone]) {
		t.Errorf("unknown category should borrow bank_fraud probe wording, got %q", plan.Reply)
	}
}

func TestArcsComplete(t *testing.T) {
	for cat, arc := range categoryArcs {
		if len(arc) != scriptTurns {
			t.Errorf("arc for %s has %d entries, want %d", cat, len(arc), scriptTurns)
		}
	}
	for i, variants := range genericArc {
		if len(variants) == 0 {
			t.Errorf("generic turn %d has no variants", i)
		}
	}
	for cat, probes := range probeWordings {
		for _, k := range intel.Kinds() {
			if probes[k] == "" {
				t.Errorf("category %s has no probe wording for %s", cat, k)
			}
		}
	}
}

func TestLoadScriptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.yaml")
	content := `
probes:
  upi_fraud:
    payment_handle: "Which UPI ID exactly, beta? Spell it for me."
fallback: "Hello? The line is very bad, say again?"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	script, err := LoadScriptFile(path)
	if err != nil {
		t.Fatalf("LoadScriptFile: %v", err)
	}
	p := NewPlannerWithScript(script)

	if p.Fallback() != "Hello? The line is very bad, say again?" {
		t.Errorf("fallback = %q, want override", p.Fallback())
	}

	b := intel.NewBundle()
	b.Add(intel.KindPhone, "9876543210")
	plan := p.Next(3, scam.CategoryUPIFraud, b, "s1")
	if !strings.Contains(plan.Reply, "Spell it for me") {
		t.Errorf("reply %q should use overridden probe wording", plan.Reply)
	}

	// Builtin arcs survive a partial override.
	if plan0 := p.Next(0, scam.CategoryUPIFraud, b, "s1"); plan0.Reply != categoryArcs[scam.CategoryUPIFraud][0] {
		t.Errorf("opener = %q, want builtin upi_fraud opener", plan0.Reply)
	}
}

func TestLoadScriptFileRejectsShortArc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.yaml")
	content := `
arcs:
  lottery_scam: ["only", "three", "entries"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScriptFile(path); err == nil {
		t.Error("expected error for arc with wrong length")
	}
}
