package scam

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyCategories(t *testing.T) {
	testCases := []struct {
		name       string
		text       string
		wantCat    Category
		wantUrgent bool
	}{
		{
			"bank fraud with urgency",
			"Your account has been BLOCKED, send OTP to 9876543210 urgently",
			CategoryBankFraud, true,
		},
		{
			"upi fraud",
			"Open PhonePe and approve the collect request to get your cashback",
			CategoryUPIFraud, false,
		},
		{
			"phishing",
			"Click https://amaz0n-deals.xyz to claim your free voucher, limited time",
			CategoryPhishing, false,
		},
		{
			"investment",
			"Guaranteed returns, double your money with our crypto trading scheme",
			CategoryInvestment, false,
		},
		{
			"lottery",
			"Congratulations! You won the KBC lucky draw jackpot of 25 lakh",
			CategoryLottery, false,
		},
		{
			"benign text",
			"see you at dinner tomorrow",
			CategoryUnknown, false,
		},
		{
			"empty text",
			"",
			CategoryUnknown, false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Classify(tc.text)
			if v.Category != tc.wantCat {
				t.Errorf("category = %s, want %s (indicators: %v)", v.Category, tc.wantCat, v.Indicators)
			}
			if v.Urgent != tc.wantUrgent {
				t.Errorf("urgent = %v, want %v", v.Urgent, tc.wantUrgent)
			}
		})
	}
}

func TestClassifyConfidence(t *testing.T) {
	weak := Classify("please verify your account")
	strong := Classify("your account is blocked, unauthorized transaction detected, share the OTP to verify your KYC")

	if weak.Category != CategoryBankFraud || strong.Category != CategoryBankFraud {
		t.Fatalf("categories = %s / %s, want bank_fraud for both", weak.Category, strong.Category)
	}
	if weak.Confidence >= strong.Confidence {
		t.Errorf("weak confidence %.2f should be below strong %.2f", weak.Confidence, strong.Confidence)
	}
	if strong.Confidence < 0.9 {
		t.Errorf("several strong signals should near-saturate, got %.2f", strong.Confidence)
	}
	if strong.Confidence > 1.0 {
		t.Errorf("confidence %.2f exceeds 1.0", strong.Confidence)
	}
}

func TestClassifyUnknownHasZeroConfidence(t *testing.T) {
	v := Classify("nothing suspicious in this line")
	if v.Category != CategoryUnknown || v.Confidence != 0 {
		t.Errorf("got %s/%.2f, want unknown/0", v.Category, v.Confidence)
	}
}

// Urgency is computed independently of the category score.
func TestClassifyUrgencyWithoutCategory(t *testing.T) {
	v := Classify("do it immediately, this is urgent, final warning")
	if v.Category != CategoryUnknown {
		t.Errorf("category = %s, want unknown", v.Category)
	}
	if !v.Urgent {
		t.Error("urgent = false, want true")
	}
	if v.UrgencyLevel < 3 {
		t.Errorf("urgency level = %d, want >= 3", v.UrgencyLevel)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "your upi cashback is blocked, click http://x.example to verify your account urgently"
	first := Classify(text)
	for i := 0; i < 5; i++ {
		again := Classify(text)
		if again.Category != first.Category || again.Confidence != first.Confidence ||
			again.Urgent != first.Urgent {
			t.Fatalf("run %d differed: %+v vs %+v", i, again, first)
		}
	}
}

// Near-ties go to the category whose signal appears earliest in the text.
func TestClassifyTieBreakLeftmost(t *testing.T) {
	bankFirst := Classify("otp chahiye and also upi")
	if bankFirst.Category != CategoryBankFraud {
		t.Errorf("category = %s, want bank_fraud (otp appears first)", bankFirst.Category)
	}
	upiFirst := Classify("upi chahiye and also otp")
	if upiFirst.Category != CategoryUPIFraud {
		t.Errorf("category = %s, want upi_fraud (upi appears first)", upiFirst.Category)
	}
}

func TestLoadSignalsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signals.yaml")
	content := `
categories:
  bank_fraud:
    - phrase: insurance premium overdue
      weight: 2.0
urgency:
  - phrase: turant
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewClassifier()
	if err := c.LoadSignalsFile(path); err != nil {
		t.Fatalf("LoadSignalsFile: %v", err)
	}

	v := c.Classify("your insurance premium overdue, pay turant")
	if v.Category != CategoryBankFraud {
		t.Errorf("category = %s, want bank_fraud from custom signal", v.Category)
	}
	if !v.Urgent {
		t.Error("custom urgency phrase should fire")
	}
}

func TestLoadSignalsFileRejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signals.yaml")
	content := `
categories:
  romance_scam:
    - phrase: my dearest
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewClassifier().LoadSignalsFile(path); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestSignalTableSize(t *testing.T) {
	total := 0
	for _, cat := range categoryOrder {
		n := len(builtinSignals[cat])
		if n < 15 {
			t.Errorf("category %s has %d signals, want at least 15", cat, n)
		}
		total += n
	}
	if total < 80 {
		t.Errorf("total signals = %d, want at least 80", total)
	}
	if len(builtinUrgency) < 10 {
		t.Errorf("urgency signals = %d, want at least 10", len(builtinUrgency))
	}
}
