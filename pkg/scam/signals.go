// Package scam classifies conversation text into scam categories using
// weighted keyword signals, compiled once at package init.
package scam

import (
	"regexp"
	"strings"
)

// Category is one of the fixed scam classifications.
type Category string

const (
	CategoryBankFraud  Category = "bank_fraud"
	CategoryUPIFraud   Category = "upi_fraud"
	CategoryPhishing   Category = "phishing"
	CategoryInvestment Category = "investment_scam"
	CategoryLottery    Category = "lottery_scam"
	CategoryUnknown    Category = "unknown"
)

// categoryOrder fixes iteration order so classification is deterministic.
var categoryOrder = []Category{
	CategoryBankFraud,
	CategoryUPIFraud,
	CategoryPhishing,
	CategoryInvestment,
	CategoryLottery,
}

// ValidCategory reports whether c names a known non-unknown category.
func ValidCategory(c Category) bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// signal is a single weighted indicator. Phrase signals compile to
// case-insensitive word-boundary regexes; raw signals are used verbatim
// for things word boundaries cannot express (URL schemes).
type signal struct {
	label  string
	weight float64
	re     *regexp.Regexp
}

func phrase(p string, weight float64) signal {
	return signal{
		label:  p,
		weight: weight,
		re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`),
	}
}

func raw(label, pattern string, weight float64) signal {
	return signal{label: label, weight: weight, re: regexp.MustCompile(pattern)}
}

func phrases(weight float64, ps ...string) []signal {
	out := make([]signal, 0, len(ps))
	for _, p := range ps {
		out = append(out, phrase(p, weight))
	}
	return out
}

// builtinSignals maps each category to its weighted signal set.
// Strong signals carry 1.0, circumstantial ones less; investment and
// lottery keywords are slightly discounted because they collide more
// often with benign text.
var builtinSignals = map[Category][]signal{
	CategoryBankFraud: concat(
		phrases(1.0,
			"blocked", "compromised", "otp", "unauthorized", "suspended",
			"frozen", "kyc", "cvv", "netbanking", "deactivated",
			"security alert", "fraud department",
		),
		phrases(0.8, "debit", "atm", "pin", "card number", "locked"),
		phrases(0.6,
			"account", "bank", "credit", "transaction", "verify",
			"password", "sbi", "hdfc", "icici", "rbi", "reserve bank",
		),
	),
	CategoryUPIFraud: concat(
		phrases(1.0,
			"upi", "gpay", "phonepe", "paytm", "google pay", "bhim",
			"cashback", "collect request", "upi id", "upi pin", "vpa",
			"qr code",
		),
		phrases(0.8, "refund", "send money", "receive money", "wallet"),
		phrases(0.5, "payment", "transfer", "recharge"),
	),
	CategoryPhishing: concat(
		[]signal{raw("http link", `(?i)https?://`, 1.0)},
		phrases(1.0,
			"click", "limited time", "login", "update your", "verify your",
			"confirm your",
		),
		phrases(0.8, "link", "voucher", "coupon", "congratulations", "selected"),
		phrases(0.6,
			"offer", "deal", "discount", "gift", "free", "amazon",
			"flipkart", "claim", "subscribe",
		),
	),
	CategoryInvestment: concat(
		phrases(0.9,
			"invest", "guaranteed", "trading", "crypto", "bitcoin",
			"mutual fund", "high return", "risk free", "monthly income",
			"passive income", "forex", "binary option", "double your",
		),
		phrases(0.6, "profit", "stock", "scheme", "returns", "dividend", "sip"),
	),
	CategoryLottery: concat(
		phrases(0.9,
			"lottery", "jackpot", "lucky draw", "sweepstakes", "raffle",
			"winner notification", "claim your", "prize money", "kbc",
		),
		phrases(0.6,
			"won", "winner", "prize", "lucky", "draw", "million",
			"crore", "lakh",
		),
	),
}

// builtinUrgency are pressure-tactic phrases scored independently of
// category. "urgent" and "expire" are prefix matches so urgently,
// expires and expiring all count.
var builtinUrgency = concat(
	[]signal{
		raw("urgent", `(?i)\burgent`, 1.0),
		raw("expire", `(?i)\bexpir(e|es|ed|ing|y)\b`, 1.0),
	},
	phrases(1.0,
		"immediately", "right now", "asap", "hurry", "quickly",
		"within hours", "within 24 hours", "last chance", "don't delay",
		"act fast", "act now", "time sensitive", "deadline",
		"final warning", "last warning",
	),
)

func concat(groups ...[]signal) []signal {
	var out []signal
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// normalizeInput lowercases, NFKC-folds and whitespace-collapses text so
// signal matching sees one canonical form.
func normalizeInput(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(normNFKC(text))), " ")
}
