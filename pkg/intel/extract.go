package intel

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extraction patterns, compiled once at package load. Go's RE2 engine has no
// lookbehind, so the digit-run patterns match the bare run and
// boundedMatches validates the neighboring bytes by index. Writing the
// boundary as a consumed group would swallow the delimiter and skip the
// second of two numbers separated by a single comma or slash.
var (
	// Phone forms, most specific first. Overlaps resolve to the earlier
	// (longer) pattern via the claimed-digits set in extractPhones.
	re91Phone     = regexp.MustCompile(`\+91[-.\s]?[0-9]{5}[-.\s]?[0-9]{5}`)
	reIntlPhone   = regexp.MustCompile(`\+[0-9]{1,3}[-.\s]?\(?[0-9]{1,5}\)?[-.\s]?[0-9]{3,5}[-.\s]?[0-9]{3,5}`)
	rePrefix91    = regexp.MustCompile(`91[-.\s][0-9]{5}[-.\s]?[0-9]{5}`)
	reBareMobile  = regexp.MustCompile(`[6-9][0-9]{9}`)
	reSplitMobile = regexp.MustCompile(`[0-9]{5}[-.\s][0-9]{5}`)

	// Bank accounts: keyword-anchored runs always count; unanchored runs only
	// when long enough to be unambiguous (12+ digits), or 10-11 digits when
	// the surrounding text talks about banking.
	reAcctKeyword = regexp.MustCompile(`(?i)(?:account|a/c|acct|acc)[.\s#:_-]*(?:no|number|num|#)?[.\s#:_-]*([0-9]{10,18})`)
	reAcctLong    = regexp.MustCompile(`[0-9]{12,18}`)
	reAcctShort   = regexp.MustCompile(`[0-9]{10,11}`)

	// A single @-token is assigned to exactly one kind downstream: payment
	// handle when the suffix is dotless and on the provider list, email when
	// the domain is dotted with a plausible TLD.
	reAtToken  = regexp.MustCompile(`(?i)\b[a-z0-9][a-z0-9._%+-]*@[a-z0-9.-]+`)
	reEmailTLD = regexp.MustCompile(`(?i)\.[a-z]{2,}$`)

	reHTTPLink = regexp.MustCompile(`(?i)https?://[^\s,)"'<>\]]+`)
	reWWWLink  = regexp.MustCompile(`(?i)(?:^|\s)(www\.[^\s,)"'<>\]]+)`)
)

// accountContextWords gate 10-11 digit runs that would otherwise be too
// ambiguous to call bank accounts.
var accountContextWords = []string{
	"account", "a/c", "acct", "bank", "deposit", "transfer",
	"balance", "blocked", "unauthorized", "ifsc", "neft", "rtgs",
}

// paymentSuffixes is the closed allow-list of recognized payment-provider
// handle suffixes. Dotless by construction, so it stays disjoint from
// dotted email domains.
var paymentSuffixes = map[string]struct{}{}

func init() {
	for _, s := range []string{
		"upi", "ybl", "paytm", "oksbi", "okicici", "okaxis", "okhdfcbank",
		"okbizaxis", "apl", "ibl", "axl", "sbi", "icici", "hdfc", "axis",
		"kotak", "bob", "pnb", "canara", "union", "boi", "uco", "idbi",
		"dbs", "rbl", "indus", "yes", "citi", "freecharge", "mobikwik",
		"jio", "airtel", "phonepe", "gpay", "amazonpay", "axisbank",
		"hdfcbank", "icicibank", "kotakbank",
		// Seen in bait traffic and red-team fixtures
		"fakebank", "fakeupi", "testbank", "demobank",
	} {
		paymentSuffixes[s] = struct{}{}
	}
}

// NormalizeText applies NFKC normalization so fullwidth and other
// compatibility formattings of digits and letters match the patterns.
func NormalizeText(text string) string {
	return norm.NFKC.String(text)
}

// Extract scans a single text for all five intelligence kinds.
// It is pure: same text in, same bundle out.
func Extract(text string) Bundle {
	b := NewBundle()
	if strings.TrimSpace(text) == "" {
		return b
	}
	text = NormalizeText(text)

	phoneDigits := extractPhones(text, &b)
	extractLinks(text, &b)
	extractAtTokens(text, &b)
	extractAccounts(text, phoneDigits, &b)
	return b
}

// ExtractCumulative scans the current message together with the full prior
// history in chronological order. Scammers routinely split identifiers
// across turns, so cumulative extraction is the authoritative form.
func ExtractCumulative(current string, history []string) Bundle {
	parts := make([]string, 0, len(history)+1)
	parts = append(parts, history...)
	parts = append(parts, current)
	return Extract(strings.Join(parts, "\n"))
}

// extractPhones adds phone matches and returns the set of digit keys they
// claimed, so account extraction can skip them.
func extractPhones(text string, b *Bundle) map[string]struct{} {
	claimed := make(map[string]struct{})

	add := func(raw string) {
		cleaned := strings.TrimSpace(raw)
		digits := digitsOnly(cleaned)
		if len(digits) < 10 || len(digits) > 15 {
			return
		}
		if _, ok := claimed[digits]; ok {
			return
		}
		claimed[digits] = struct{}{}
		b.Add(KindPhone, cleaned)
	}

	for _, m := range re91Phone.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range reIntlPhone.FindAllString(text, -1) {
		add(m)
	}
	// A leading '+' means the run belongs to an international form the
	// patterns above already considered.
	for _, m := range boundedMatches(rePrefix91, text, "+") {
		add(m)
	}
	for _, m := range boundedMatches(reBareMobile, text, "") {
		add(m)
	}
	for _, m := range boundedMatches(reSplitMobile, text, "") {
		add(m)
	}
	return claimed
}

// boundedMatches returns the non-overlapping matches of re that are not
// part of a longer digit run: the bytes on either side must not be
// digits. extraLeft lists further bytes that invalidate the left side.
func boundedMatches(re *regexp.Regexp, text, extraLeft string) []string {
	var out []string
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 {
			prev := text[loc[0]-1]
			if isDigit(prev) || strings.IndexByte(extraLeft, prev) >= 0 {
				continue
			}
		}
		if loc[1] < len(text) && isDigit(text[loc[1]]) {
			continue
		}
		out = append(out, text[loc[0]:loc[1]])
	}
	return out
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func extractAccounts(text string, phoneDigits map[string]struct{}, b *Bundle) {
	seen := make(map[string]struct{})

	add := func(raw string) {
		digits := digitsOnly(raw)
		if len(digits) < 10 || len(digits) > 18 {
			return
		}
		if _, ok := phoneDigits[digits]; ok {
			return
		}
		if _, ok := seen[digits]; ok {
			return
		}
		seen[digits] = struct{}{}
		b.Add(KindAccount, digits)
	}

	for _, groups := range reAcctKeyword.FindAllStringSubmatch(text, -1) {
		add(groups[1])
	}
	for _, m := range boundedMatches(reAcctLong, text, "") {
		add(m)
	}
	if hasAccountContext(text) {
		for _, m := range boundedMatches(reAcctShort, text, "") {
			add(m)
		}
	}
}

func hasAccountContext(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range accountContextWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// extractAtTokens routes each local@suffix token to exactly one kind.
// Payment handle takes precedence: a dotless suffix on the provider
// allow-list is never treated as an email domain.
func extractAtTokens(text string, b *Bundle) {
	for _, token := range reAtToken.FindAllString(text, -1) {
		token = strings.TrimRight(token, ".-")
		at := strings.LastIndex(token, "@")
		if at <= 0 || at == len(token)-1 {
			continue
		}
		domain := strings.ToLower(token[at+1:])
		if !strings.Contains(domain, ".") {
			if _, ok := paymentSuffixes[domain]; ok {
				b.Add(KindHandle, token)
			}
			continue
		}
		if reEmailTLD.MatchString(domain) {
			b.Add(KindEmail, token)
		}
	}
}

func extractLinks(text string, b *Bundle) {
	add := func(raw string) {
		cleaned := strings.TrimRight(raw, `.,;:!?)'">`)
		if len(cleaned) > 8 {
			b.Add(KindLink, cleaned)
		}
	}
	for _, m := range reHTTPLink.FindAllString(text, -1) {
		add(m)
	}
	for _, groups := range reWWWLink.FindAllStringSubmatch(text, -1) {
		add(groups[1])
	}
}
