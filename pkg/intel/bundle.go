// Package intel extracts actionable scam intelligence (phone numbers, bank
// accounts, payment handles, phishing links, email addresses) from raw
// conversation text.
//
// Design principles:
// - COMPILE ONCE: all extraction patterns are compiled at package init
// - PURE: extraction and merging are stateless; callers own accumulation
// - EXCLUSIVE: a matched token lands in exactly one kind
package intel

import "strings"

// Kind identifies a class of extractable identifier.
type Kind string

const (
	KindPhone   Kind = "phone_number"
	KindAccount Kind = "bank_account"
	KindHandle  Kind = "payment_handle"
	KindLink    Kind = "phishing_link"
	KindEmail   Kind = "email_address"
)

// ProbePriority is the fixed order in which missing kinds are solicited
// from the scammer: phones first (highest investigative value), then
// payment handles, bank accounts, links, emails.
var ProbePriority = []Kind{KindPhone, KindHandle, KindAccount, KindLink, KindEmail}

// Bundle holds deduplicated intelligence values, one set per kind.
// JSON field names follow the reporting schema consumed downstream.
type Bundle struct {
	PhoneNumbers   []string `json:"phoneNumbers"`
	BankAccounts   []string `json:"bankAccounts"`
	PaymentHandles []string `json:"upiIds"`
	PhishingLinks  []string `json:"phishingLinks"`
	EmailAddresses []string `json:"emailAddresses"`
}

// NewBundle returns an empty bundle with non-nil sets so it serializes
// as empty lists rather than nulls.
func NewBundle() Bundle {
	return Bundle{
		PhoneNumbers:   []string{},
		BankAccounts:   []string{},
		PaymentHandles: []string{},
		PhishingLinks:  []string{},
		EmailAddresses: []string{},
	}
}

// NormalizeValue returns the comparison key for a value of the given kind.
// Phone and account numbers compare digit-only so equivalent formattings
// collapse; handles, links and emails compare case-insensitively.
func NormalizeValue(k Kind, v string) string {
	switch k {
	case KindPhone, KindAccount:
		return digitsOnly(v)
	default:
		return strings.ToLower(strings.TrimSpace(v))
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// set returns a pointer to the slice backing the given kind.
func (b *Bundle) set(k Kind) *[]string {
	switch k {
	case KindPhone:
		return &b.PhoneNumbers
	case KindAccount:
		return &b.BankAccounts
	case KindHandle:
		return &b.PaymentHandles
	case KindLink:
		return &b.PhishingLinks
	case KindEmail:
		return &b.EmailAddresses
	}
	return nil
}

// Values returns the stored values for a kind. The returned slice is the
// bundle's own backing storage; callers must not mutate it.
func (b *Bundle) Values(k Kind) []string {
	if s := b.set(k); s != nil {
		return *s
	}
	return nil
}

// Add inserts a value under the given kind unless an equivalent value
// (under NormalizeValue) is already present. Reports whether it was added.
func (b *Bundle) Add(k Kind, value string) bool {
	s := b.set(k)
	if s == nil {
		return false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	key := NormalizeValue(k, value)
	for _, existing := range *s {
		if NormalizeValue(k, existing) == key {
			return false
		}
	}
	*s = append(*s, value)
	return true
}

// Contains reports whether an equivalent value is already stored under k.
func (b *Bundle) Contains(k Kind, value string) bool {
	key := NormalizeValue(k, value)
	for _, existing := range b.Values(k) {
		if NormalizeValue(k, existing) == key {
			return true
		}
	}
	return false
}

// Merge unions other into b per kind. Merging is idempotent and, in set
// terms, commutative: duplicates under normalization are dropped and
// first-seen formatting wins.
func (b *Bundle) Merge(other Bundle) {
	for _, k := range Kinds() {
		for _, v := range other.Values(k) {
			b.Add(k, v)
		}
	}
}

// Missing returns the kinds with no values yet, in probe priority order.
func (b *Bundle) Missing() []Kind {
	missing := make([]Kind, 0, len(ProbePriority))
	for _, k := range ProbePriority {
		if len(b.Values(k)) == 0 {
			missing = append(missing, k)
		}
	}
	return missing
}

// Total returns the number of values across all kinds.
func (b *Bundle) Total() int {
	n := 0
	for _, k := range Kinds() {
		n += len(b.Values(k))
	}
	return n
}

// Kinds returns all intelligence kinds in canonical order.
func Kinds() []Kind {
	return []Kind{KindPhone, KindAccount, KindHandle, KindLink, KindEmail}
}
