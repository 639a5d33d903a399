// Package detectors holds the engine's fixed, compiled-once regular
// expressions for the built-in PII shapes (spec.md §4.2): email, IPv4,
// IPv6, and credit card numbers. They are exposed as a stable registry so
// Pattern rules (and the built-in catalog) can name them without
// recompiling.
package detectors

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Compiled once at package init, as spec.md §4.2 and §5 require ("these
// must be compiled once per process... all regexes are compiled once and
// memoized in process-global storage").
var (
	// EmailRegex matches an email address's local-part@domain shape. The
	// character classes mirror the permissive set accepted by the original
	// implementation and the pack's own redaction references (rmasci's
	// patterns.go, the wso2/DakshithaS gateway PII masking policies).
	EmailRegex = regexp.MustCompile(`[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~.-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*`)

	// IPv4Regex matches a dotted-quad IPv4 address whose four octets are
	// each in the range 0-255, bounded by word boundaries.
	IPv4Regex = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)

	// IPv6Regex matches the common compressed and uncompressed forms of an
	// IPv6 address (RFC 5952), ordered longest-alternative-first so greedy
	// matching prefers the most complete address.
	IPv6Regex = regexp.MustCompile(
		`(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}` +
			`|[0-9a-fA-F]{1,4}:(?::[0-9a-fA-F]{1,4}){1,6}` +
			`|(?:[0-9a-fA-F]{1,4}:){1,2}(?::[0-9a-fA-F]{1,4}){1,5}` +
			`|(?:[0-9a-fA-F]{1,4}:){1,3}(?::[0-9a-fA-F]{1,4}){1,4}` +
			`|(?:[0-9a-fA-F]{1,4}:){1,4}(?::[0-9a-fA-F]{1,4}){1,3}` +
			`|(?:[0-9a-fA-F]{1,4}:){1,5}(?::[0-9a-fA-F]{1,4}){1,2}` +
			`|(?:[0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}` +
			`|(?:[0-9a-fA-F]{1,4}:){1,7}:` +
			`|:(?::[0-9a-fA-F]{1,4}){1,7}` +
			`|::`)

	// CreditCardRegex is deliberately permissive, allowing optional '-' and
	// ' ' separators between four digit groups of 4, 4-6, 4-5 and 4 digits
	// (spec.md §4.2).
	CreditCardRegex = regexp.MustCompile(`\b\d{4}[- ]?\d{4,6}[- ]?\d{4,5}(?:[- ]?\d{4})\b`)
)

// Registry maps a stable name to its compiled detector, so rule types that
// name a detector by string (rather than embedding the regex itself) can
// look it up once at config-construction time.
var Registry = map[string]*regexp.Regexp{
	"email":      EmailRegex,
	"ipv4":       IPv4Regex,
	"ipv6":       IPv6Regex,
	"creditcard": CreditCardRegex,
}

// NormalizeEmailDomain lowercases an email address's domain and converts it
// to its ASCII (Punycode) form via IDNA, so that two differently-cased or
// differently-encoded spellings of the same address hash to the same
// digest (rule.HashAlgorithm.HashValue on an Email rule). The local part is
// left untouched, matching the domain-only canonicalization real mail
// systems perform. If the domain fails IDNA conversion (not a valid
// hostname), the address is returned unchanged.
func NormalizeEmailDomain(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return email
	}
	local, domain := email[:at+1], email[at+1:]
	ascii, err := idna.Lookup.ToASCII(strings.ToLower(domain))
	if err != nil {
		return email
	}
	return local + ascii
}
