// Package rule implements the declarative rule language (spec.md §4.3/§4.4):
// rule types that locate PII, redactions that rewrite it, a JSON-driven
// RuleConfig that ties rule ids to piikind applications, and the chunk-aware
// matcher that lets several rules rewrite the same string without colliding.
package rule

import (
	"errors"
	"regexp"

	"pii-sanitizer/meta"
	"pii-sanitizer/value"
)

// RuleTypeKind discriminates a RuleType's variant.
type RuleTypeKind int

const (
	TypePattern RuleTypeKind = iota
	TypeEmail
	TypeIpv4
	TypeIpv6
	TypeIP
	TypeCreditcard
	TypeRemove
	TypeRemovePair
	TypeAlias
)

// RuleType is the "what to find" half of a rule (spec.md §4.3). Pattern and
// RemovePair carry a user-supplied regular expression; Email/Ipv4/Ipv6/
// IP/Creditcard name one of the engine's built-in detectors
// (pii-sanitizer/detectors); IP is the composition of Ipv4 then Ipv6, applied
// as two sequential passes over the same chunk sequence; Remove matches the
// whole value unconditionally; RemovePair matches the node's own dotted
// meta.Path; Alias points at another rule id to apply in its place, and can
// hide that target from external enumeration of the catalog.
type RuleType struct {
	Kind RuleTypeKind

	// Pattern is the regular expression source for TypePattern, and the key
	// pattern for TypeRemovePair.
	Pattern string
	// ReplaceGroups is the set of capture group indices (1-based) a Pattern
	// rule redacts individually, leaving the rest of the match untouched.
	// Every named group is redacted via this same rule's own Redaction — it
	// does not name another rule. Empty means the whole match is redacted.
	ReplaceGroups []int

	// Rule is the aliased rule id, for TypeAlias.
	Rule string
	// HideRule marks an alias as hiding its target rule from external
	// enumeration of the built-in catalog (spec.md §3, §6 "hideRule").
	HideRule bool
}

// hasReplaceGroup reports whether group is among t's ReplaceGroups.
func (t RuleType) hasReplaceGroup(group int) bool {
	for _, g := range t.ReplaceGroups {
		if g == group {
			return true
		}
	}
	return false
}

// RedactionKind discriminates a Redaction's variant.
type RedactionKind int

const (
	// RedactDefault means "no redaction configured": the original
	// implementation represents this as an absent Option<Redaction> and
	// treats it as an empty replacement on chunks and a removed value on
	// whole-value rewrite.
	RedactDefault RedactionKind = iota
	RedactReplace
	RedactMask
	RedactHash
)

// Redaction is the "what to do with it" half of a rule (spec.md §4.4).
type Redaction struct {
	Kind RedactionKind

	// Replace: the verbatim replacement value. Any JSON scalar is legal
	// (spec.md §6 "newValue (any JSON scalar)"); on chunk-level rewrites it
	// is stringified, on whole-value rewrites it is spliced in as-is.
	NewValue value.Value

	// Mask
	MaskChar      rune
	CharsToIgnore string
	RangeStart    *int // nil means "from the start"; negative counts from the end
	RangeEnd      *int // nil means "to the end"; negative counts from the end

	// Hash
	Algorithm HashAlgorithm
	Key       *string
}

// DefaultMaskChar is used when a Mask redaction leaves MaskChar as the zero
// rune, matching the original's '*' default.
const DefaultMaskChar = '*'

// RuleSpec is one named entry in a RuleConfig's rule table: what to find,
// what to do with it, and an optional human-readable note. The note is
// recorded on the remarks of whole-value rewrites (ApplyToValue); remarks
// rebuilt from chunks (ApplyToString) carry the rule id only.
type RuleSpec struct {
	Type      RuleType
	Redaction Redaction
	Note      string
}

// ErrMissingHashKey is returned at RuleConfig construction time when a
// user-defined or application-named rule resolves to a keyless Hash
// redaction without the config supplying a default key — Open Question 1 in
// spec.md §9, resolved in favor of a hard failure rather than a silent
// empty-key hash.
var ErrMissingHashKey = errors.New("rule: hash redaction has no key and no default key was configured")

// compiledPattern bundles a RuleType's regex with its replace-groups (if
// any), compiled once when the owning Rule is built.
type compiledPattern struct {
	re            *regexp.Regexp
	replaceGroups []int
}

// Rule is a fully resolved, ready-to-apply rule: an id, its spec (with
// aliases already followed), and any compiled regex it needs.
type Rule struct {
	ID        string
	Spec      RuleSpec
	Redaction Redaction

	pattern  *compiledPattern // set for TypePattern/TypeRemovePair
	detector *regexp.Regexp   // set for TypeEmail/TypeIpv4/TypeIpv6/TypeCreditcard
}

// makeNote builds the Note this rule records on every remark it produces.
func (r *Rule) makeNote() meta.Note {
	return meta.NewNote(r.ID, r.Spec.Note)
}

// RemarkType maps this rule's redaction kind to the meta.RemarkType its
// remarks should carry.
func (r *Rule) RemarkType() meta.RemarkType {
	switch r.Redaction.Kind {
	case RedactMask:
		return meta.Masked
	case RedactHash:
		return meta.Hashed
	case RedactReplace:
		return meta.Replaced
	default:
		return meta.Removed
	}
}
