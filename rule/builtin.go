package rule

import "pii-sanitizer/value"

// Builtins is the engine's built-in rule catalog (spec.md §4.3, grounded on
// original_source/src/builtinrules.rs's declare_builtin_rules!/rule_alias!
// macro expansion). Each "natural" rule id (no suffix) is a hidden-free
// Alias onto one specific redaction variant of the same detector; the
// ":mask"/":replace"/":hash" siblings are the concrete rules it points at.
var Builtins = map[string]RuleSpec{
	"@ip": {
		Type:      RuleType{Kind: TypeAlias, Rule: "@ip:replace"},
		Redaction: Redaction{Kind: RedactDefault},
	},
	"@ip:replace": {
		Type:      RuleType{Kind: TypeIP},
		Redaction: Redaction{Kind: RedactReplace, NewValue: value.OfString("[ip]")},
	},
	"@ip:hash": {
		Type:      RuleType{Kind: TypeIP},
		Redaction: Redaction{Kind: RedactHash, Algorithm: HmacSha1},
	},

	"@email": {
		Type:      RuleType{Kind: TypeAlias, Rule: "@email:replace"},
		Redaction: Redaction{Kind: RedactDefault},
	},
	"@email:mask": {
		Type:      RuleType{Kind: TypeEmail},
		Redaction: Redaction{Kind: RedactMask, CharsToIgnore: ".@"},
	},
	"@email:replace": {
		Type:      RuleType{Kind: TypeEmail},
		Redaction: Redaction{Kind: RedactReplace, NewValue: value.OfString("[email]")},
	},
	"@email:hash": {
		Type:      RuleType{Kind: TypeEmail},
		Redaction: Redaction{Kind: RedactHash, Algorithm: HmacSha1},
	},

	"@creditcard": {
		Type:      RuleType{Kind: TypeAlias, Rule: "@creditcard:mask"},
		Redaction: Redaction{Kind: RedactDefault},
	},
	"@creditcard:mask": {
		Type:      RuleType{Kind: TypeCreditcard},
		Redaction: Redaction{Kind: RedactMask, CharsToIgnore: " -", RangeEnd: intp(-4)},
	},
	"@creditcard:replace": {
		Type:      RuleType{Kind: TypeCreditcard},
		Redaction: Redaction{Kind: RedactReplace, NewValue: value.OfString("[creditcard]")},
	},
	"@creditcard:hash": {
		Type:      RuleType{Kind: TypeCreditcard},
		Redaction: Redaction{Kind: RedactHash, Algorithm: HmacSha1},
	},
}

func intp(v int) *int { return &v }
