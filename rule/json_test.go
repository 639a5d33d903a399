package rule

import (
	"encoding/json"
	"testing"

	"pii-sanitizer/value"
)

func TestRuleSpecJSONRoundTripPatternWithReplaceGroups(t *testing.T) {
	key := "hmac-key"
	spec := RuleSpec{
		Type: RuleType{
			Kind:          TypePattern,
			Pattern:       `\d{4}-\d{4}-\d{4}-(\d{4})`,
			ReplaceGroups: []int{1},
		},
		Redaction: Redaction{Kind: RedactMask, RangeEnd: intp(-4), Key: &key},
		Note:      "card number",
	}

	data, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got RuleSpec
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Type.Kind != TypePattern || got.Type.Pattern != spec.Type.Pattern {
		t.Fatalf("type mismatch: %+v", got.Type)
	}
	if len(got.Type.ReplaceGroups) != 1 || got.Type.ReplaceGroups[0] != 1 {
		t.Fatalf("replaceGroups not preserved: %+v", got.Type.ReplaceGroups)
	}
	if got.Redaction.Kind != RedactMask || got.Redaction.RangeEnd == nil || *got.Redaction.RangeEnd != -4 {
		t.Fatalf("redaction not preserved: %+v", got.Redaction)
	}
	if got.Note != "card number" {
		t.Fatalf("note not preserved: %q", got.Note)
	}
}

// TestRuleSpecUnmarshalSpecScenarioC feeds spec.md §8 scenario C's literal
// wire-format example ("replaceGroups": [1], a "replace" redaction keyed by
// "newValue") straight into UnmarshalJSON, the exact case that a
// map-typed replaceGroups decoder fails on.
func TestRuleSpecUnmarshalSpecScenarioC(t *testing.T) {
	data := []byte(`{
		"type": "pattern",
		"pattern": "(?i)(?:[/\\\\](?:users|home)[/\\\\])([^/\\\\\\s]+)",
		"replaceGroups": [1],
		"redaction": {"method": "replace", "newValue": "[username]"},
		"note": "username in path"
	}`)

	var spec RuleSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(spec.Type.ReplaceGroups) != 1 || spec.Type.ReplaceGroups[0] != 1 {
		t.Fatalf("expected replaceGroups [1], got %+v", spec.Type.ReplaceGroups)
	}
	if spec.Redaction.Kind != RedactReplace {
		t.Fatalf("expected a replace redaction, got %+v", spec.Redaction)
	}
	if got := spec.Redaction.NewValue; got.Kind != value.KindString || got.String != "[username]" {
		t.Fatalf("expected newValue [username], got %+v", got)
	}
}

func TestRuleSpecUnmarshalMaskRangeTuple(t *testing.T) {
	data := []byte(`{
		"type": "pattern",
		"pattern": "\\d{4}[- ]?\\d{4,6}[- ]?\\d{4,5}(?:[- ]?\\d{4})",
		"redaction": {"method": "mask", "maskChar": "*", "charsToIgnore": "- ", "range": [0, -4]},
		"note": "creditcard number"
	}`)

	var spec RuleSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if spec.Redaction.Kind != RedactMask {
		t.Fatalf("expected a mask redaction, got %+v", spec.Redaction)
	}
	if spec.Redaction.RangeStart == nil || *spec.Redaction.RangeStart != 0 {
		t.Fatalf("expected rangeStart 0, got %+v", spec.Redaction.RangeStart)
	}
	if spec.Redaction.RangeEnd == nil || *spec.Redaction.RangeEnd != -4 {
		t.Fatalf("expected rangeEnd -4, got %+v", spec.Redaction.RangeEnd)
	}
}

func TestRuleSpecJSONRoundTripAliasAndRemovePair(t *testing.T) {
	cases := []RuleSpec{
		{Type: RuleType{Kind: TypeAlias, Rule: "@email", HideRule: true}},
		{Type: RuleType{Kind: TypeRemovePair, Pattern: "(?i)^secret"}},
		{Type: RuleType{Kind: TypeRemove}},
		{Type: RuleType{Kind: TypeEmail}, Redaction: Redaction{Kind: RedactHash, Algorithm: HmacSha256, Key: strp("k")}},
	}

	for _, spec := range cases {
		data, err := json.Marshal(spec)
		if err != nil {
			t.Fatalf("Marshal(%+v): %v", spec, err)
		}
		var got RuleSpec
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got.Type.Kind != spec.Type.Kind {
			t.Errorf("kind mismatch for %+v: got %+v", spec, got)
		}
		if got.Type.Kind == TypeAlias && got.Type.HideRule != spec.Type.HideRule {
			t.Errorf("hideRule not preserved for %+v: got %+v", spec, got)
		}
	}
}

func TestRuleSpecUnmarshalRemovePairUsesKeyPatternField(t *testing.T) {
	data := []byte(`{"type": "removePair", "keyPattern": "foo"}`)
	var spec RuleSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if spec.Type.Kind != TypeRemovePair || spec.Type.Pattern != "foo" {
		t.Fatalf("expected removePair keyPattern \"foo\", got %+v", spec.Type)
	}
}

func TestRuleSpecUnmarshalRejectsUnknownType(t *testing.T) {
	var spec RuleSpec
	err := json.Unmarshal([]byte(`{"type":"bogus"}`), &spec)
	if err == nil {
		t.Fatal("expected error for unknown rule type")
	}
}

func strp(s string) *string { return &s }
