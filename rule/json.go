package rule

import (
	"bytes"
	"encoding/json"
	"fmt"

	"pii-sanitizer/value"
)

// The wire format (spec.md §6) uses a tagged "type"/"method" discriminator
// with camelCase field names, e.g.:
//
//	{
//	  "type": "pattern",
//	  "pattern": "\\d{4}-\\d{4}-\\d{4}-(\\d{4})",
//	  "replaceGroups": [1],
//	  "redaction": {"method": "mask", "maskChar": "*", "range": [0, -4]},
//	  "note": "card number"
//	}

type ruleSpecJSON struct {
	Type          string         `json:"type"`
	Pattern       string         `json:"pattern,omitempty"`
	ReplaceGroups []int          `json:"replaceGroups,omitempty"`
	KeyPattern    string         `json:"keyPattern,omitempty"` // for type: "removePair"
	Rule          string         `json:"rule,omitempty"`       // for type: "alias"
	HideRule      bool           `json:"hideRule,omitempty"`   // for type: "alias"
	Redaction     *redactionJSON `json:"redaction,omitempty"`
	Note          string         `json:"note,omitempty"`
}

type redactionJSON struct {
	Method        string   `json:"method"`
	NewValue      any      `json:"newValue,omitempty"`
	MaskChar      string   `json:"maskChar,omitempty"`
	CharsToIgnore string   `json:"charsToIgnore,omitempty"`
	Range         *[2]*int `json:"range,omitempty"`
	Algorithm     string   `json:"algorithm,omitempty"`
	Key           *string  `json:"key,omitempty"`
}

// MarshalJSON renders a RuleSpec in the wire format described above.
func (s RuleSpec) MarshalJSON() ([]byte, error) {
	w := ruleSpecJSON{Note: s.Note}

	switch s.Type.Kind {
	case TypePattern:
		w.Type = "pattern"
		w.Pattern = s.Type.Pattern
		if len(s.Type.ReplaceGroups) > 0 {
			w.ReplaceGroups = s.Type.ReplaceGroups
		}
	case TypeEmail:
		w.Type = "email"
	case TypeIpv4:
		w.Type = "ipv4"
	case TypeIpv6:
		w.Type = "ipv6"
	case TypeIP:
		w.Type = "ip"
	case TypeCreditcard:
		w.Type = "creditcard"
	case TypeRemove:
		w.Type = "remove"
	case TypeRemovePair:
		w.Type = "removePair"
		w.KeyPattern = s.Type.Pattern
	case TypeAlias:
		w.Type = "alias"
		w.Rule = s.Type.Rule
		w.HideRule = s.Type.HideRule
	}

	if s.Redaction.Kind != RedactDefault || s.Type.Kind == TypePattern || s.Type.Kind == TypeRemovePair {
		w.Redaction = redactionToJSON(s.Redaction)
	}

	return json.Marshal(w)
}

func redactionToJSON(r Redaction) *redactionJSON {
	out := &redactionJSON{}
	switch r.Kind {
	case RedactReplace:
		out.Method = "replace"
		out.NewValue = value.ToAny(r.NewValue)
	case RedactMask:
		out.Method = "mask"
		if r.MaskChar != 0 {
			out.MaskChar = string(r.MaskChar)
		}
		out.CharsToIgnore = r.CharsToIgnore
		if r.RangeStart != nil || r.RangeEnd != nil {
			rng := [2]*int{r.RangeStart, r.RangeEnd}
			out.Range = &rng
		}
	case RedactHash:
		out.Method = "hash"
		out.Algorithm = string(r.Algorithm)
		out.Key = r.Key
	default:
		out.Method = "default"
	}
	return out
}

// UnmarshalJSON parses a RuleSpec from the wire format.
func (s *RuleSpec) UnmarshalJSON(data []byte) error {
	var w ruleSpecJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return err
	}

	s.Note = w.Note

	switch w.Type {
	case "pattern":
		s.Type = RuleType{Kind: TypePattern, Pattern: w.Pattern, ReplaceGroups: w.ReplaceGroups}
	case "email":
		s.Type = RuleType{Kind: TypeEmail}
	case "ipv4":
		s.Type = RuleType{Kind: TypeIpv4}
	case "ipv6":
		s.Type = RuleType{Kind: TypeIpv6}
	case "ip":
		s.Type = RuleType{Kind: TypeIP}
	case "creditcard":
		s.Type = RuleType{Kind: TypeCreditcard}
	case "remove":
		s.Type = RuleType{Kind: TypeRemove}
	case "removePair":
		s.Type = RuleType{Kind: TypeRemovePair, Pattern: w.KeyPattern}
	case "alias":
		s.Type = RuleType{Kind: TypeAlias, Rule: w.Rule, HideRule: w.HideRule}
	default:
		return fmt.Errorf("rule: unknown rule type %q", w.Type)
	}

	if w.Redaction == nil {
		s.Redaction = Redaction{Kind: RedactDefault}
		return nil
	}
	red, err := redactionFromJSON(w.Redaction)
	if err != nil {
		return err
	}
	s.Redaction = red
	return nil
}

func redactionFromJSON(w *redactionJSON) (Redaction, error) {
	switch w.Method {
	case "", "default":
		return Redaction{Kind: RedactDefault}, nil
	case "replace":
		return Redaction{Kind: RedactReplace, NewValue: value.FromAny(w.NewValue)}, nil
	case "mask":
		red := Redaction{Kind: RedactMask, CharsToIgnore: w.CharsToIgnore}
		if w.Range != nil {
			red.RangeStart = w.Range[0]
			red.RangeEnd = w.Range[1]
		}
		if w.MaskChar != "" {
			runes := []rune(w.MaskChar)
			red.MaskChar = runes[0]
		}
		return red, nil
	case "hash":
		algo := HashAlgorithm(w.Algorithm)
		if algo == "" {
			algo = HmacSha256
		}
		return Redaction{Kind: RedactHash, Algorithm: algo, Key: w.Key}, nil
	default:
		return Redaction{}, fmt.Errorf("rule: unknown redaction method %q", w.Method)
	}
}
