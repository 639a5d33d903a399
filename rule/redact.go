package rule

import (
	"pii-sanitizer/detectors"
)

// Apply rewrites text according to r's redaction, returning the replacement
// surface text. It is used both for whole-value scalar rewrites and for the
// text of a single regex match inside a larger string. RedactDefault (no
// redaction configured) produces an empty replacement, matching
// original_source/src/rule.rs's insert_replacement_chunks fallback.
func (r *Rule) Apply(text string) (string, error) {
	switch r.Redaction.Kind {
	case RedactReplace:
		return r.Redaction.NewValue.Text(), nil
	case RedactMask:
		return maskText(text, r.Redaction), nil
	case RedactHash:
		if r.Spec.Type.Kind == TypeEmail {
			text = detectors.NormalizeEmailDomain(text)
		}
		key := ""
		if r.Redaction.Key != nil {
			key = *r.Redaction.Key
		}
		return r.Redaction.Algorithm.HashValue(key, text)
	default:
		return "", nil
	}
}

// maskText replaces the runes of text in [start, end) — Python-style,
// negative indices counting from the end, operating on Unicode scalar
// values rather than bytes (spec.md §4.4) — with MaskChar, except runes
// present in CharsToIgnore, which pass through unmasked.
func maskText(text string, red Redaction) string {
	runes := []rune(text)
	n := len(runes)

	start := resolveIndex(red.RangeStart, 0, n)
	end := resolveIndex(red.RangeEnd, n, n)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}

	maskChar := red.MaskChar
	if maskChar == 0 {
		maskChar = DefaultMaskChar
	}

	var ignore map[rune]bool
	if red.CharsToIgnore != "" {
		ignore = make(map[rune]bool)
		for _, c := range red.CharsToIgnore {
			ignore[c] = true
		}
	}

	out := make([]rune, n)
	copy(out, runes)
	for i := start; i < end; i++ {
		if ignore != nil && ignore[runes[i]] {
			continue
		}
		out[i] = maskChar
	}
	return string(out)
}

// resolveIndex turns a possibly-nil, possibly-negative logical index into a
// concrete, clamped rune offset. def is used when idx is nil.
func resolveIndex(idx *int, def, n int) int {
	if idx == nil {
		return def
	}
	v := *idx
	if v < 0 {
		v = n + v
	}
	if v < 0 {
		v = 0
	}
	if v > n {
		v = n
	}
	return v
}
