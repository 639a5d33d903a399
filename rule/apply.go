package rule

import (
	"pii-sanitizer/chunk"
	"pii-sanitizer/detectors"
	"pii-sanitizer/meta"
)

// ApplyToString runs r against text, returning the rewritten string and an
// updated Meta carrying one remark per match (spec.md §4.3). Only the rule
// types backed by a detector or user pattern (Pattern, Email, Ipv4, Ipv6,
// IP, Creditcard) are meaningful here; Remove and RemovePair are handled at
// the value level (ApplyToValue) by the processor.
func (r *Rule) ApplyToString(text string, m meta.Meta) (string, meta.Meta, error) {
	if r.Spec.Type.Kind == TypeIP {
		return r.applyIPToString(text, m)
	}

	det := r.Detector()
	if det == nil {
		return text, m, nil
	}

	chunks := chunk.FromString(text, m)
	rewritten, err := r.ApplyRegexToChunks(chunks, det)
	if err != nil {
		return "", m, err
	}
	out, outMeta := chunk.ToString(rewritten, m)
	outMeta.RecordLengthChange(len(text), len(out))
	return out, outMeta, nil
}

// applyIPToString implements RuleType.IP as two sequential chunk-rewriting
// passes — IPv4 first, then IPv6 over the result (spec.md §4.3: "apply Ipv4
// then Ipv6"). Running them as two passes over the same chunk sequence,
// rather than one combined alternation, means the first pass's redactions
// are protected from the second pass the same way any two independent rules
// are: via the NUL-sentinel in ApplyRegexToChunks.
func (r *Rule) applyIPToString(text string, m meta.Meta) (string, meta.Meta, error) {
	chunks := chunk.FromString(text, m)

	chunks, err := r.ApplyRegexToChunks(chunks, detectors.IPv4Regex)
	if err != nil {
		return "", m, err
	}
	chunks, err = r.ApplyRegexToChunks(chunks, detectors.IPv6Regex)
	if err != nil {
		return "", m, err
	}
	out, outMeta := chunk.ToString(chunks, m)
	outMeta.RecordLengthChange(len(text), len(out))
	return out, outMeta, nil
}

// IsRemove reports whether this rule unconditionally rewrites the whole
// value it's applied to (spec.md §4.3's "remove" rule type).
func (r *Rule) IsRemove() bool {
	return r.Spec.Type.Kind == TypeRemove
}

// IsRemovePair reports whether this rule rewrites a map entry's whole value
// when the entry's key path matches the rule's pattern (spec.md §4.3's
// "removePair" rule type) — handled at the container level by the
// processor, since a Rule alone has no notion of a map's keys.
func (r *Rule) IsRemovePair() bool {
	return r.Spec.Type.Kind == TypeRemovePair
}

// MatchesKey reports whether a removePair rule's key pattern matches path
// (spec.md §3: matched against the node's dotted meta.Path, not its raw map
// key, so a pattern can anchor to a specific nesting level).
func (r *Rule) MatchesKey(path string) bool {
	if r.pattern == nil {
		return false
	}
	return r.pattern.re.MatchString(path)
}
