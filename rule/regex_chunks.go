package rule

import (
	"regexp"

	"pii-sanitizer/chunk"
	"pii-sanitizer/meta"
)

// span is a half-open byte range with the rule metadata that produced it,
// used internally while rebuilding a chunk sequence.
type span struct {
	from, to   int
	ruleID     string
	remarkType meta.RemarkType
	text       string // replacement text already computed, for new matches
	preexisting bool  // true for spans copied from an existing Redaction chunk
}

// ApplyRegexToChunks runs re over the Text portions of chunks only, leaving
// existing Redaction chunks untouched and never matching across one (spec.md
// §4.3's "no double redaction" rule). This mirrors
// original_source/src/rule.rs's apply_regex_to_chunks, which builds a
// sentinel copy of the joined text where every existing Redaction run is
// replaced by NUL bytes of the same length before matching, then discards
// any candidate match that overlaps a NUL run — preventing, for example, an
// @ip rule from re-matching digits a prior @creditcard rule already masked.
func (r *Rule) ApplyRegexToChunks(chunks []chunk.Chunk, re *regexp.Regexp) ([]chunk.Chunk, error) {
	original, existing := flattenWithSentinel(chunks)

	idxs := re.FindAllSubmatchIndex(original.sentinel, -1)
	var spans []span
	for _, ex := range existing {
		spans = append(spans, ex)
	}

	for _, m := range idxs {
		start, end := m[0], m[1]
		if overlapsAny(start, end, existing) {
			continue
		}
		matched := original.text[start:end]
		replaced, err := r.applyMatch(matched, m, original.text)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span{from: start, to: end, ruleID: r.ID, remarkType: r.RemarkType(), text: replaced})
	}

	return rebuildChunks(original.text, spans), nil
}

// groupReplacement is a pending capture-group substitution, recorded in
// ascending group order and applied back to front so earlier splices don't
// invalidate the byte offsets of later ones.
type groupReplacement struct {
	from, to int
	text     string
}

// applyMatch applies r's redaction to a single regex match. When the rule's
// pattern names specific capture groups via ReplaceGroups (spec.md §4.3),
// only those groups are rewritten — each via this same rule's own Redaction
// — and the rest of the match passes through unchanged; otherwise the whole
// match is redacted.
func (r *Rule) applyMatch(matched string, idx []int, full string) (string, error) {
	groups := r.pattern
	if groups == nil || len(groups.replaceGroups) == 0 {
		return r.Apply(matched)
	}

	// idx is [whole-start, whole-end, g1-start, g1-end, g2-start, g2-end, ...]
	// relative to full.
	out := []byte(matched)
	whole := idx[0]
	var replacements []groupReplacement
	for g := 1; g*2+1 < len(idx); g++ {
		if !r.Spec.Type.hasReplaceGroup(g) {
			continue
		}
		gi := g * 2
		if idx[gi] < 0 {
			continue
		}
		replaced, err := r.Apply(full[idx[gi]:idx[gi+1]])
		if err != nil {
			return "", err
		}
		replacements = append(replacements, groupReplacement{
			from: idx[gi] - whole, to: idx[gi+1] - whole, text: replaced,
		})
	}
	for i := len(replacements) - 1; i >= 0; i-- {
		rep := replacements[i]
		out = spliceBytes(out, rep.from, rep.to, rep.text)
	}
	return string(out), nil
}

// spliceBytes is a small helper replacing out[from:to] with replacement,
// used when rewriting only some capture groups of a match; every splice in
// the same match uses the original group offsets, so applyMatch applies
// them back to front, which keeps the remaining offsets valid as long as
// the replaced groups do not overlap (nested groups do overlap).
func spliceBytes(out []byte, from, to int, replacement string) []byte {
	if from < 0 || to > len(out) || from > to {
		return out
	}
	rv := make([]byte, 0, len(out)-(to-from)+len(replacement))
	rv = append(rv, out[:from]...)
	rv = append(rv, replacement...)
	rv = append(rv, out[to:]...)
	return rv
}

type flattened struct {
	text     string
	sentinel []byte
}

// flattenWithSentinel joins chunks into their original text and a sentinel
// copy where every Redaction run is overwritten with NUL bytes, plus the
// list of existing Redaction spans (so callers can both test overlap and
// preserve them in the rebuilt chunk list).
func flattenWithSentinel(chunks []chunk.Chunk) (flattened, []span) {
	var text []byte
	var sentinel []byte
	var existing []span
	pos := 0

	for _, c := range chunks {
		text = append(text, c.Value...)
		if c.Kind == chunk.Redaction {
			for range c.Value {
				sentinel = append(sentinel, 0)
			}
			existing = append(existing, span{
				from: pos, to: pos + c.Len(),
				ruleID: c.RuleID, remarkType: c.RemarkType,
				text: c.Value, preexisting: true,
			})
		} else {
			sentinel = append(sentinel, c.Value...)
		}
		pos += c.Len()
	}

	return flattened{text: string(text), sentinel: sentinel}, existing
}

func overlapsAny(start, end int, spans []span) bool {
	for _, s := range spans {
		if start < s.to && s.from < end {
			return true
		}
	}
	return false
}

// rebuildChunks walks text left to right, emitting Text chunks for the gaps
// between spans (sorted by start offset) and Redaction chunks for the spans
// themselves.
func rebuildChunks(text string, spans []span) []chunk.Chunk {
	sortSpans(spans)

	var rv []chunk.Chunk
	pos := 0
	for _, s := range spans {
		if s.from > pos {
			rv = append(rv, chunk.NewText(text[pos:s.from]))
		}
		rv = append(rv, chunk.NewRedaction(s.text, s.ruleID, s.remarkType))
		pos = s.to
	}
	if pos < len(text) {
		rv = append(rv, chunk.NewText(text[pos:]))
	}
	return rv
}

func sortSpans(spans []span) {
	// Insertion sort: span counts per string are small (rule matches per
	// value), and this keeps the package stdlib-only for a detail this
	// minor.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j-1].from > spans[j].from; j-- {
			spans[j-1], spans[j] = spans[j], spans[j-1]
		}
	}
}
