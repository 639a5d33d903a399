// Package chunk implements the chunked string model (spec.md §4.1): an
// ordered sequence of Text and Redaction runs whose concatenation is a
// string's current surface form, plus the two total functions that convert
// between a flat string+Meta and a Chunk sequence.
package chunk

import (
	"unicode/utf8"

	"pii-sanitizer/meta"
)

// Kind discriminates a Chunk's two variants.
type Kind int

const (
	Text Kind = iota
	Redaction
)

// Chunk is either an unmodified Text run or a Redaction run produced by a
// rule. Redaction chunks additionally carry the rule id and remark type
// that produced them, so chunks_to can re-emit a Remark for each.
type Chunk struct {
	Kind       Kind
	Value      string
	RuleID     string        // meaningful only for Kind == Redaction
	RemarkType meta.RemarkType // meaningful only for Kind == Redaction
}

// NewText builds a Text chunk.
func NewText(s string) Chunk { return Chunk{Kind: Text, Value: s} }

// NewRedaction builds a Redaction chunk.
func NewRedaction(s, ruleID string, ty meta.RemarkType) Chunk {
	return Chunk{Kind: Redaction, Value: s, RuleID: ruleID, RemarkType: ty}
}

// Len returns the byte length of the chunk's surface text.
func (c Chunk) Len() int { return len(c.Value) }

// FromString walks m.Remarks in order, splitting text into alternating
// Text/Redaction chunks around each ranged remark. Remarks without a range
// are ignored here — they carry no positional information to chunk around.
//
// If a remark's range is out of bounds, or its endpoints do not land on a
// UTF-8 rune boundary (a straddling range is a configuration/programmer
// error — spec.md §9), the walk stops silently at that remark: that remark
// and every later one produce no Redaction chunk, and all text from the end
// of the last accepted remark onward is returned as one trailing Text chunk.
func FromString(text string, m meta.Meta) []Chunk {
	var rv []Chunk
	pos := 0

	for _, remark := range m.Remarks {
		if remark.Range == nil {
			continue
		}
		from, to := remark.Range.From, remark.Range.To

		if from < pos || to < from || to > len(text) {
			break
		}
		if !validBoundary(text, from) || !validBoundary(text, to) {
			break
		}

		if from > pos {
			rv = append(rv, NewText(text[pos:from]))
		}
		rv = append(rv, NewRedaction(text[from:to], remark.Note.RuleID, remark.Type))
		pos = to
	}

	if pos < len(text) {
		rv = append(rv, NewText(text[pos:]))
	}

	return rv
}

// validBoundary reports whether byte offset i in text sits on a UTF-8 rune
// boundary (true trivially at the string's start and end).
func validBoundary(text string, i int) bool {
	if i == 0 || i == len(text) {
		return true
	}
	if i < 0 || i > len(text) {
		return false
	}
	return utf8.RuneStart(text[i])
}

// ToString concatenates chunks into a string and places a fresh Remark in
// meta for each Redaction chunk, replacing meta.Remarks wholesale. All other
// meta fields pass through untouched. ToString(FromString(s, m), m) is the
// identity on s and on the rule ids, types and ranges of m's
// ranged-in-bounds remarks (spec.md §4.1 invariant); the rebuilt remarks'
// note text is empty, since chunks do not carry it.
func ToString(chunks []Chunk, m meta.Meta) (string, meta.Meta) {
	var out []byte
	var remarks []meta.Remark
	pos := 0

	for _, c := range chunks {
		newPos := pos + c.Len()
		out = append(out, c.Value...)
		if c.Kind == Redaction {
			remarks = append(remarks, meta.NewRangedRemark(meta.NewNote(c.RuleID, ""), c.RemarkType, pos, newPos))
		}
		pos = newPos
	}

	m.Remarks = remarks
	return string(out), m
}
