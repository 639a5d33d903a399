// Package meta implements the annotated value model: every scalar or
// container in a sanitized payload is paired with a Meta record describing
// what the engine did to it.
package meta

// RemarkType classifies how a Remark's substring was produced.
type RemarkType int

const (
	// Masked indicates the substring was produced by the Mask redaction
	// or carries no further detail (the zero value).
	Masked RemarkType = iota
	// Replaced indicates the substring was produced by the Replace redaction.
	Replaced
	// Hashed indicates the substring was produced by the Hash redaction.
	Hashed
	// Removed indicates the value (or field) was removed entirely.
	Removed
	// Pseudonymized is reserved for future redaction methods; unused by the
	// built-in rule set but kept so RemarkType round-trips through JSON for
	// methods a deploying configuration may add out of band.
	Pseudonymized
)

func (t RemarkType) String() string {
	switch t {
	case Masked:
		return "masked"
	case Replaced:
		return "replaced"
	case Hashed:
		return "hashed"
	case Removed:
		return "removed"
	case Pseudonymized:
		return "pseudonymized"
	default:
		return "masked"
	}
}

// Range is a half-open byte interval [From, To) into the redacted string
// identifying which substring a rule produced. Ranges are only meaningful
// for string nodes.
type Range struct {
	From int
	To   int
}

// Note identifies the rule that produced a Remark and optionally carries a
// human-readable explanation (RuleSpec.note).
type Note struct {
	RuleID string
	Text   string // empty when the rule carries no note
}

// NewNote builds a Note with an explanatory text.
func NewNote(ruleID, text string) Note {
	return Note{RuleID: ruleID, Text: text}
}

// WellKnownNote builds a Note for a rule that carries no note text.
func WellKnownNote(ruleID string) Note {
	return Note{RuleID: ruleID}
}

// Remark records one modification a rule made to a value.
type Remark struct {
	Note  Note
	Type  RemarkType
	Range *Range // nil when the remark does not identify a byte range
}

// NewRemark builds a rangeless Remark (used for whole-value replacements).
func NewRemark(note Note, ty RemarkType) Remark {
	return Remark{Note: note, Type: ty}
}

// NewRangedRemark builds a Remark with an explicit byte range.
func NewRangedRemark(note Note, ty RemarkType, from, to int) Remark {
	r := from
	_ = r
	rng := Range{From: from, To: to}
	return Remark{Note: note, Type: ty, Range: &rng}
}

// Meta carries the remark trail, parse errors, and bookkeeping fields for
// one Annotated node.
type Meta struct {
	Remarks        []Remark
	Errors         []string
	OriginalLength *int
	Path           *string
}

// AddRemark appends a remark to the meta in place.
func (m *Meta) AddRemark(r Remark) {
	m.Remarks = append(m.Remarks, r)
}

// AddError appends a parse error message.
func (m *Meta) AddError(msg string) {
	m.Errors = append(m.Errors, msg)
}

// SetOriginalLength records preLen iff it has not already been recorded.
// This implements spec.md's invariant 3: original_length is set only once,
// the first time a string's byte length changes.
func (m *Meta) SetOriginalLength(preLen int) {
	if m.OriginalLength == nil {
		v := preLen
		m.OriginalLength = &v
	}
}

// RecordLengthChange sets OriginalLength iff postLen != preLen and it has
// not already been recorded. Centralizes the repeated preLen/postLen check
// used throughout the processor and rule engine.
func (m *Meta) RecordLengthChange(preLen, postLen int) {
	if preLen != postLen {
		m.SetOriginalLength(preLen)
	}
}

// SetPath sets the dotted key path used by key-sensitive rules (RemovePair).
func (m *Meta) SetPath(path string) {
	m.Path = &path
}

// WithRemovedValue appends a remark explaining why a value was removed.
// Every Annotated that transitions to an absent value must carry such a
// remark (spec.md §3 invariant).
func (m Meta) WithRemovedValue(r Remark) Meta {
	m.Remarks = append(append([]Remark{}, m.Remarks...), r)
	return m
}

// IsEmpty reports whether this Meta carries no information at all — the
// default/zero state described in spec.md §3.
func (m Meta) IsEmpty() bool {
	return len(m.Remarks) == 0 && len(m.Errors) == 0 && m.OriginalLength == nil && m.Path == nil
}

// FromError builds a Meta carrying a single parse error, used when a field
// fails to deserialize and its Annotated value becomes absent.
func FromError(msg string) Meta {
	return Meta{Errors: []string{msg}}
}
