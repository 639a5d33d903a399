// Package piikind carries the per-field PII classification attached to
// protocol struct fields (spec.md §4.5 and the original's
// #[process_annotated_value(pii_kind = ..., cap = ...)] field attributes).
// Go has no derive macros, so these annotations are expressed as entries of
// a table (protocol.FieldAnnotations) read by hand-written Process methods
// rather than generated ones.
package piikind

// Kind names the category of sensitive data a field may hold. Rule
// applications (rule/config.go) key off these names in the "applications"
// map of a RuleConfig (spec.md §6).
type Kind string

const (
	Freeform Kind = "freeform"
	IP       Kind = "ip"
	ID       Kind = "id"
	Username Kind = "username"
	Sensitive Kind = "sensitive"
	Name     Kind = "name"
	Email    Kind = "email"
	Databag  Kind = "databag"
)

// Cap names a field's role in the payload (spec.md §4.5). It is carried in
// ValueInfo and inherited through Derive, but the processor does not consult
// it when applying rules: a Summary-capped field is rewritten or removed by
// its kind's rules exactly like any other field.
type Cap string

const (
	CapSummary   Cap = "summary"
	CapMessage   Cap = "message"
	CapPath      Cap = "path"
	CapShortPath Cap = "short_path"
	CapDatabag   Cap = "databag"
)

// ValueInfo is the classification carried alongside a field as the
// processor descends into it. A nil PiiKind/Cap means "unclassified",
// inherited from the parent rather than stated at this node.
type ValueInfo struct {
	PiiKind *Kind
	Cap     *Cap
}

// Derive computes the ValueInfo a child node inherits from its parent and
// its own field-level annotation (if any). A Databag classification is
// hereditary: once a node is inside a databag, every descendant is a
// databag too unless overridden by its own explicit annotation — mirroring
// ValueInfo::derive in original_source/src/processor.rs.
func (v ValueInfo) Derive(child ValueInfo) ValueInfo {
	out := child

	if out.PiiKind == nil {
		if v.PiiKind != nil && *v.PiiKind == Databag {
			k := Databag
			out.PiiKind = &k
		} else {
			out.PiiKind = v.PiiKind
		}
	}

	if out.Cap == nil {
		if v.Cap != nil && *v.Cap == CapDatabag {
			c := CapDatabag
			out.Cap = &c
		} else {
			out.Cap = v.Cap
		}
	}

	return out
}

// KindOf and CapOf build a ValueInfo from plain values, for use in field
// annotations where a literal is easier to read than pointer plumbing.
func KindOf(k Kind) *Kind { return &k }
func CapOf(c Cap) *Cap    { return &c }

// Of builds a ValueInfo from optional kind/cap literals; either may be the
// zero value to mean "unannotated at this field".
func Of(k Kind, c Cap) ValueInfo {
	info := ValueInfo{}
	if k != "" {
		info.PiiKind = KindOf(k)
	}
	if c != "" {
		info.Cap = CapOf(c)
	}
	return info
}
