package rule

import (
	"pii-sanitizer/meta"
	"pii-sanitizer/value"
)

// ApplyToValue rewrites a's whole value according to r's redaction, used by
// the processor when a Remove or RemovePair rule matches (spec.md §4.3/§4.4),
// mirroring original_source/src/rule.rs's replace_value/
// set_replacement_value: a RedactDefault redaction removes the value
// outright; Replace splices in the configured value verbatim; Mask/Hash
// stringify the current value first, same as a chunk-level rewrite would.
func (r *Rule) ApplyToValue(a meta.Annotated[value.Value]) meta.Annotated[value.Value] {
	note := r.makeNote()

	switch r.Redaction.Kind {
	case RedactReplace:
		m := a.Meta
		m.AddRemark(meta.NewRemark(note, meta.Replaced))
		return meta.New(r.Redaction.NewValue, m)

	case RedactMask, RedactHash:
		v, ok := a.Get()
		if !ok {
			return a.WithRemovedValue(meta.NewRemark(note, r.RemarkType()))
		}
		text := v.Text()
		replaced, err := r.Apply(text)
		m := a.Meta
		if err != nil {
			m.AddError(err.Error())
			return meta.New(v, m)
		}
		m.RecordLengthChange(len(text), len(replaced))
		m.AddRemark(meta.NewRemark(note, r.RemarkType()))
		return meta.New(value.OfString(replaced), m)

	default: // RedactDefault
		return a.WithRemovedValue(meta.NewRemark(note, meta.Removed))
	}
}
