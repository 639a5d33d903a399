package protocol

import (
	"pii-sanitizer/meta"
	"pii-sanitizer/processor"
	"pii-sanitizer/value"
)

// Process walks ev's PII-bearing fields in place, applying eng's rules
// according to FieldAnnotations. This is the hand-written stand-in for the
// original's generated ProcessAnnotatedValue::process_annotated_value
// implementation on Event: every field that FieldAnnotations names is
// wired here explicitly, which means adding a new PII-bearing field to
// Event requires adding both the struct field and its entry here — a
// trade the spec's design notes accept in exchange for not depending on
// runtime reflection (spec.md §9).
func (ev *Event) Process(eng *processor.Engine) {
	if ev.User != nil {
		ev.User.Process(eng)
	}
	if ev.Request != nil {
		ev.Request.Process(eng)
	}
	if ev.Message != nil {
		ev.Message.Process(eng)
	}
	if ev.Template != nil {
		ev.Template.Process(eng)
	}
	for i, entry := range ev.Breadcrumbs.Values {
		v, ok := entry.Get()
		if !ok {
			continue
		}
		v.Process(eng)
		ev.Breadcrumbs.Values[i] = entry.SetValue(&v)
	}
	ev.Extra = eng.ProcessMap(ev.Extra, FieldAnnotations["extra"])
	ev.Tags = eng.ProcessMap(ev.Tags, FieldAnnotations["tags"])
}

// Process rewrites u's PII fields in place.
func (u *User) Process(eng *processor.Engine) {
	u.ID = eng.ProcessString(u.ID, FieldAnnotations["user.id"])
	u.Email = eng.ProcessString(u.Email, FieldAnnotations["user.email"])
	u.IPAddress = eng.ProcessString(u.IPAddress, FieldAnnotations["user.ip_address"])
	u.Username = eng.ProcessString(u.Username, FieldAnnotations["user.username"])
	u.Name = eng.ProcessString(u.Name, FieldAnnotations["user.name"])
	u.Extra = eng.ProcessMap(u.Extra, FieldAnnotations["user.extra"])
}

// Process rewrites r's PII fields in place.
func (r *Request) Process(eng *processor.Engine) {
	r.URL = eng.ProcessString(r.URL, FieldAnnotations["request.url"])
	r.QueryString = eng.ProcessString(r.QueryString, FieldAnnotations["request.query_string"])
	r.Cookies = eng.ProcessString(r.Cookies, FieldAnnotations["request.cookies"])
	r.Headers = eng.ProcessMap(r.Headers, FieldAnnotations["request.headers"])
	r.Env = eng.ProcessMap(r.Env, FieldAnnotations["request.env"])
	if _, ok := r.Data.Get(); ok {
		r.Data = eng.ProcessRoot(r.Data, FieldAnnotations["request.data"])
	}
}

// Process rewrites the LogEntry's message and params in place.
func (l *LogEntry) Process(eng *processor.Engine) {
	l.Message = eng.ProcessString(l.Message, FieldAnnotations["logentry.message"])
	l.Message2 = eng.ProcessString(l.Message2, FieldAnnotations["logentry.message"])
	if len(l.Params) > 0 {
		params := eng.ProcessRoot(meta.FromValue(value.OfArray(l.Params)), FieldAnnotations["logentry.params"])
		if v, ok := params.Get(); ok {
			l.Params = v.Array
		}
	}
}

// Process rewrites a breadcrumb's message and data in place.
func (b *Breadcrumb) Process(eng *processor.Engine) {
	b.Message = eng.ProcessString(b.Message, FieldAnnotations["breadcrumb.message"])
	b.Data = eng.ProcessMap(b.Data, FieldAnnotations["breadcrumb.data"])
}

// Process rewrites a template's context line in place. PreLines/PostLines
// carry source context too, and are processed with the context line's own
// annotation ("template.context_line").
func (t *TemplateInfo) Process(eng *processor.Engine) {
	t.ContextLine = eng.ProcessString(t.ContextLine, FieldAnnotations["template.context_line"])
	for i, line := range t.PreLines {
		t.PreLines[i] = eng.ProcessString(line, FieldAnnotations["template.context_line"])
	}
	for i, line := range t.PostLines {
		t.PostLines[i] = eng.ProcessString(line, FieldAnnotations["template.context_line"])
	}
}
