// Package protocol defines the event payload the sanitizer redacts:
// a trimmed rendition of the original Sentry-style event schema
// (original_source/src/protocol/types.rs), expressed as value.Value trees
// with piikind annotations carried alongside each field rather than as
// derive-macro attributes, since Go has no equivalent macro facility.
package protocol

import (
	"time"

	"github.com/google/uuid"

	"pii-sanitizer/meta"
	"pii-sanitizer/piikind"
	"pii-sanitizer/value"
)

// Level is an event's severity, mirroring Sentry's level field.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

// LogEntry carries a log message in two forms plus its positional
// parameters (original_source/src/protocol/types.rs's LogEntry). Process
// treats both message strings as freeform text and the parameters as a
// databag.
type LogEntry struct {
	Message   meta.Annotated[string]
	Message2  meta.Annotated[string] // the rendered "message" field (cap: message)
	Params    value.Array
}

// User describes the affected user of an event. Every field here is
// classified in the FieldAnnotations table below.
type User struct {
	ID        meta.Annotated[string]
	Email     meta.Annotated[string]
	IPAddress meta.Annotated[string]
	Username  meta.Annotated[string]
	Name      meta.Annotated[string]
	Extra     value.Map
}

// Request describes the HTTP request, if any, that produced the event.
type Request struct {
	URL         meta.Annotated[string]
	Method      meta.Annotated[string]
	QueryString meta.Annotated[string]
	Cookies     meta.Annotated[string]
	Headers     value.Map
	Env         value.Map
	Data        meta.Annotated[value.Value]
}

// Breadcrumb is one entry in an event's trail of prior actions.
type Breadcrumb struct {
	Timestamp time.Time
	Type      meta.Annotated[string]
	Category  meta.Annotated[string]
	Level     Level
	Message   meta.Annotated[string]
	Data      value.Map
}

// TemplateInfo locates a templated-source-rendering error.
type TemplateInfo struct {
	Filename    meta.Annotated[string]
	AbsPath     meta.Annotated[string]
	Lineno      meta.Annotated[int32]
	PreLines    value.GenArray[string]
	ContextLine meta.Annotated[string]
	PostLines   value.GenArray[string]
}

// Event is the top-level payload the sanitizer processes.
type Event struct {
	ID        uuid.UUID
	Level     Level
	Message   *LogEntry
	User      *User
	Request   *Request
	Breadcrumbs value.Values[Breadcrumb]
	Template  *TemplateInfo
	Tags      value.Map
	Extra     value.Map
	Modules   value.GenMap[string]
	Fingerprint []string
}

// NewEvent builds an Event with a fresh random id, matching the original's
// event-id-always-present invariant.
func NewEvent() *Event {
	return &Event{ID: uuid.New(), Fingerprint: []string{"{{ default }}"}}
}

// FieldAnnotations documents, for each Event field that carries PII, the
// piikind.ValueInfo it should be processed with — the Go stand-in for the
// original's #[process_annotated_value(pii_kind = ..., cap = ...)]
// attributes. The traversal in pii-sanitizer/protocol/visit.go reads this
// table directly rather than reflecting over struct tags, since reflection
// would defeat the compile-time exhaustiveness a hand-written visitor gives
// us (spec.md §9's design notes).
var FieldAnnotations = map[string]piikind.ValueInfo{
	"user.id":                 piikind.Of(piikind.ID, piikind.CapSummary),
	"user.email":               piikind.Of(piikind.Email, piikind.CapSummary),
	"user.ip_address":          piikind.Of(piikind.IP, piikind.CapSummary),
	"user.username":            piikind.Of(piikind.Username, piikind.CapSummary),
	"user.name":                piikind.Of(piikind.Name, piikind.CapSummary),
	"user.extra":               piikind.Of(piikind.Databag, piikind.CapDatabag),
	"request.url":              piikind.Of(piikind.Freeform, piikind.CapSummary),
	"request.query_string":     piikind.Of(piikind.Freeform, piikind.CapSummary),
	"request.cookies":          piikind.Of(piikind.Sensitive, piikind.CapSummary),
	"request.headers":          piikind.Of(piikind.Databag, piikind.CapDatabag),
	"request.env":              piikind.Of(piikind.Databag, piikind.CapDatabag),
	"request.data":             piikind.Of(piikind.Databag, piikind.CapDatabag),
	"logentry.message":         piikind.Of(piikind.Freeform, piikind.CapMessage),
	"logentry.params":          piikind.Of(piikind.Databag, piikind.CapDatabag),
	"breadcrumb.message":       piikind.Of(piikind.Freeform, piikind.CapMessage),
	"breadcrumb.data":          piikind.Of(piikind.Databag, piikind.CapDatabag),
	"template.context_line":    piikind.Of(piikind.Freeform, piikind.CapShortPath),
	"extra":                    piikind.Of(piikind.Databag, piikind.CapDatabag),
	"tags":                     piikind.Of(piikind.Sensitive, piikind.CapSummary),
}
