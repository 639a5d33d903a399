package value

import (
	"testing"

	"pii-sanitizer/meta"
)

func TestFromJSONRoundTrip(t *testing.T) {
	in := []byte(`{"name":"a","count":3,"tags":["x","y"],"active":true,"meta":null}`)

	root, err := FromJSON(in)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	v, ok := root.Get()
	if !ok || v.Kind != KindMap {
		t.Fatalf("expected a map at root, got %+v", v)
	}

	name, ok := v.Map["name"].Get()
	if !ok || name.Kind != KindString || name.String != "a" {
		t.Fatalf("unexpected name field: %+v", name)
	}

	count, ok := v.Map["count"].Get()
	if !ok || count.Kind != KindI64 || count.I64 != 3 {
		t.Fatalf("unexpected count field: %+v", count)
	}

	out, err := ToJSON(root)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if len(out) == 0 {
		t.Errorf("expected non-empty JSON output")
	}
}

func TestToJSONRemovedValueRendersNull(t *testing.T) {
	absent := meta.Absent[Value](meta.Meta{})
	out, err := ToJSON(absent)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("expected null, got %s", out)
	}
}
