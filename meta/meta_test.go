package meta

import "testing"

func TestAddRemarkAndError(t *testing.T) {
	var m Meta
	m.AddRemark(NewRemark(NewNote("@email:mask", "potential email address"), Masked))
	m.AddError("boom")

	if len(m.Remarks) != 1 {
		t.Fatalf("expected 1 remark, got %d", len(m.Remarks))
	}
	if m.Remarks[0].Note.RuleID != "@email:mask" {
		t.Errorf("unexpected rule id: %s", m.Remarks[0].Note.RuleID)
	}
	if len(m.Errors) != 1 || m.Errors[0] != "boom" {
		t.Errorf("unexpected errors: %v", m.Errors)
	}
}

func TestRecordLengthChange(t *testing.T) {
	var m Meta
	m.RecordLengthChange(5, 3)
	if m.OriginalLength == nil || *m.OriginalLength != 5 {
		t.Fatalf("expected original length 5, got %v", m.OriginalLength)
	}

	var unchanged Meta
	unchanged.RecordLengthChange(5, 5)
	if unchanged.OriginalLength != nil {
		t.Errorf("expected no original length recorded when unchanged, got %v", unchanged.OriginalLength)
	}
}

func TestIsEmpty(t *testing.T) {
	var m Meta
	if !m.IsEmpty() {
		t.Errorf("zero Meta should be empty")
	}
	m.AddError("x")
	if m.IsEmpty() {
		t.Errorf("Meta with an error should not be empty")
	}
}

func TestAnnotatedWithRemovedValue(t *testing.T) {
	a := FromValue("secret")
	remark := NewRemark(NewNote("@email:mask", ""), Removed)
	removed := a.WithRemovedValue(remark)

	if removed.Present() {
		t.Errorf("expected value removed")
	}
	if len(removed.Meta.Remarks) != 1 {
		t.Fatalf("expected 1 remark after removal, got %d", len(removed.Meta.Remarks))
	}
}

func TestAnnotatedMap(t *testing.T) {
	a := FromValue(2)
	doubled := Map(a, func(v int) int { return v * 2 })
	v, ok := doubled.Get()
	if !ok || v != 4 {
		t.Fatalf("expected 4, got %v (present=%v)", v, ok)
	}

	absent := Absent[int](Meta{})
	mapped := Map(absent, func(v int) int { return v * 2 })
	if mapped.Present() {
		t.Errorf("mapping an absent Annotated should stay absent")
	}
}
