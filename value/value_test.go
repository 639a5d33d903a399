package value

import (
	"testing"

	"pii-sanitizer/meta"
)

func TestTextStringifiesScalars(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{OfBool(true), "true"},
		{OfBool(false), "false"},
		{OfI64(-42), "-42"},
		{OfU64(42), "42"},
		{OfString("hi"), "hi"},
		{Null(), ""},
	}
	for _, c := range cases {
		if got := c.v.Text(); got != c.want {
			t.Errorf("Text() = %q, want %q", got, c.want)
		}
	}
}

func TestIsScalar(t *testing.T) {
	if !OfString("x").IsScalar() {
		t.Errorf("string should be scalar")
	}
	if OfArray(Array{}).IsScalar() {
		t.Errorf("array should not be scalar")
	}
	if OfMap(Map{}).IsScalar() {
		t.Errorf("map should not be scalar")
	}
}

func TestSameVariant(t *testing.T) {
	if !OfI64(1).SameVariant(OfI64(2)) {
		t.Errorf("two I64 values should share a variant")
	}
	if OfI64(1).SameVariant(OfString("1")) {
		t.Errorf("I64 and String should not share a variant")
	}
}

func TestMapSortedKeys(t *testing.T) {
	m := Map{"b": meta.FromValue(OfI64(2)), "a": meta.FromValue(OfI64(1))}
	keys := m.SortedKeys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("expected sorted [a b], got %v", keys)
	}
}
