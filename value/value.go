// Package value implements the tagged-union payload model the sanitizer
// traverses: Null, Bool, signed/unsigned 32/64-bit numbers, Float32/64,
// String, Array, and Map, each carried inside a meta.Annotated node.
package value

import (
	"fmt"
	"sort"
	"strconv"

	"pii-sanitizer/meta"
)

// Kind discriminates which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindString
	KindArray
	KindMap
)

// Value is the tagged union described in spec.md §3. Exactly one of the
// typed fields is meaningful, selected by Kind; KindNull means "no
// payload, present but null" (as distinct from an absent Annotated).
type Value struct {
	Kind Kind

	Bool   bool
	I32    int32
	U32    uint32
	I64    int64
	U64    uint64
	F32    float32
	F64    float64
	String string
	Array  Array
	Map    Map
}

// Array is an ordered sequence of annotated values.
type Array []meta.Annotated[Value]

// Map is a string-keyed collection of annotated values. Iteration order for
// serialization is the sorted key order, matching the BTreeMap used by the
// original implementation (spec.md §3).
type Map map[string]meta.Annotated[Value]

// SortedKeys returns m's keys in ascending order.
func (m Map) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Null builds the null Value.
func Null() Value { return Value{Kind: KindNull} }

// Of* construct a Value of the named variant.
func OfBool(b bool) Value        { return Value{Kind: KindBool, Bool: b} }
func OfI32(v int32) Value        { return Value{Kind: KindI32, I32: v} }
func OfU32(v uint32) Value       { return Value{Kind: KindU32, U32: v} }
func OfI64(v int64) Value        { return Value{Kind: KindI64, I64: v} }
func OfU64(v uint64) Value       { return Value{Kind: KindU64, U64: v} }
func OfF32(v float32) Value      { return Value{Kind: KindF32, F32: v} }
func OfF64(v float64) Value      { return Value{Kind: KindF64, F64: v} }
func OfString(s string) Value    { return Value{Kind: KindString, String: s} }
func OfArray(a Array) Value      { return Value{Kind: KindArray, Array: a} }
func OfMap(m Map) Value          { return Value{Kind: KindMap, Map: m} }

// IsScalar reports whether this value is neither Array nor Map.
func (v Value) IsScalar() bool {
	return v.Kind != KindArray && v.Kind != KindMap
}

// Text renders the value's textual form, used by Redaction.Replace /
// Mask / Hash when they stringify a non-string scalar before rewriting it
// (spec.md §4.4).
func (v Value) Text() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindI32:
		return strconv.FormatInt(int64(v.I32), 10)
	case KindU32:
		return strconv.FormatUint(uint64(v.U32), 10)
	case KindI64:
		return strconv.FormatInt(v.I64, 10)
	case KindU64:
		return strconv.FormatUint(v.U64, 10)
	case KindF32:
		return strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
	case KindF64:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.String
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SameVariant reports whether two values share the same Kind — the check
// the processor's coerceKindMismatch makes (by comparing Kind directly) to
// decide whether a rule's scalar replacement must be coerced to null
// (spec.md §7 "type mismatch during scalar rewrite").
func (v Value) SameVariant(other Value) bool {
	return v.Kind == other.Kind
}
