package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"pii-sanitizer/meta"
)

// FromJSON decodes arbitrary JSON into a Value tree, the entry point for
// the /sanitize HTTP endpoint, which accepts any JSON document rather than
// requiring callers to shape it as a protocol.Event.
func FromJSON(data []byte) (meta.Annotated[Value], error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return meta.Annotated[Value]{}, fmt.Errorf("value: decoding JSON: %w", err)
	}
	return meta.FromValue(fromAny(raw)), nil
}

func fromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case bool:
		return OfBool(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return OfI64(i)
		}
		f, _ := t.Float64()
		return OfF64(f)
	case string:
		return OfString(t)
	case []any:
		arr := make(Array, 0, len(t))
		for _, elem := range t {
			arr = append(arr, meta.FromValue(fromAny(elem)))
		}
		return OfArray(arr)
	case map[string]any:
		m := make(Map, len(t))
		for k, v := range t {
			m[k] = meta.FromValue(fromAny(v))
		}
		return OfMap(m)
	default:
		return Null()
	}
}

// ToJSON renders a Value tree back to its JSON form. Absent Annotated
// nodes (removed by a rule) are rendered as null, preserving their slot so
// array indices and object key sets remain stable for callers that keep
// their own offsets into the original payload.
func ToJSON(a meta.Annotated[Value]) ([]byte, error) {
	return json.Marshal(toAny(a))
}

// FromAny converts a single decoded JSON scalar (nil, bool, json.Number,
// string, or a nested []any/map[string]any) into a Value. rule.Redaction's
// newValue field uses this to hold an arbitrary JSON scalar read off the
// wire (spec.md §6), rather than being limited to string replacements.
func FromAny(raw any) Value {
	return fromAny(raw)
}

// ToAny renders v back to the plain Go value json.Marshal expects, the
// inverse of FromAny.
func ToAny(v Value) any {
	return valueToAny(v)
}

func toAny(a meta.Annotated[Value]) any {
	v, ok := a.Get()
	if !ok {
		return nil
	}
	return valueToAny(v)
}

func valueToAny(v Value) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindI32:
		return v.I32
	case KindU32:
		return v.U32
	case KindI64:
		return v.I64
	case KindU64:
		return v.U64
	case KindF32:
		return v.F32
	case KindF64:
		return v.F64
	case KindString:
		return v.String
	case KindArray:
		out := make([]any, len(v.Array))
		for i, elem := range v.Array {
			out[i] = toAny(elem)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.Map))
		keys := v.Map.SortedKeys()
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = toAny(v.Map[k])
		}
		return out
	default:
		return nil
	}
}
