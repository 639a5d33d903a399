package value

import (
	"sort"

	"pii-sanitizer/meta"
)

// Generic containers, mirroring original_source's common::{Array<T>, Map<T>,
// Values<T>} used throughout the protocol package for homogeneous lists and
// key/value bags whose element type is not Value itself (e.g. Array[string]
// for TemplateInfo.PreLines, Map[string] for Event.Modules).

// GenArray is an ordered sequence of annotated values of element type T.
type GenArray[T any] []meta.Annotated[T]

// GenMap is a string-keyed collection of annotated values of element type T.
// Key order for serialization is sorted ascending, matching the BTreeMap
// used by the original Rust implementation.
type GenMap[T any] map[string]meta.Annotated[T]

// SortedKeys returns m's keys in ascending order.
func SortedKeys[T any](m GenMap[T]) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values pairs a homogeneous array with an "other" bag of unrecognized
// fields for forwards compatibility — used by Event.Breadcrumbs
// (Values[Breadcrumb]) in the protocol package.
type Values[T any] struct {
	Values GenArray[T]
	Other  GenMap[Value]
}
