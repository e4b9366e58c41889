package serialize

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"

	"linguistica/internal/numeric"
)

// Kind is the encoding rule chosen for a value.
type Kind int

// Kinds in the order they are tried.
const (
	KindPrimitive Kind = iota
	KindUnorderedSet
	KindTuple
	KindNumericLike
	KindMapping
	KindSequence
	KindUnsupported
)

var kindNames = [...]string{
	KindPrimitive:    "primitive",
	KindUnorderedSet: "unordered set",
	KindTuple:        "tuple",
	KindNumericLike:  "numeric-like",
	KindMapping:      "mapping",
	KindSequence:     "sequence",
	KindUnsupported:  "unsupported",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// UnorderedSet is implemented by collections whose members have no meaningful
// order. They are written as a JSON array sorted by member value.
type UnorderedSet interface {
	Members() []any
}

// Set is a generic unordered set.
type Set[T comparable] map[T]struct{}

// NewSet returns a set holding items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	s.Add(items...)
	return s
}

// Add inserts items into s.
func (s Set[T]) Add(items ...T) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

// Has reports whether item is in s.
func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Members returns the members of s in no particular order.
func (s Set[T]) Members() []any {
	out := make([]any, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	return out
}

// Tuple is a fixed sequence whose element order is significant. Go arrays are
// treated the same way.
type Tuple []any

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	unorderedSetType  = reflect.TypeFor[UnorderedSet]()
	stringerType      = reflect.TypeFor[fmt.Stringer]()
	tupleType         = reflect.TypeFor[Tuple]()
	numberType        = reflect.TypeFor[json.Number]()
)

// Classify reports the rule Marshal applies to v at the top level.
func Classify(v any) Kind {
	kind, _ := classify(reflect.ValueOf(v))
	return kind
}

// classify resolves v to exactly one Kind. Pointers and interfaces are looked
// through unless they carry a marshaler, a set implementation or a numeric
// String method themselves.
func classify(v reflect.Value) (Kind, reflect.Value) {
	for {
		if !v.IsValid() {
			return KindPrimitive, v
		}
		if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
			return KindPrimitive, v
		}
		if implementsMarshaler(v.Type()) {
			return KindPrimitive, v
		}
		if v.Type().Implements(unorderedSetType) {
			return KindUnorderedSet, v
		}
		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
			break
		}
		if v.Kind() == reflect.Pointer && !isPrimitiveKind(v.Type().Elem().Kind()) && isNumericStringer(v) {
			return KindNumericLike, v
		}
		v = v.Elem()
	}

	t := v.Type()
	if isPrimitiveKind(t.Kind()) {
		return KindPrimitive, v
	}

	if isStructSetMap(t) {
		return KindUnorderedSet, v
	}
	if t == tupleType || t.Kind() == reflect.Array {
		return KindTuple, v
	}
	if t.Kind() == reflect.Complex64 || t.Kind() == reflect.Complex128 {
		return KindNumericLike, v
	}
	if isNumericStringer(v) {
		return KindNumericLike, v
	}

	switch t.Kind() {
	case reflect.Map, reflect.Struct:
		return KindMapping, v
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindPrimitive, v
		}
		return KindSequence, v
	}
	return KindUnsupported, v
}

func isPrimitiveKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isNumericStringer(v reflect.Value) bool {
	return v.Type().Implements(stringerType) && v.CanInterface() && numeric.IsNumericLike(v.Interface())
}

func implementsMarshaler(t reflect.Type) bool {
	return t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType)
}

// isStructSetMap matches map[K]struct{}.
func isStructSetMap(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}
