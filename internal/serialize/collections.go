package serialize

import (
	"bytes"
	"cmp"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// member is one key of a JSON object.
type member struct {
	key   string
	value any
}

// object is a JSON object whose members are already in output order.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeCompact(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := encodeCompact(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeCompact encodes a normalized node on one line without HTML escaping.
func encodeCompact(node any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(node); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Ranks order values of different JSON types inside sets and among map keys.
const (
	rankNull = iota
	rankBool
	rankNumber
	rankString
	rankArray
	rankObject
	rankOther
)

// sortKey is the comparable form of a set member or map key.
type sortKey struct {
	rank  int
	flag  bool
	num   float64
	text  string
	canon string
}

func compareSortKeys(a, b sortKey) int {
	if c := cmp.Compare(a.rank, b.rank); c != 0 {
		return c
	}
	switch a.rank {
	case rankBool:
		if a.flag != b.flag {
			if a.flag {
				return 1
			}
			return -1
		}
	case rankNumber:
		if c := cmp.Compare(a.num, b.num); c != 0 {
			return c
		}
	case rankString:
		if c := strings.Compare(a.text, b.text); c != 0 {
			return c
		}
	}
	return strings.Compare(a.canon, b.canon)
}

func nodeSortKey(node any) (sortKey, error) {
	canon, err := encodeCompact(node)
	if err != nil {
		return sortKey{}, err
	}
	key := sortKey{rank: rankOther, canon: string(canon)}
	switch n := node.(type) {
	case nil:
		key.rank = rankNull
	case bool:
		key.rank, key.flag = rankBool, n
	case int64:
		key.rank, key.num = rankNumber, float64(n)
	case uint64:
		key.rank, key.num = rankNumber, float64(n)
	case float32:
		key.rank, key.num = rankNumber, float64(n)
	case float64:
		key.rank, key.num = rankNumber, n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return sortKey{}, err
		}
		key.rank, key.num = rankNumber, f
	case string:
		key.rank, key.text = rankString, n
	case []any:
		key.rank = rankArray
	case object:
		key.rank = rankObject
	}
	return key, nil
}

func normalizeSet(v reflect.Value, path string, depth int) (any, error) {
	var members []reflect.Value
	if set, ok := v.Interface().(UnorderedSet); ok {
		for _, m := range set.Members() {
			members = append(members, reflect.ValueOf(m))
		}
	} else {
		members = v.MapKeys()
	}

	type entry struct {
		node any
		key  sortKey
	}
	entries := make([]entry, 0, len(members))
	memberPath := path + "{}"
	for _, m := range members {
		node, err := normalize(m, memberPath, depth+1)
		if err != nil {
			return nil, err
		}
		key, err := nodeSortKey(node)
		if err != nil {
			return nil, fmt.Errorf("encode set member at %s: %w", memberPath, err)
		}
		entries = append(entries, entry{node: node, key: key})
	}
	slices.SortFunc(entries, func(a, b entry) int { return compareSortKeys(a.key, b.key) })

	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e.node
	}
	return out, nil
}

func normalizeMap(v reflect.Value, path string, depth int) (any, error) {
	if v.IsNil() {
		return nil, nil
	}

	type entry struct {
		member
		key sortKey
	}
	entries := make([]entry, 0, v.Len())
	seen := make(map[string]struct{}, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key(), path)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key.text]; dup {
			return nil, fmt.Errorf("%w: map keys collide on %q at %s", ErrUnserializableType, key.text, path)
		}
		seen[key.text] = struct{}{}
		value, err := normalize(iter.Value(), path+"."+key.text, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{member: member{key: key.text, value: value}, key: key})
	}
	slices.SortFunc(entries, func(a, b entry) int { return compareSortKeys(a.key, b.key) })

	out := make(object, len(entries))
	for i, e := range entries {
		out[i] = e.member
	}
	return out, nil
}

// mapKey renders a map key as JSON object key text. Integer keys sort
// numerically, everything else by its text.
func mapKey(k reflect.Value, path string) (sortKey, error) {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		if !utf8.ValidString(k.String()) {
			return sortKey{}, invalidUTF8(path)
		}
		return sortKey{rank: rankString, text: k.String(), canon: k.String()}, nil
	}
	if k.Type().Implements(textMarshalerType) {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return sortKey{rank: rankString}, nil
		}
		text, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return sortKey{}, fmt.Errorf("marshal map key %s at %s: %w", k.Type(), path, err)
		}
		if !utf8.Valid(text) {
			return sortKey{}, invalidUTF8(path)
		}
		return sortKey{rank: rankString, text: string(text), canon: string(text)}, nil
	}
	switch k.Kind() {
	case reflect.Bool:
		text := strconv.FormatBool(k.Bool())
		return sortKey{rank: rankBool, flag: k.Bool(), text: text, canon: text}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		text := strconv.FormatInt(k.Int(), 10)
		return sortKey{rank: rankNumber, num: float64(k.Int()), text: text, canon: text}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		text := strconv.FormatUint(k.Uint(), 10)
		return sortKey{rank: rankNumber, num: float64(k.Uint()), text: text, canon: text}, nil
	}
	return sortKey{}, fmt.Errorf("%w: map key %s at %s", ErrUnserializableType, k.Type(), path)
}

// field is an exported struct field as encoding/json would name it.
type field struct {
	name      string
	index     []int
	omitEmpty bool
	omitZero  bool
}

var fieldCache sync.Map // map[reflect.Type][]field

func cachedFields(t reflect.Type) []field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]field)
	}
	f, _ := fieldCache.LoadOrStore(t, collectFields(t, map[reflect.Type]bool{}))
	return f.([]field)
}

// collectFields follows the encoding/json tag rules: a tag name renames the
// field, "-" drops it, omitempty and omitzero skip empty values, and untagged
// embedded structs contribute their fields unless an outer field has the name.
func collectFields(t reflect.Type, visiting map[reflect.Type]bool) []field {
	visiting[t] = true
	defer delete(visiting, t)

	var direct, promoted []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if sf.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			if !sf.IsExported() || visiting[ft] {
				continue
			}
			for _, inner := range collectFields(ft, visiting) {
				inner.index = append([]int{i}, inner.index...)
				promoted = append(promoted, inner)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		direct = append(direct, field{
			name:      name,
			index:     []int{i},
			omitEmpty: hasOption(opts, "omitempty"),
			omitZero:  hasOption(opts, "omitzero"),
		})
	}

	seen := make(map[string]bool, len(direct))
	for _, f := range direct {
		seen[f.name] = true
	}
	for _, f := range promoted {
		if seen[f.name] {
			continue
		}
		seen[f.name] = true
		direct = append(direct, f)
	}
	return direct
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

func normalizeStruct(v reflect.Value, path string, depth int) (any, error) {
	fields := cachedFields(v.Type())
	out := make(object, 0, len(fields))
	for _, f := range fields {
		fv, err := v.FieldByIndexErr(f.index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		if (f.omitEmpty && isEmptyValue(fv)) || (f.omitZero && fv.IsZero()) {
			continue
		}
		node, err := normalize(fv, path+"."+f.name, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, member{key: f.name, value: node})
	}
	slices.SortFunc(out, func(a, b member) int { return strings.Compare(a.key, b.key) })
	return out, nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
