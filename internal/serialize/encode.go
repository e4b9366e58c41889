package serialize

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"

	"linguistica/internal/numeric"
)

// ErrUnserializableType is returned for values no encoding rule covers, such as
// channels, functions and non-finite floats. The wrapping error names the Go
// type and the JSON path of the offending value.
var ErrUnserializableType = errors.New("unserializable type")

const (
	indent   = "  "
	maxDepth = 1000
)

// Marshal returns the canonical JSON encoding of v without a trailing newline.
// Strings are written as UTF-8 without \u escapes for non-ASCII text; strings
// holding invalid UTF-8 are ErrUnserializableType.
func Marshal(v any) ([]byte, error) {
	tree, err := normalize(reflect.ValueOf(v), "$", 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(tree); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return rawLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})), nil
}

// rawLineSeparators undoes the \u2028 and \u2029 escapes encoding/json emits
// even with HTML escaping off. Escape sequences are consumed in pairs so an
// escaped backslash followed by "u2028" is left alone.
func rawLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' && string(data[i+2:i+5]) == "202" {
			switch data[i+5] {
			case '8':
				out = utf8.AppendRune(out, '\u2028')
				i += 5
				continue
			case '9':
				out = utf8.AppendRune(out, '\u2029')
				i += 5
				continue
			}
		}
		out = append(out, c)
		if i+1 < len(data) {
			i++
			out = append(out, data[i])
		}
	}
	return out
}

// Encode writes the canonical JSON encoding of v to w followed by a newline.
// The document is built in memory first, so nothing reaches w when encoding
// fails. Encode never closes w.
func Encode(w io.Writer, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// normalize converts v into a tree of nil, bool, string, numbers, []any,
// object and json.RawMessage that encoding/json writes deterministically.
func normalize(v reflect.Value, path string, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels at %s", ErrUnserializableType, maxDepth, path)
	}

	kind, v := classify(v)
	switch kind {
	case KindPrimitive:
		return primitive(v, path)
	case KindUnorderedSet:
		return normalizeSet(v, path, depth)
	case KindTuple:
		return normalizeList(v, path, depth)
	case KindNumericLike:
		return realPart(v, path)
	case KindMapping:
		if v.Kind() == reflect.Struct {
			return normalizeStruct(v, path, depth)
		}
		return normalizeMap(v, path, depth)
	case KindSequence:
		if v.IsNil() {
			return nil, nil
		}
		return normalizeList(v, path, depth)
	default:
		return nil, unsupported(v.Type(), path)
	}
}

func unsupported(t reflect.Type, path string) error {
	return fmt.Errorf("%w: %s at %s", ErrUnserializableType, t, path)
}

func primitive(v reflect.Value, path string) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil, nil
	}

	if v.Type().Implements(jsonMarshalerType) {
		raw, err := v.Interface().(json.Marshaler).MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal %s at %s: %w", v.Type(), path, err)
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("marshal %s at %s: invalid JSON output", v.Type(), path)
		}
		return json.RawMessage(raw), nil
	}
	if v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, fmt.Errorf("marshal %s at %s: %w", v.Type(), path, err)
		}
		if !utf8.Valid(text) {
			return nil, invalidUTF8(path)
		}
		return string(text), nil
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		if v.Type() == numberType {
			return json.Number(v.String()), nil
		}
		if !utf8.ValidString(v.String()) {
			return nil, invalidUTF8(path)
		}
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), nil
	case reflect.Float32:
		if err := checkFinite(v.Float(), path); err != nil {
			return nil, err
		}
		return float32(v.Float()), nil
	case reflect.Float64:
		if err := checkFinite(v.Float(), path); err != nil {
			return nil, err
		}
		return v.Float(), nil
	case reflect.Slice:
		// []byte keeps the base64 form encoding/json gives it
		if v.IsNil() {
			return nil, nil
		}
		return v.Bytes(), nil
	}
	return nil, unsupported(v.Type(), path)
}

func invalidUTF8(path string) error {
	return fmt.Errorf("%w: invalid UTF-8 in string at %s", ErrUnserializableType, path)
}

func checkFinite(f float64, path string) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: non-finite number %v at %s", ErrUnserializableType, f, path)
	}
	return nil
}

// realPart renders complex and numeric-like values as their real component.
func realPart(v reflect.Value, path string) (any, error) {
	var re float64
	switch v.Kind() {
	case reflect.Complex64:
		re = real(v.Complex())
		if err := checkFinite(re, path); err != nil {
			return nil, err
		}
		return float32(re), nil
	case reflect.Complex128:
		re = real(v.Complex())
	default:
		c, ok := numeric.Value(v.Interface())
		if !ok {
			return nil, unsupported(v.Type(), path)
		}
		re = real(c)
	}
	if err := checkFinite(re, path); err != nil {
		return nil, err
	}
	return re, nil
}

func normalizeList(v reflect.Value, path string, depth int) (any, error) {
	out := make([]any, v.Len())
	for i := range out {
		node, err := normalize(v.Index(i), path+"["+strconv.Itoa(i)+"]", depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = node
	}
	return out, nil
}
