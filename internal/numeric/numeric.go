package numeric

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Parse reads s as a real or complex literal. Surrounding whitespace and one
// pair of enclosing parentheses are allowed, the imaginary unit may be written
// j, J or i, and underscores may separate digits. Hexadecimal literals are
// rejected. Literals beyond the float64 range read as infinities. Parse never
// panics; ok reports whether s was a number.
func Parse(s string) (value complex128, ok bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || strings.ContainsAny(s, "xX()") {
		return 0, false
	}

	s, ok = stripUnderscores(s)
	if !ok {
		return 0, false
	}

	switch last := s[len(s)-1]; last {
	case 'j', 'J':
		s = s[:len(s)-1] + "i"
	}
	// a bare imaginary unit means 1i
	switch s {
	case "i", "+i":
		s = "1i"
	case "-i":
		s = "-1i"
	}
	if strings.HasSuffix(s, "+i") || strings.HasSuffix(s, "-i") {
		s = s[:len(s)-1] + "1i"
	}

	// out of range literals read as signed infinities
	c, err := strconv.ParseComplex(s, 128)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return c, true
}

// stripUnderscores removes digit separators. An underscore must sit between two
// decimal digits.
func stripUnderscores(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Value returns v as a complex number when v is numeric-like. Strings are
// parsed, Go numeric kinds convert directly, booleans count as 0 and 1, and
// fmt.Stringer values are parsed through their String method.
func Value(v any) (complex128, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case string:
		return Parse(t)
	case complex128:
		return t, true
	case float64:
		return complex(t, 0), true
	case int:
		return complex(float64(t), 0), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return complex(float64(rv.Int()), 0), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return complex(float64(rv.Uint()), 0), true
	case reflect.Float32, reflect.Float64:
		return complex(rv.Float(), 0), true
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex(), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}

	if s, ok := v.(fmt.Stringer); ok {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return 0, false
		}
		return Parse(s.String())
	}
	if rv.Kind() == reflect.String {
		return Parse(rv.String())
	}
	return 0, false
}

// IsNumericLike reports whether v can be read as a real or complex number.
func IsNumericLike(v any) bool {
	_, ok := Value(v)
	return ok
}
