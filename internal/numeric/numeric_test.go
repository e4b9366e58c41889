package numeric_test

import (
	"math"
	"math/cmplx"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linguistica/internal/numeric"
)

func TestParseAccepts(t *testing.T) {
	tests := map[string]complex128{
		"3":          3,
		" -2.5 ":     -2.5,
		"1e3":        1000,
		".5":         0.5,
		"3+2j":       3 + 2i,
		"(3+2J)":     3 + 2i,
		" ( 1-4j ) ": 1 - 4i,
		"2j":         2i,
		"j":          1i,
		"-j":         -1i,
		"1+j":        1 + 1i,
		"7i":         7i,
		"1_000":      1000,
		"1_0.2_5":    10.25,
	}
	for input, want := range tests {
		got, ok := numeric.Parse(input)
		if assert.Truef(t, ok, "Parse(%q) rejected", input) {
			assert.Equalf(t, want, got, "Parse(%q)", input)
		}
	}
}

func TestParseSpecialValues(t *testing.T) {
	got, ok := numeric.Parse("inf")
	assert.True(t, ok)
	assert.True(t, math.IsInf(real(got), 1))

	got, ok = numeric.Parse("-Infinity")
	assert.True(t, ok)
	assert.True(t, math.IsInf(real(got), -1))

	got, ok = numeric.Parse("nan")
	assert.True(t, ok)
	assert.True(t, cmplx.IsNaN(got))

	got, ok = numeric.Parse("infj")
	assert.True(t, ok)
	assert.True(t, math.IsInf(imag(got), 1))
}

func TestParseOutOfRangeIsInfinite(t *testing.T) {
	got, ok := numeric.Parse("1e500")
	assert.True(t, ok)
	assert.True(t, math.IsInf(real(got), 1))

	got, ok = numeric.Parse("-1e500")
	assert.True(t, ok)
	assert.True(t, math.IsInf(real(got), -1))

	got, ok = numeric.Parse("2-1e999j")
	assert.True(t, ok)
	assert.Equal(t, 2.0, real(got))
	assert.True(t, math.IsInf(imag(got), -1))

	assert.True(t, numeric.IsNumericLike("1e500"))
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{
		"", "   ", "()", "abc", "1 + 2j", "3+", "0x1p-2", "_1", "1_", "1__0", "((1))", "1+2k", "--1",
	} {
		_, ok := numeric.Parse(input)
		assert.Falsef(t, ok, "Parse(%q) accepted", input)
	}
}

type ratio struct{ text string }

func (r ratio) String() string { return r.text }

func TestIsNumericLike(t *testing.T) {
	assert.True(t, numeric.IsNumericLike(42))
	assert.True(t, numeric.IsNumericLike(uint8(7)))
	assert.True(t, numeric.IsNumericLike(float32(1.5)))
	assert.True(t, numeric.IsNumericLike(complex64(1+1i)))
	assert.True(t, numeric.IsNumericLike(true))
	assert.True(t, numeric.IsNumericLike("2.5e-3"))
	assert.True(t, numeric.IsNumericLike(ratio{"0.75"}))
	assert.True(t, numeric.IsNumericLike(time.Second))

	assert.False(t, numeric.IsNumericLike(nil))
	assert.False(t, numeric.IsNumericLike("three"))
	assert.False(t, numeric.IsNumericLike(ratio{"3/4"}))
	assert.False(t, numeric.IsNumericLike([]int{1}))
	assert.False(t, numeric.IsNumericLike(struct{}{}))
	assert.False(t, numeric.IsNumericLike((*ratio)(nil)))
}

func TestValueReturnsParsedNumber(t *testing.T) {
	got, ok := numeric.Value(ratio{"(3+2j)"})
	assert.True(t, ok)
	assert.Equal(t, 3.0, real(got))
	assert.Equal(t, 2.0, imag(got))
}
