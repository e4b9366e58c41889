package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// punctuationMarks are padded in this order, one pass per mark.
const punctuationMarks = ".,;!?:)("

// PadPunctuation surrounds every punctuation mark in line with single spaces so
// that a whitespace tokenizer emits each mark as its own token. A side that
// already touches whitespace is left alone, so the function is idempotent and
// never stacks spaces on repeated application.
func PadPunctuation(line string) string {
	for i := 0; i < len(punctuationMarks); i++ {
		line = padMark(line, punctuationMarks[i])
	}
	return line
}

func padMark(line string, mark byte) string {
	if strings.IndexByte(line, mark) < 0 {
		return line
	}
	out := make([]byte, 0, len(line)+8)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != mark {
			out = append(out, c)
			continue
		}
		if len(out) == 0 || !isSpace(out[len(out)-1]) {
			out = append(out, ' ')
		}
		out = append(out, c)
		if i+1 >= len(line) || !isSpace(line[i+1]) {
			out = append(out, ' ')
		}
	}
	return string(out)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// NormalizeOptions controls NormalizeLine.
type NormalizeOptions struct {
	// NFC composes the line to Unicode normalization form C first.
	NFC bool
}

// NormalizeLine prepares one corpus line for tokenization.
func NormalizeLine(line string, opts NormalizeOptions) string {
	if opts.NFC {
		line = norm.NFC.String(line)
	}
	return PadPunctuation(line)
}

// Tokens pads punctuation in line and splits it on whitespace.
func Tokens(line string) []string {
	return strings.Fields(PadPunctuation(line))
}
