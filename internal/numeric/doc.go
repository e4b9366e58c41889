// Package numeric classifies values that can be read as real or complex
// numbers. The serializer uses it to decide whether an unfamiliar scalar should
// be written as a number.
package numeric
