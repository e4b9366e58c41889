// Package serialize writes analysis results as canonical JSON.
//
// The output is a deterministic function of the value's content: mapping keys
// are sorted, set members are ordered by value, indentation is two spaces and
// non-ASCII text is written verbatim. On top of what encoding/json supports the
// encoder understands unordered sets, fixed-size tuples and complex or
// numeric-like scalars, which are written as their real part.
package serialize
