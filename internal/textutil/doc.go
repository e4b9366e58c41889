// Package textutil provides the text helpers shared by the analysis stages.
//
// The primary use cases are:
//   - Padding punctuation with spaces so whitespace tokenizers split it off
//   - Optional Unicode NFC normalization of corpus lines
//   - Separator constants for signatures and n-grams
//   - Classifying corpus languages as suffixing or prefixing
package textutil
