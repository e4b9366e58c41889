// Package params holds the tunable parameters consumed by the analysis stages.
//
// A Registry maps every parameter name to its integer value and every stage
// (ngram, signature, phon, trie, manifold, plus the aggregate "all") to the
// ordered list of parameters it reads. Registries are immutable: Default
// returns the factory settings and WithOverrides derives a new registry, so a
// single value can be built at startup and shared by every stage.
//
// A value of 0 for a maximum-count parameter (see IsUnbounded) means no upper
// limit is applied. Callers must special-case it.
package params
