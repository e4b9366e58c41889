// Package report renders rows of analysis results as tables. The same Table
// definition produces LaTeX tabular blocks for papers and rounded console
// tables for terminals.
package report
