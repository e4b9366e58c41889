// Package main hosts the linguistica CLI entrypoint and command graph.
//
// The Cobra command tree exposes the parameter registry, corpus line
// normalization, and configuration scaffolding. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on output.
//
// Keep this package lean: add functionality to the internal packages first,
// then surface it through dedicated commands or flags here.
package main
