// Package config loads, normalizes, and validates linguistica configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The [parameters] table of the file and the
// optional parameters.json override file are merged over the factory
// parameter settings by Registry, which hands back the immutable registry the
// analysis stages read from.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
