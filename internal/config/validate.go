package config

import (
	"errors"
	"fmt"
	"slices"

	"linguistica/internal/params"
	"linguistica/internal/textutil"
)

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateParameters(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCorpus() error {
	if c.Corpus.Encoding != textutil.Encoding {
		return fmt.Errorf("corpus.encoding: only %s is supported, got %q", textutil.Encoding, c.Corpus.Encoding)
	}
	return nil
}

func (c *Config) validateParameters() error {
	reg := params.Default()
	for _, name := range sortedKeys(c.Parameters) {
		if !reg.Has(name) {
			return fmt.Errorf("parameters.%s: %w", name, params.ErrUnknownParameter)
		}
		if c.Parameters[name] < 0 {
			return fmt.Errorf("parameters.%s must be >= 0", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	for _, stage := range sortedKeys(c.Logging.StageOverrides) {
		if _, err := params.ParseStage(stage); err != nil {
			return fmt.Errorf("logging.stage_overrides: %w", err)
		}
		if !slices.Contains(validLogLevels, c.Logging.StageOverrides[stage]) {
			return fmt.Errorf("logging.stage_overrides.%s: unsupported level %q", stage, c.Logging.StageOverrides[stage])
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
