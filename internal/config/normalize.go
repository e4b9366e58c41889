package config

import (
	"fmt"
	"strings"

	"linguistica/internal/textutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCorpus()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ParametersFile, err = expandPath(strings.TrimSpace(c.Paths.ParametersFile)); err != nil {
		return fmt.Errorf("paths.parameters_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeCorpus() {
	c.Corpus.Language = textutil.CanonicalLanguage(c.Corpus.Language)
	if c.Corpus.Language == "" {
		c.Corpus.Language = defaultLanguage
	}
	c.Corpus.Encoding = strings.ToLower(strings.TrimSpace(c.Corpus.Encoding))
	if c.Corpus.Encoding == "" || c.Corpus.Encoding == "utf-8" {
		c.Corpus.Encoding = defaultEncoding
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if len(c.Logging.StageOverrides) > 0 {
		normalized := make(map[string]string, len(c.Logging.StageOverrides))
		for stage, level := range c.Logging.StageOverrides {
			normalized[strings.ToLower(strings.TrimSpace(stage))] = strings.ToLower(strings.TrimSpace(level))
		}
		c.Logging.StageOverrides = normalized
	}
}
