package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"linguistica/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Format = "json"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLanguage sets the corpus language on the test config.
func WithLanguage(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Corpus.Language = name
	}
}

// WithNFC toggles Unicode NFC composition of corpus text.
func WithNFC(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Corpus.NFC = enabled
	}
}

// WithParameters sets [parameters] overrides on the test config.
func WithParameters(values map[string]int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Parameters = values
	}
}

// WithParametersFile writes content as the parameters.json override file in
// the output directory.
func WithParametersFile(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteFile(b.t, b.cfg.ParametersPath(), content)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}

// WriteConfig encodes cfg as TOML at path and returns path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	WriteFile(t, path, string(data))
	return path
}
