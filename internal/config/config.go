package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"linguistica/internal/params"
	"linguistica/internal/textutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Corpus describes the text the analysis stages read.
type Corpus struct {
	Language string `toml:"language"`
	Encoding string `toml:"encoding"`
	// NFC normalizes input text to Unicode NFC before punctuation padding.
	NFC bool `toml:"nfc"`
}

// Paths contains directory and file locations.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	// ParametersFile is the JSON override file. Empty means parameters.json
	// inside OutputDir.
	ParametersFile string `toml:"parameters_file"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format         string            `toml:"format"`
	Level          string            `toml:"level"`
	StageOverrides map[string]string `toml:"stage_overrides"`
}

// Config encapsulates all configuration values for linguistica.
//
// Configuration sections:
//   - Corpus: language and text handling
//   - Paths: output, log, and parameter override locations
//   - Parameters: integer overrides of the analysis tunables
//   - Logging: log format, level, and per-stage levels
type Config struct {
	Corpus     Corpus         `toml:"corpus"`
	Paths      Paths          `toml:"paths"`
	Parameters map[string]int `toml:"parameters"`
	Logging    Logging        `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ParametersPath returns the location of the JSON parameter override file.
func (c *Config) ParametersPath() string {
	if c.Paths.ParametersFile != "" {
		return c.Paths.ParametersFile
	}
	return filepath.Join(c.Paths.OutputDir, params.FileName)
}

// Registry builds the parameter registry for this configuration: factory
// settings adjusted for the corpus language, then the [parameters] table, then the parameters.json file and
// LINGUISTICA_* environment variables. Names in the JSON file that no stage
// knows are returned in Overrides.Unknown rather than failing the load.
func (c *Config) Registry() (*params.Registry, params.Overrides, error) {
	reg := params.Default()
	if dir, known := textutil.Affixation(c.Corpus.Language); known && dir == textutil.Prefixing {
		var err error
		reg, err = reg.WithOverrides(map[string]int{params.Suffixing: 0})
		if err != nil {
			return nil, params.Overrides{}, err
		}
	}

	reg, err := reg.WithOverrides(c.Parameters)
	if err != nil {
		return nil, params.Overrides{}, fmt.Errorf("parameters: %w", err)
	}

	overrides, err := params.LoadOverrides(reg, c.ParametersPath())
	if err != nil {
		return nil, params.Overrides{}, err
	}

	reg, err = reg.WithOverrides(overrides.Values)
	if err != nil {
		return nil, params.Overrides{}, fmt.Errorf("%s: %w", c.ParametersPath(), err)
	}
	return reg, overrides, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
