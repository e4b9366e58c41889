package params

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the conventional name of the JSON parameter override file.
const FileName = "parameters.json"

// EnvPrefix prefixes environment variables that override parameters, e.g.
// LINGUISTICA_MIN_STEM_LENGTH.
const EnvPrefix = "LINGUISTICA"

// Overrides is the result of reading a parameter override source.
type Overrides struct {
	// Values holds overrides for registered parameter names only.
	Values map[string]int
	// Unknown lists names found in the file that the registry does not know,
	// sorted. Whether they are an error is left to the caller.
	Unknown []string
	// Path is the file that was read; empty when no file existed.
	Path string
}

// LoadOverrides reads a parameters.json document and the LINGUISTICA_* environment
// for values of the parameters registered in reg. Environment variables win over the
// file. A missing file is not an error: only the environment is consulted.
func LoadOverrides(reg *Registry, path string) (Overrides, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	result := Overrides{Values: map[string]int{}}
	fileKeys := map[string]struct{}{}
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Overrides{}, fmt.Errorf("read %s: %w", path, err)
			}
		} else {
			result.Path = path
			for _, key := range v.AllKeys() {
				fileKeys[key] = struct{}{}
			}
		}
	}

	for key := range fileKeys {
		if !reg.Has(key) {
			result.Unknown = append(result.Unknown, key)
		}
	}
	slices.Sort(result.Unknown)

	for _, param := range reg.Parameters() {
		if !v.IsSet(param.Name) {
			continue
		}
		value, err := toInt(v.Get(param.Name))
		if err != nil {
			return Overrides{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, param.Name, err)
		}
		result.Values[param.Name] = value
	}
	return result, nil
}

func toInt(raw any) (int, error) {
	switch value := raw.(type) {
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case float64:
		if value != math.Trunc(value) || math.IsInf(value, 0) {
			return 0, fmt.Errorf("%v is not an integer", value)
		}
		return int(value), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", value)
		}
		return parsed, nil
	case bool:
		if value {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}
