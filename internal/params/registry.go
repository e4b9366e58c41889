package params

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownParameter is returned when a parameter name is not registered.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrUnknownStage is returned for stage identifiers outside Stages().
	ErrUnknownStage = errors.New("unknown stage")
	// ErrInvalidValue is returned for override values that cannot be applied.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Unbounded is the sentinel value of a maximum-count parameter that applies no limit.
const Unbounded = 0

// Parameter names.
const (
	MaxWordTokens   = "max_word_tokens"
	MinStemLength   = "min_stem_length"
	MaxAffixLength  = "max_affix_length"
	MinSigCount     = "min_sig_count"
	MinAffixLength  = "min_affix_length"
	MinSfPfCount    = "min_sf_pf_count"
	NNeighbors      = "n_neighbors"
	NEigenvectors   = "n_eigenvectors"
	MinContextCount = "min_context_count"
	MaxWordTypes    = "max_word_types"
	Suffixing       = "suffixing"
)

// factory settings
var defaultValues = map[string]int{
	MaxWordTokens:   0,
	MinStemLength:   4,
	MaxAffixLength:  4,
	MinSigCount:     5,
	MinAffixLength:  1,
	MinSfPfCount:    3,
	NNeighbors:      9,
	NEigenvectors:   11,
	MinContextCount: 3,
	MaxWordTypes:    1000,
	Suffixing:       1,
}

var defaultStageParameters = map[Stage][]string{
	StageNgram:     {MaxWordTokens},
	StageSignature: {MaxWordTokens, MinStemLength, MaxAffixLength, MinSigCount},
	StagePhon:      {MaxWordTokens},
	StageTrie:      {MaxWordTokens, MinStemLength, MinAffixLength, MinSfPfCount},
	StageManifold:  {MaxWordTypes, NNeighbors, NEigenvectors, MinContextCount},
	StageAll: {
		MaxWordTokens, MinStemLength, MaxAffixLength, MinSigCount, MinAffixLength,
		MinSfPfCount, NNeighbors, NEigenvectors, MinContextCount, MaxWordTypes,
	},
}

var unboundedParameters = map[string]struct{}{
	MaxWordTokens: {},
	MaxWordTypes:  {},
}

// Parameter is a registered tunable together with the stages that read it.
type Parameter struct {
	Name   string  `json:"name"`
	Value  int     `json:"value"`
	Stages []Stage `json:"stages"`
}

// Registry is an immutable set of parameter values and stage requirements.
// The zero value is not usable; obtain one from Default or WithOverrides.
type Registry struct {
	values map[string]int
	stages map[Stage][]string
}

// Default returns a registry populated with the factory settings.
func Default() *Registry {
	reg := &Registry{
		values: make(map[string]int, len(defaultValues)),
		stages: make(map[Stage][]string, len(defaultStageParameters)),
	}
	for name, value := range defaultValues {
		reg.values[name] = value
	}
	for stage, names := range defaultStageParameters {
		reg.stages[stage] = slices.Clone(names)
	}
	if err := reg.validate(); err != nil {
		panic(err)
	}
	return reg
}

// DefaultValue returns the factory setting for name.
func DefaultValue(name string) (int, error) {
	value, ok := defaultValues[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return value, nil
}

// WithOverrides returns a copy of r in which every name in overrides replaces
// the current value. The receiver is left untouched. Unknown names and negative
// values are rejected without producing a registry.
func (r *Registry) WithOverrides(overrides map[string]int) (*Registry, error) {
	out := &Registry{
		values: make(map[string]int, len(r.values)),
		stages: make(map[Stage][]string, len(r.stages)),
	}
	for name, value := range r.values {
		out.values[name] = value
	}
	for stage, names := range r.stages {
		out.stages[stage] = slices.Clone(names)
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, ok := out.values[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		value := overrides[name]
		if value < 0 {
			return nil, fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidValue, name, value)
		}
		out.values[name] = value
	}
	return out, nil
}

// Get returns the current value of name.
func (r *Registry) Get(name string) (int, error) {
	value, ok := r.values[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return value, nil
}

// Default returns the factory setting of a parameter registered in r,
// regardless of any overrides applied to r.
func (r *Registry) Default(name string) (int, error) {
	if !r.Has(name) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return DefaultValue(name)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// ForStage returns the ordered parameter names the stage depends on.
func (r *Registry) ForStage(stage Stage) ([]string, error) {
	names, ok := r.stages[stage]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, string(stage))
	}
	return slices.Clone(names), nil
}

// StageValues returns the parameters of a stage with their current values,
// in the stage's declared order.
func (r *Registry) StageValues(stage Stage) ([]Parameter, error) {
	names, err := r.ForStage(stage)
	if err != nil {
		return nil, err
	}
	out := make([]Parameter, 0, len(names))
	for _, name := range names {
		out = append(out, Parameter{Name: name, Value: r.values[name], Stages: r.Owners(name)})
	}
	return out, nil
}

// Describe returns the human-readable description of a stage.
func (r *Registry) Describe(stage Stage) (string, error) {
	desc, ok := stageDescriptions[stage]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, string(stage))
	}
	return desc, nil
}

// Owners returns the stages that read name, in canonical stage order. The
// aggregate "all" stage is included when it lists the parameter.
func (r *Registry) Owners(name string) []Stage {
	owners := []Stage{}
	for _, stage := range stageOrder {
		if slices.Contains(r.stages[stage], name) {
			owners = append(owners, stage)
		}
	}
	return owners
}

// Parameters returns every registered parameter sorted by name.
func (r *Registry) Parameters() []Parameter {
	out := make([]Parameter, 0, len(r.values))
	for name, value := range r.values {
		out = append(out, Parameter{Name: name, Value: value, Stages: r.Owners(name)})
	}
	slices.SortFunc(out, func(a, b Parameter) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Values returns a copy of the name to value mapping.
func (r *Registry) Values() map[string]int {
	out := make(map[string]int, len(r.values))
	for name, value := range r.values {
		out[name] = value
	}
	return out
}

// IsUnbounded reports whether value is the "no limit" sentinel for name. Only
// maximum-count parameters carry the sentinel; for every other parameter 0 is
// an ordinary value.
func IsUnbounded(name string, value int) bool {
	if value != Unbounded {
		return false
	}
	_, ok := unboundedParameters[name]
	return ok
}

func (r *Registry) validate() error {
	for _, stage := range stageOrder {
		names, ok := r.stages[stage]
		if !ok {
			return fmt.Errorf("%w: %q has no parameter list", ErrUnknownStage, string(stage))
		}
		for _, name := range names {
			if _, ok := r.values[name]; !ok {
				return fmt.Errorf("stage %s requests %w %q", stage, ErrUnknownParameter, name)
			}
		}
	}
	return nil
}
