package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguistica/internal/params"
)

func TestDefaultValues(t *testing.T) {
	value, err := params.DefaultValue("min_stem_length")
	require.NoError(t, err)
	assert.Equal(t, 4, value)

	reg := params.Default()
	got, err := reg.Get(params.MaxWordTypes)
	require.NoError(t, err)
	assert.Equal(t, 1000, got)

	got, err = reg.Get(params.MaxWordTokens)
	require.NoError(t, err)
	assert.True(t, params.IsUnbounded(params.MaxWordTokens, got))
}

func TestUnknownParameter(t *testing.T) {
	_, err := params.DefaultValue("max_stem_length")
	require.ErrorIs(t, err, params.ErrUnknownParameter)

	_, err = params.Default().Get("")
	require.ErrorIs(t, err, params.ErrUnknownParameter)
}

func TestForStage(t *testing.T) {
	reg := params.Default()

	names, err := reg.ForStage(params.StageNgram)
	require.NoError(t, err)
	assert.Equal(t, []string{"max_word_tokens"}, names)

	names, err = reg.ForStage(params.StageManifold)
	require.NoError(t, err)
	assert.Equal(t, []string{"max_word_types", "n_neighbors", "n_eigenvectors", "min_context_count"}, names)

	names, err = reg.ForStage(params.StageAll)
	require.NoError(t, err)
	assert.Len(t, names, 10)
	assert.NotContains(t, names, params.Suffixing)

	_, err = reg.ForStage(params.Stage("morphology"))
	require.ErrorIs(t, err, params.ErrUnknownStage)
}

func TestForStageReturnsCopy(t *testing.T) {
	reg := params.Default()
	names, err := reg.ForStage(params.StageSignature)
	require.NoError(t, err)
	names[0] = "mutated"

	again, err := reg.ForStage(params.StageSignature)
	require.NoError(t, err)
	assert.Equal(t, params.MaxWordTokens, again[0])
}

func TestEveryStageParameterIsRegistered(t *testing.T) {
	reg := params.Default()
	for _, stage := range params.Stages() {
		names, err := reg.ForStage(stage)
		require.NoError(t, err, stage)
		for _, name := range names {
			assert.True(t, reg.Has(name), "%s requests unregistered %s", stage, name)
			assert.Contains(t, reg.Owners(name), stage)
		}
	}
}

func TestParseStage(t *testing.T) {
	stage, err := params.ParseStage("  Trie ")
	require.NoError(t, err)
	assert.Equal(t, params.StageTrie, stage)

	_, err = params.ParseStage("lexicon")
	require.ErrorIs(t, err, params.ErrUnknownStage)
}

func TestDescribe(t *testing.T) {
	reg := params.Default()
	desc, err := reg.Describe(params.StageNgram)
	require.NoError(t, err)
	assert.Equal(t, "This program extracts word n-grams.", desc)

	_, err = reg.Describe(params.Stage("x"))
	require.ErrorIs(t, err, params.ErrUnknownStage)
}

func TestWithOverridesLeavesReceiverUntouched(t *testing.T) {
	base := params.Default()
	derived, err := base.WithOverrides(map[string]int{params.MinStemLength: 6})
	require.NoError(t, err)

	got, err := derived.Get(params.MinStemLength)
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	orig, err := base.Get(params.MinStemLength)
	require.NoError(t, err)
	assert.Equal(t, 4, orig)

	def, err := derived.Default(params.MinStemLength)
	require.NoError(t, err)
	assert.Equal(t, 4, def)

	_, err = derived.Default("max_stem_length")
	require.ErrorIs(t, err, params.ErrUnknownParameter)
}

func TestWithOverridesRejectsBadInput(t *testing.T) {
	base := params.Default()

	_, err := base.WithOverrides(map[string]int{"nope": 1})
	require.ErrorIs(t, err, params.ErrUnknownParameter)

	_, err = base.WithOverrides(map[string]int{params.NNeighbors: -1})
	require.ErrorIs(t, err, params.ErrInvalidValue)
}

func TestParametersSortedByName(t *testing.T) {
	list := params.Default().Parameters()
	require.Len(t, list, 11)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
	assert.Empty(t, params.Default().Owners(params.Suffixing))
}

func TestIsUnbounded(t *testing.T) {
	assert.True(t, params.IsUnbounded(params.MaxWordTypes, 0))
	assert.False(t, params.IsUnbounded(params.MaxWordTypes, 10))
	assert.False(t, params.IsUnbounded(params.MinSigCount, 0))
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, params.FileName)
	content := `{"min_stem_length": 5, "n_neighbors": 12, "colour": 3}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ov, err := params.LoadOverrides(params.Default(), path)
	require.NoError(t, err)
	assert.Equal(t, path, ov.Path)
	assert.Equal(t, map[string]int{"min_stem_length": 5, "n_neighbors": 12}, ov.Values)
	assert.Equal(t, []string{"colour"}, ov.Unknown)
}

func TestLoadOverridesEnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, params.FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"min_sig_count": 7}`), 0o644))
	t.Setenv("LINGUISTICA_MIN_SIG_COUNT", "9")

	ov, err := params.LoadOverrides(params.Default(), path)
	require.NoError(t, err)
	assert.Equal(t, 9, ov.Values[params.MinSigCount])
}

func TestLoadOverridesMissingFile(t *testing.T) {
	ov, err := params.LoadOverrides(params.Default(), filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, ov.Path)
	assert.Empty(t, ov.Values)
}

func TestLoadOverridesRejectsFractions(t *testing.T) {
	path := filepath.Join(t.TempDir(), params.FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"n_eigenvectors": 2.5}`), 0o644))

	_, err := params.LoadOverrides(params.Default(), path)
	require.ErrorIs(t, err, params.ErrInvalidValue)
}
