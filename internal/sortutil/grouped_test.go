package sortutil_test

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguistica/internal/sortutil"
)

type record struct {
	group string
	score int
	id    int
}

func byGroup(r record) string { return r.group }
func byScore(r record) int    { return r.score }

func ids(records []record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.id
	}
	return out
}

func TestGroupedSortAscending(t *testing.T) {
	items := []record{
		{"b", 2, 1},
		{"a", 3, 2},
		{"b", 1, 3},
		{"a", 1, 4},
		{"a", 3, 5},
	}
	got := sortutil.GroupedSort(nil, items, byGroup, byScore, sortutil.Options{})
	assert.Equal(t, []int{4, 2, 5, 3, 1}, ids(got))
}

func TestGroupedSortMixedDirections(t *testing.T) {
	items := []record{
		{"a", 1, 1},
		{"b", 5, 2},
		{"a", 3, 3},
		{"b", 5, 4},
		{"c", 0, 5},
		{"b", 7, 6},
	}
	got := sortutil.GroupedSort(nil, items, byGroup, byScore, sortutil.Options{
		PrimaryDescending: true,
	})
	assert.Equal(t, []int{5, 2, 4, 6, 1, 3}, ids(got))

	got = sortutil.GroupedSort(nil, items, byGroup, byScore, sortutil.Options{
		SecondaryDescending: true,
	})
	// ties on both keys keep input order even when descending
	assert.Equal(t, []int{3, 1, 6, 2, 4, 5}, ids(got))
}

func TestGroupedSortDoesNotModifyInput(t *testing.T) {
	items := []record{{"b", 1, 1}, {"a", 1, 2}}
	_ = sortutil.GroupedSort(nil, items, byGroup, byScore, sortutil.Options{})
	assert.Equal(t, []int{1, 2}, ids(items))
}

func TestGroupedSortEmptyLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	got := sortutil.GroupedSort(logger, []record{}, byGroup, byScore, sortutil.Options{})
	assert.Nil(t, got)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "grouped sort skipped")

	assert.Nil(t, sortutil.GroupedSort[record, string, int](nil, nil, byGroup, byScore, sortutil.Options{}))
}

func TestGroupedSortIdentitySecondary(t *testing.T) {
	words := []string{"pear", "fig", "apple", "kiwi", "date", "plum"}
	got := sortutil.GroupedSort(nil, words, func(s string) int { return len(s) }, sortutil.Identity[string], sortutil.Options{
		PrimaryDescending: true,
	})
	assert.Equal(t, []string{"apple", "date", "kiwi", "pear", "plum", "fig"}, got)
}

func TestGroupedSortFuncGroupsByComparator(t *testing.T) {
	items := []record{{"A", 2, 1}, {"a", 1, 2}, {"b", 0, 3}}
	fold := func(a, b record) int {
		la, lb := a.group[0]|0x20, b.group[0]|0x20
		return int(la) - int(lb)
	}
	got := sortutil.GroupedSortFunc(nil, items, fold, func(a, b record) int { return a.score - b.score }, sortutil.Options{})
	assert.Equal(t, []int{2, 1, 3}, ids(got))
}

func TestGroupedSortOrderingProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 50; round++ {
		n := 1 + rng.IntN(60)
		items := make([]record, n)
		for i := range items {
			items[i] = record{
				group: string(rune('a' + rng.IntN(4))),
				score: rng.IntN(5),
				id:    i,
			}
		}
		got := sortutil.GroupedSort(nil, items, byGroup, byScore, sortutil.Options{})
		require.Len(t, got, n)
		assert.ElementsMatch(t, items, got)

		for i := 1; i < len(got); i++ {
			prev, cur := got[i-1], got[i]
			switch {
			case prev.group != cur.group:
				assert.Less(t, prev.group, cur.group)
			case prev.score != cur.score:
				assert.Less(t, prev.score, cur.score)
			default:
				assert.Less(t, prev.id, cur.id)
			}
		}
	}
}
