// Package sortutil orders report rows with a two-level stable sort.
//
// GroupedSort sorts by a primary key, splits the result into runs of equal
// primary key, and stably sorts each run by a secondary key. The two levels
// keep independent directions, and ties at both levels keep input order.
package sortutil

import (
	"cmp"
	"log/slog"
	"slices"

	"linguistica/internal/logging"
)

// Options selects the direction of each sort level.
type Options struct {
	PrimaryDescending   bool
	SecondaryDescending bool
}

// Identity returns its argument. It is the conventional secondary key when the
// records themselves are ordered.
func Identity[T any](v T) T {
	return v
}

// GroupedSort orders items primary-key-major, secondary-key-minor. Empty input
// is logged as a warning and yields nil. The input slice is not modified.
func GroupedSort[T any, P cmp.Ordered, S cmp.Ordered](
	logger *slog.Logger,
	items []T,
	primary func(T) P,
	secondary func(T) S,
	opts Options,
) []T {
	return GroupedSortFunc(logger, items,
		func(a, b T) int { return cmp.Compare(primary(a), primary(b)) },
		func(a, b T) int { return cmp.Compare(secondary(a), secondary(b)) },
		opts,
	)
}

// GroupedSortFunc is GroupedSort with comparison functions instead of keys.
// primaryCmp also defines the runs: adjacent items comparing equal share a group.
func GroupedSortFunc[T any](
	logger *slog.Logger,
	items []T,
	primaryCmp func(a, b T) int,
	secondaryCmp func(a, b T) int,
	opts Options,
) []T {
	if len(items) == 0 {
		if logger == nil {
			logger = logging.NewNop()
		}
		logger.Warn("grouped sort skipped",
			logging.String(logging.FieldEventType, "sort_empty_input"),
			logging.String(logging.FieldImpact, "nothing to sort"),
		)
		return nil
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, directed(primaryCmp, opts.PrimaryDescending))

	secondary := directed(secondaryCmp, opts.SecondaryDescending)
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && primaryCmp(sorted[start], sorted[i]) == 0 {
			continue
		}
		slices.SortStableFunc(sorted[start:i], secondary)
		start = i
	}
	return sorted
}

// directed flips the comparison for descending order. Equal elements still
// compare equal, so a stable sort keeps their input order in both directions.
func directed[T any](compare func(a, b T) int, descending bool) func(a, b T) int {
	if !descending {
		return compare
	}
	return func(a, b T) int {
		return compare(b, a)
	}
}
