package stats

import "github.com/farxc/fastfood_minwage/internal/survey"

// Split partitions rows by key, keeping row order inside each group.
func Split[K comparable, T any](rows []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, r := range rows {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

// Column extracts one value per row.
func Column[T any](rows []T, get func(T) survey.Value) []survey.Value {
	out := make([]survey.Value, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}

// MeanOf is MeanSE over a column of rows.
func MeanOf[T any](rows []T, get func(T) survey.Value) Group {
	return MeanSE(Column(rows, get))
}

// PairedOf is PairedChange over two columns of the same rows.
func PairedOf[T any](rows []T, before, after func(T) survey.Value) Group {
	return PairedChange(Column(rows, before), Column(rows, after))
}
