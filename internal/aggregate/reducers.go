package aggregate

import (
	"slices"

	"github.com/samber/lo"
)

// SafeDiv divides num by den and returns 0 when den is zero. Every ratio and
// percentage in the reports goes through it, so a degenerate group yields 0
// rather than NaN or ±Inf.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// MeanOf returns the arithmetic mean of values, or 0 for an empty slice.
func MeanOf(values []float64) float64 {
	return SafeDiv(lo.Sum(values), float64(len(values)))
}

// MedianOf returns the median of values. For an even count the lower of the
// two middle elements is returned: [10 20 30 40] yields 20. An empty slice
// yields 0. values is not modified.
func MedianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted[(len(sorted)-1)/2]
}

// Count reports the number of items in the group.
func Count[T any](name string) Metric[T] {
	return Metric[T]{
		Name: name,
		Compute: func(items []T, _ Values) float64 {
			return float64(len(items))
		},
	}
}

// Sum adds value over the group.
func Sum[T any](name string, value func(T) float64) Metric[T] {
	return Metric[T]{
		Name: name,
		Compute: func(items []T, _ Values) float64 {
			return lo.SumBy(items, value)
		},
	}
}

// Mean averages value over the group.
func Mean[T any](name string, value func(T) float64) Metric[T] {
	return Metric[T]{
		Name: name,
		Compute: func(items []T, _ Values) float64 {
			return SafeDiv(lo.SumBy(items, value), float64(len(items)))
		},
	}
}

// Median takes the lower-middle median of value over the group.
func Median[T any](name string, value func(T) float64) Metric[T] {
	return Metric[T]{
		Name: name,
		Compute: func(items []T, _ Values) float64 {
			return MedianOf(lo.Map(items, func(item T, _ int) float64 { return value(item) }))
		},
	}
}

// Percent is the share of the group satisfying pred, scaled to 0..100.
func Percent[T any](name string, pred func(T) bool) Metric[T] {
	return Metric[T]{
		Name: name,
		Compute: func(items []T, _ Values) float64 {
			return SafeDiv(float64(lo.CountBy(items, pred)), float64(len(items))) * 100
		},
	}
}

// Ratio divides two previously computed metrics.
func Ratio[T any](name, num, den string) Metric[T] {
	return Metric[T]{
		Name: name,
		Compute: func(_ []T, prior Values) float64 {
			return SafeDiv(prior[num], prior[den])
		},
	}
}

// Distinct counts the distinct values of value within the group.
func Distinct[T any, V comparable](name string, value func(T) V) Metric[T] {
	return Metric[T]{
		Name: name,
		Compute: func(items []T, _ Values) float64 {
			return float64(len(lo.UniqBy(items, value)))
		},
	}
}
