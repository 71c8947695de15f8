// Package aggregate implements the group-and-summarize primitive shared by
// every report: partition items by a key, then apply named reducers to each
// partition.
package aggregate

// Group is a set of items sharing one grouping key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// Values holds the named metric results computed for one group.
type Values map[string]float64

// Metric is a named reducer over the items of one group. Compute receives the
// values of all metrics declared before it, which lets a ratio refer to sums
// or means computed earlier in the same pass.
type Metric[T any] struct {
	Name    string
	Compute func(items []T, prior Values) float64
}

// Summary is the reduced form of one group.
type Summary[K comparable, T any] struct {
	Key    K
	Count  int
	Values Values
	// First is the first item encountered for Key. Reports use it for
	// attributes that are constant within a group.
	First T
}

// GroupBy partitions items by key. Items with equal keys land in the same
// group; groups are returned in first-encounter order so callers that sort
// stably get deterministic tie-breaks.
func GroupBy[K comparable, T any](items []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Summarize groups items by key and reduces every group with metrics.
func Summarize[K comparable, T any](items []T, key func(T) K, metrics ...Metric[T]) []Summary[K, T] {
	groups := GroupBy(items, key)
	out := make([]Summary[K, T], 0, len(groups))
	for _, g := range groups {
		out = append(out, Reduce(g, metrics...))
	}
	return out
}

// Reduce applies metrics, in order, to a single group.
func Reduce[K comparable, T any](g Group[K, T], metrics ...Metric[T]) Summary[K, T] {
	s := Summary[K, T]{
		Key:    g.Key,
		Count:  len(g.Items),
		Values: make(Values, len(metrics)),
	}
	if len(g.Items) > 0 {
		s.First = g.Items[0]
	}
	for _, m := range metrics {
		s.Values[m.Name] = m.Compute(g.Items, s.Values)
	}
	return s
}
