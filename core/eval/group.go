package eval

// Group holds the reference and predicted items sharing one key.
type Group[T any] struct {
	Reference *Set[T]
	Predicted *Set[T]
}

// GroupBy partitions reference and predicted items by key. Every item lands
// in exactly one group on its own side; a key present on one side only still
// gets a group, with an empty set on the other side.
func GroupBy[T any, K comparable](reference, predicted []T, key func(T) K, newSet func() *Set[T]) map[K]*Group[T] {
	groups := make(map[K]*Group[T])
	get := func(k K) *Group[T] {
		g, ok := groups[k]
		if !ok {
			g = &Group[T]{Reference: newSet(), Predicted: newSet()}
			groups[k] = g
		}
		return g
	}

	for _, item := range reference {
		get(key(item)).Reference.Add(item)
	}
	for _, item := range predicted {
		get(key(item)).Predicted.Add(item)
	}
	return groups
}
