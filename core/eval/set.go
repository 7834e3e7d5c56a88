package eval

// Matcher supplies the equality a Set uses. Bucket narrows the candidates
// Match is tried against: items that Match must share a bucket.
type Matcher[T any] interface {
	Bucket(item T) string
	Match(a, b T) bool
}

// Set is an insertion-ordered collection that drops items matching one
// already present. Under a non-transitive Matcher the surviving items depend
// on insertion order.
type Set[T any] struct {
	matcher Matcher[T]
	items   []T
	buckets map[string][]int
}

// NewSet creates an empty set using m.
func NewSet[T any](m Matcher[T]) *Set[T] {
	return &Set[T]{matcher: m, buckets: make(map[string][]int)}
}

// Add inserts item unless a matching item is present and reports whether it
// was inserted.
func (s *Set[T]) Add(item T) bool {
	bucket := s.matcher.Bucket(item)
	for _, i := range s.buckets[bucket] {
		if s.matcher.Match(s.items[i], item) {
			return false
		}
	}
	s.buckets[bucket] = append(s.buckets[bucket], len(s.items))
	s.items = append(s.items, item)
	return true
}

// Contains reports whether some item in the set matches item.
func (s *Set[T]) Contains(item T) bool {
	for _, i := range s.buckets[s.matcher.Bucket(item)] {
		if s.matcher.Match(s.items[i], item) {
			return true
		}
	}
	return false
}

// Len returns the number of items.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the items in insertion order.
func (s *Set[T]) Items() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// Without returns the items of s that match nothing in other.
func (s *Set[T]) Without(other *Set[T]) []T {
	var out []T
	for _, item := range s.Items() {
		if other == nil || !other.Contains(item) {
			out = append(out, item)
		}
	}
	return out
}

// IntersectionSize counts the matched items between reference and predicted.
// It walks the smaller set, predicted on a tie, and counts the items that
// match something in the other. Under a non-transitive Matcher this count is
// not symmetric in general, and may exceed what exact matching would give.
func IntersectionSize[T any](reference, predicted *Set[T]) int {
	if reference.Len() == 0 || predicted.Len() == 0 {
		return 0
	}
	walk, lookup := predicted, reference
	if reference.Len() < predicted.Len() {
		walk, lookup = reference, predicted
	}
	n := 0
	for _, item := range walk.items {
		if lookup.Contains(item) {
			n++
		}
	}
	return n
}
