package eval

import "fmt"

// Scores counts reference, predicted and correct items for one Key.
//
// Under the Overlapping equivalence Correct can exceed the number of
// distinct items actually matched on one side: overlap is not transitive,
// so two predicted items may both count against a single reference item.
type Scores struct {
	Reference int `json:"reference"`
	Predicted int `json:"predicted"`
	Correct   int `json:"correct"`
}

// Accumulate adds one comparison to s and returns the reference items that
// were not predicted (missed) and the predicted items not in the reference
// (added).
func Accumulate[T any](s *Scores, reference, predicted *Set[T]) (missed, added []T) {
	s.Reference += reference.Len()
	s.Predicted += predicted.Len()
	s.Correct += IntersectionSize(reference, predicted)
	return reference.Without(predicted), predicted.Without(reference)
}

// Update adds other's counters to s.
func (s *Scores) Update(other *Scores) {
	s.Reference += other.Reference
	s.Predicted += other.Predicted
	s.Correct += other.Correct
}

// Precision is Correct/Predicted, or 1.0 when nothing was predicted.
func (s *Scores) Precision() float64 {
	if s.Predicted == 0 {
		return 1.0
	}
	return float64(s.Correct) / float64(s.Predicted)
}

// Recall is Correct/Reference, or 1.0 when the reference is empty.
func (s *Scores) Recall() float64 {
	if s.Reference == 0 {
		return 1.0
	}
	return float64(s.Correct) / float64(s.Reference)
}

// F1 is the harmonic mean of precision and recall, or 0.0 when both are 0.
func (s *Scores) F1() float64 {
	p := s.Precision()
	r := s.Recall()
	if p+r == 0 {
		return 0.0
	}
	return 2 * p * r / (p + r)
}

func (s *Scores) String() string {
	return fmt.Sprintf("Scores(reference=%d, predicted=%d, correct=%d)", s.Reference, s.Predicted, s.Correct)
}

// Results maps keys to their scores.
type Results map[Key]*Scores

// Get returns the scores for k, creating them if needed.
func (r Results) Get(k Key) *Scores {
	s, ok := r[k]
	if !ok {
		s = &Scores{}
		r[k] = s
	}
	return s
}

// Update folds other into r.
func (r Results) Update(other Results) {
	for k, s := range other {
		r.Get(k).Update(s)
	}
}

// UpdatePair folds other into r with every key labelled by pair.
func (r Results) UpdatePair(pair string, other Results) {
	for k, s := range other {
		r.Get(k.WithPair(pair)).Update(s)
	}
}

// Keys returns the keys sorted by their colon-joined name.
func (r Results) Keys() []Key {
	keys := make([]Key, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}
