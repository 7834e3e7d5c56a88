package eval

import (
	"github.com/FocuswithJustin/anafora-eval/core/anafora"
)

// Fact is one atomic, comparable unit of an annotation: its presence at an
// extent, one of its properties, or one string property value.
type Fact struct {
	Extent   anafora.Extent
	Key      Key
	Value    anafora.Value
	HasValue bool
}

// Facts decomposes an annotation into facts, keeping those accept allows:
//   - one span-presence fact keyed (type, "<span>")
//   - one property fact per property, keyed (type, name)
//   - one value fact per string-valued property, keyed (type, name, value)
//
// Non-string values (numbers, references, empty) never yield a value fact.
func Facts(a *anafora.Annotation, accept func(Key) bool) []Fact {
	extent := a.Extent()
	var facts []Fact

	if key := PropertyKey(a.Type, SpanProperty); accept(key) {
		facts = append(facts, Fact{Extent: extent, Key: key})
	}
	for _, prop := range a.Properties {
		if key := PropertyKey(a.Type, prop.Name); accept(key) {
			facts = append(facts, Fact{Extent: extent, Key: key, Value: prop.Value, HasValue: true})
		}
		text, ok := prop.Value.Text()
		if !ok {
			continue
		}
		if key := ValueKey(a.Type, prop.Name, text); accept(key) {
			facts = append(facts, Fact{Extent: extent, Key: key, Value: prop.Value, HasValue: true})
		}
	}
	return facts
}

// FactsEqual reports whether two facts match under eq.
func FactsEqual(eq Equivalence, a, b Fact) bool {
	if a.Key != b.Key || a.HasValue != b.HasValue {
		return false
	}
	if !ExtentsEqual(eq, a.Extent, b.Extent) {
		return false
	}
	return newComparer(eq).values(a.Value, b.Value)
}

type factMatcher struct{ eq Equivalence }

func (m factMatcher) Bucket(f Fact) string {
	return f.Key.String() + "\x00" + extentBucket(m.eq, f.Extent) + "\x00" + f.Value.String()
}

func (m factMatcher) Match(a, b Fact) bool { return FactsEqual(m.eq, a, b) }

// FactMatcher returns the set matcher for facts under eq.
func FactMatcher(eq Equivalence) Matcher[Fact] {
	return factMatcher{eq: eq}
}
