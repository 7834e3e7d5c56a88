package eval

import (
	"sort"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
)

// Options configures ScoreData.
type Options struct {
	// Filter selects which keys are scored. Nil accepts everything.
	Filter *Filter
	// Equivalence decides when annotations match. Nil means Exact.
	Equivalence Equivalence
	// Label names the compared document in diagnostics.
	Label string
	// Diagnostics receives missed and added annotations. Nil discards them.
	Diagnostics Sink
}

func (o Options) equivalence() Equivalence {
	if o.Equivalence == nil {
		return Exact
	}
	return o.Equivalence
}

// ScoreData compares the annotations of reference and predicted and returns
// scores for every annotation type and every (type, property) and
// (type, property, value) key the filter accepts.
//
// A nil predicted document is scored as empty and produces no diagnostics.
// A nil reference document is scored as empty as well.
func ScoreData(reference, predicted *anafora.Data, opts Options) Results {
	eq := opts.equivalence()
	accept := opts.Filter.Accept
	results := make(Results)

	groups := GroupBy(reference.Annotations(), predicted.Annotations(),
		func(a *anafora.Annotation) string { return a.Type },
		func() *Set[*anafora.Annotation] { return NewSet(AnnotationMatcher(eq)) })

	types := make([]string, 0, len(groups))
	for typ := range groups {
		types = append(types, typ)
	}
	sort.Strings(types)

	for _, typ := range types {
		group := groups[typ]

		if key := TypeKey(typ); accept(key) {
			missed, added := Accumulate(results.Get(key), group.Reference, group.Predicted)
			if predicted != nil && opts.Diagnostics != nil {
				report(opts.Diagnostics, opts.Label, Missed, missed)
				report(opts.Diagnostics, opts.Label, Added, added)
			}
		}

		facts := GroupBy(factsOf(group.Reference, accept), factsOf(group.Predicted, accept),
			func(f Fact) Key { return f.Key },
			func() *Set[Fact] { return NewSet(FactMatcher(eq)) })
		keys := make([]Key, 0, len(facts))
		for k := range facts {
			keys = append(keys, k)
		}
		SortKeys(keys)
		for _, k := range keys {
			Accumulate(results.Get(k), facts[k].Reference, facts[k].Predicted)
		}
	}
	return results
}

func factsOf(annotations *Set[*anafora.Annotation], accept func(Key) bool) []Fact {
	var out []Fact
	for _, a := range annotations.Items() {
		out = append(out, Facts(a, accept)...)
	}
	return out
}

func report(sink Sink, label string, kind DiagnosticKind, annotations []*anafora.Annotation) {
	for _, a := range annotations {
		sink.Report(Diagnostic{Label: label, Kind: kind, Annotation: a})
	}
}
