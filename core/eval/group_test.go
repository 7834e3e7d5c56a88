package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
)

type stringMatcher struct{}

func (stringMatcher) Bucket(s string) string { return s }
func (stringMatcher) Match(a, b string) bool { return a == b }

func TestGroupByPartitionsEachSide(t *testing.T) {
	reference := []string{"apple", "avocado", "banana", "cherry"}
	predicted := []string{"apricot", "blueberry", "date"}

	groups := GroupBy(reference, predicted,
		func(s string) byte { return s[0] },
		func() *Set[string] { return NewSet[string](stringMatcher{}) })

	require.Len(t, groups, 4)
	assert.Equal(t, []string{"apple", "avocado"}, groups['a'].Reference.Items())
	assert.Equal(t, []string{"apricot"}, groups['a'].Predicted.Items())
	assert.Equal(t, 0, groups['c'].Predicted.Len(), "reference-only key still has a predicted set")
	assert.Equal(t, 0, groups['d'].Reference.Len(), "predicted-only key still has a reference set")

	var refUnion, predUnion []string
	for _, g := range groups {
		refUnion = append(refUnion, g.Reference.Items()...)
		predUnion = append(predUnion, g.Predicted.Items()...)
	}
	assert.ElementsMatch(t, reference, refUnion)
	assert.ElementsMatch(t, predicted, predUnion)
}

func TestGroupByAnnotationType(t *testing.T) {
	ref := []*anafora.Annotation{person("1", 0, 5, "Alice"), word(6, 9), person("2", 10, 13, "Bob")}
	pred := []*anafora.Annotation{word(6, 9)}

	groups := GroupBy(ref, pred,
		func(a *anafora.Annotation) string { return a.Type },
		func() *Set[*anafora.Annotation] { return NewSet(AnnotationMatcher(Exact)) })

	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups["Person"].Reference.Len())
	assert.Equal(t, 0, groups["Person"].Predicted.Len())
	assert.Equal(t, 1, groups["Word"].Reference.Len())
	assert.Equal(t, 1, groups["Word"].Predicted.Len())
}
