package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{TypeKey("Person"), "Person"},
		{PropertyKey("Person", SpanProperty), "Person:<span>"},
		{ValueKey("Person", "name", "Alice"), "Person:name:Alice"},
		{TypeKey("Person").WithPair("alice-vs-gold"), "alice-vs-gold:Person"},
		{ValueKey("E", "p", "v").WithPair("annotator-vs-gold"), "annotator-vs-gold:E:p:v"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.String())
	}
}

func TestKeyKindsAreDistinct(t *testing.T) {
	// A type literally named "A:b" renders like a property key but is not one.
	assert.NotEqual(t, TypeKey("A:b"), PropertyKey("A", "b"))
	assert.Equal(t, TypeKey("A:b").String(), PropertyKey("A", "b").String())
	assert.Negative(t, TypeKey("A:b").Compare(PropertyKey("A", "b")))
}

func TestSortKeys(t *testing.T) {
	keys := []Key{
		ValueKey("Person", "name", "Bob"),
		TypeKey("Place"),
		PropertyKey("Person", "name"),
		TypeKey("Person"),
		ValueKey("Person", "name", "Alice"),
	}
	SortKeys(keys)

	var got []string
	for _, k := range keys {
		got = append(got, k.String())
	}
	assert.Equal(t, []string{
		"Person",
		"Person:name",
		"Person:name:Alice",
		"Person:name:Bob",
		"Place",
	}, got)
}
