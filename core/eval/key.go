package eval

import (
	"cmp"
	"sort"
	"strings"
)

// SpanProperty is the property name under which span-presence facts are scored.
const SpanProperty = "<span>"

// KeyKind tags the granularity of a Key.
type KeyKind int

// Key granularities, from coarsest to finest.
const (
	KindType KeyKind = iota
	KindProperty
	KindValue
)

// Key identifies what a Scores counter measures: an annotation type, a
// (type, property) pair, or a (type, property, value) triple. Pair is the
// annotator-pair label in multi-annotator runs and empty otherwise.
type Key struct {
	Pair     string  `json:"pair,omitempty"`
	Type     string  `json:"type"`
	Property string  `json:"property,omitempty"`
	Value    string  `json:"value,omitempty"`
	Kind     KeyKind `json:"kind"`
}

// TypeKey returns the key for a bare annotation type.
func TypeKey(typ string) Key {
	return Key{Type: typ, Kind: KindType}
}

// PropertyKey returns the key for a (type, property) pair.
func PropertyKey(typ, property string) Key {
	return Key{Type: typ, Property: property, Kind: KindProperty}
}

// ValueKey returns the key for a (type, property, value) triple.
func ValueKey(typ, property, value string) Key {
	return Key{Type: typ, Property: property, Value: value, Kind: KindValue}
}

// WithPair returns a copy of the key labelled with an annotator pair.
func (k Key) WithPair(pair string) Key {
	k.Pair = pair
	return k
}

// Parts returns the key's levels, pair label first when present.
func (k Key) Parts() []string {
	var parts []string
	if k.Pair != "" {
		parts = append(parts, k.Pair)
	}
	parts = append(parts, k.Type)
	if k.Kind >= KindProperty {
		parts = append(parts, k.Property)
	}
	if k.Kind == KindValue {
		parts = append(parts, k.Value)
	}
	return parts
}

// String joins the key's levels with ':'.
func (k Key) String() string {
	return strings.Join(k.Parts(), ":")
}

// Compare orders keys by their rendered name, then by granularity.
func (k Key) Compare(o Key) int {
	if c := strings.Compare(k.String(), o.String()); c != 0 {
		return c
	}
	return cmp.Compare(k.Kind, o.Kind)
}

// SortKeys sorts keys in place by Compare.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
}
