package eval

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/anafora-eval/core/errors"
)

// keyGrammar parses a filter token: Type, Type:Property or
// Type:Property:Value.
//
//nolint:govet // participle grammar tags are not standard struct tags
type keyGrammar struct {
	Parts []string `parser:"@Part ( \":\" @Part )*"`
}

var keyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Colon", Pattern: `:`},
	{Name: "Part", Pattern: `[^:]+`},
})

var keyParser = participle.MustBuild[keyGrammar](
	participle.Lexer(keyLexer),
)

// ParseKey parses one colon-separated filter token into a Key.
func ParseKey(token string) (Key, error) {
	parsed, err := keyParser.ParseString("", token)
	if err != nil {
		return Key{}, errors.NewValidation("filter", token,
			fmt.Sprintf("%q: expected Type[:Property[:Value]]", token))
	}
	switch len(parsed.Parts) {
	case 1:
		return TypeKey(parsed.Parts[0]), nil
	case 2:
		return PropertyKey(parsed.Parts[0], parsed.Parts[1]), nil
	case 3:
		return ValueKey(parsed.Parts[0], parsed.Parts[1], parsed.Parts[2]), nil
	default:
		return Key{}, errors.NewValidation("filter", token,
			fmt.Sprintf("%q: %d parts, at most 3 allowed", token, len(parsed.Parts)))
	}
}

// ParseKeys parses every token, stopping at the first malformed one.
// No tokens yields a nil slice.
func ParseKeys(tokens []string) ([]Key, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	keys := make([]Key, 0, len(tokens))
	for _, token := range tokens {
		k, err := ParseKey(token)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Filter selects keys by include and exclude lists. A key is tested at each
// of its granularities: an include entry for the bare type accepts all of
// that type's properties and values, and likewise for exclude. Exclusion
// wins over inclusion.
type Filter struct {
	include map[Key]struct{}
	exclude map[Key]struct{}
}

// NewFilter builds a filter. A nil include accepts everything not excluded;
// an empty non-nil include accepts nothing.
func NewFilter(include, exclude []Key) *Filter {
	f := &Filter{}
	if include != nil {
		f.include = keySet(include)
	}
	if len(exclude) > 0 {
		f.exclude = keySet(exclude)
	}
	return f
}

// ParseFilter builds a filter from raw include and exclude tokens.
func ParseFilter(include, exclude []string) (*Filter, error) {
	in, err := ParseKeys(include)
	if err != nil {
		return nil, err
	}
	ex, err := ParseKeys(exclude)
	if err != nil {
		return nil, err
	}
	return NewFilter(in, ex), nil
}

func keySet(keys []Key) map[Key]struct{} {
	set := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		set[Key{Type: k.Type, Property: k.Property, Value: k.Value, Kind: k.Kind}] = struct{}{}
	}
	return set
}

// candidates returns the key at each granularity up to its own, without any
// pair label.
func candidates(k Key) []Key {
	out := []Key{TypeKey(k.Type)}
	if k.Kind >= KindProperty {
		out = append(out, PropertyKey(k.Type, k.Property))
	}
	if k.Kind == KindValue {
		out = append(out, ValueKey(k.Type, k.Property, k.Value))
	}
	return out
}

// Accept reports whether k passes the filter. A nil filter accepts all keys.
func (f *Filter) Accept(k Key) bool {
	if f == nil {
		return true
	}
	keys := candidates(k)
	if f.include != nil && !anyIn(keys, f.include) {
		return false
	}
	return !anyIn(keys, f.exclude)
}

func anyIn(keys []Key, set map[Key]struct{}) bool {
	for _, k := range keys {
		if _, ok := set[k]; ok {
			return true
		}
	}
	return false
}
