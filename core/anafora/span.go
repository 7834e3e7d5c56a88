package anafora

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Span is a half-open character offset interval [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether the two intervals share at least one offset.
// Touching spans such as (0,5) and (5,10) do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// String returns the Anafora rendering "start,end".
func (s Span) String() string {
	return strconv.Itoa(s.Start) + "," + strconv.Itoa(s.End)
}

// Spans is the ordered, possibly discontiguous extent of one entity.
type Spans []Span

// Equal reports whether both sequences hold the same spans in the same order.
func (s Spans) Equal(o Spans) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether any span of s overlaps any span of o.
func (s Spans) Overlaps(o Spans) bool {
	for _, a := range s {
		for _, b := range o {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// String returns the Anafora rendering "start,end;start,end".
func (s Spans) String() string {
	parts := make([]string, len(s))
	for i, span := range s {
		parts[i] = span.String()
	}
	return strings.Join(parts, ";")
}

// Extent holds one Spans slot per argument. Entities have exactly one slot;
// relations have one per annotation-valued property.
type Extent []Spans

// String renders the slots separated by '|'.
func (e Extent) String() string {
	parts := make([]string, len(e))
	for i, spans := range e {
		parts[i] = spans.String()
	}
	return strings.Join(parts, "|")
}

// Flatten concatenates all slots into a single Spans.
func (e Extent) Flatten() Spans {
	var out Spans
	for _, spans := range e {
		out = append(out, spans...)
	}
	return out
}

// spansGrammar is the participle grammar for Anafora span strings.
// Examples: "0,5", "0,5;7,9"
//
//nolint:govet // participle grammar tags are not standard struct tags
type spansGrammar struct {
	Spans []*spanGrammar `parser:"@@ ( \";\" @@ )*"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type spanGrammar struct {
	Start int `parser:"@Int \",\""`
	End   int `parser:"@Int"`
}

var spanLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[,;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var spanParser = participle.MustBuild[spansGrammar](
	participle.Lexer(spanLexer),
	participle.Elide("Whitespace"),
)

// ParseSpans parses an Anafora span string such as "0,5;7,9".
// An empty string yields no spans.
func ParseSpans(s string) (Spans, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parsed, err := spanParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid span format: %q: %w", s, err)
	}

	spans := make(Spans, len(parsed.Spans))
	for i, sp := range parsed.Spans {
		spans[i] = Span{Start: sp.Start, End: sp.End}
	}
	return spans, nil
}
