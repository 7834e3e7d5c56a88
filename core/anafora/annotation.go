package anafora

import (
	"strconv"
	"strings"
)

// Kind distinguishes entities from relations.
type Kind int

// Annotation kinds.
const (
	KindEntity Kind = iota
	KindRelation
)

// String returns the XML element name for the kind.
func (k Kind) String() string {
	if k == KindRelation {
		return "relation"
	}
	return "entity"
}

// ValueKind identifies which variant a Value holds.
type ValueKind int

// Value kinds.
const (
	ValueEmpty ValueKind = iota
	ValueString
	ValueNumber
	ValueReference
)

// Value is a property value: a string, a number, a reference to another
// annotation, or empty (the property element had no text).
type Value struct {
	kind   ValueKind
	text   string
	number float64
	ref    *Annotation
}

// EmptyValue returns the value of a property element with no text.
func EmptyValue() Value { return Value{} }

// StringValue wraps a string property value.
func StringValue(s string) Value { return Value{kind: ValueString, text: s} }

// NumberValue wraps a numeric property value.
func NumberValue(f float64) Value { return Value{kind: ValueNumber, number: f} }

// ReferenceValue wraps a reference to another annotation.
func ReferenceValue(a *Annotation) Value { return Value{kind: ValueReference, ref: a} }

// Kind returns the value variant.
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the string payload and whether the value is a string.
func (v Value) Text() (string, bool) { return v.text, v.kind == ValueString }

// Number returns the numeric payload and whether the value is a number.
func (v Value) Number() (float64, bool) { return v.number, v.kind == ValueNumber }

// Reference returns the referenced annotation, or nil.
func (v Value) Reference() *Annotation {
	if v.kind != ValueReference {
		return nil
	}
	return v.ref
}

// String renders the value for diagnostics and bucket keys. References render
// as the referenced annotation's type so that identity-free comparisons agree.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return strconv.Quote(v.text)
	case ValueNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case ValueReference:
		if v.ref == nil {
			return "@nil"
		}
		return "@" + v.ref.Type
	default:
		return "<empty>"
	}
}

// Property is one name/value pair of an annotation.
type Property struct {
	Name  string
	Value Value
}

// Properties is an ordered name to value mapping.
type Properties []Property

// Get returns the value for name.
func (p Properties) Get(name string) (Value, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the value for name, appending it if absent.
func (p *Properties) Set(name string, v Value) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = v
			return
		}
	}
	*p = append(*p, Property{Name: name, Value: v})
}

// Names returns property names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// Annotation is one entity or relation. The ID identifies it within its
// document but does not take part in cross-document comparison.
type Annotation struct {
	ID          string
	Type        string
	ParentsType string
	Kind        Kind
	Spans       Spans
	Properties  Properties
}

// NewEntity creates an entity annotation.
func NewEntity(id, typ string, spans ...Span) *Annotation {
	return &Annotation{ID: id, Type: typ, Kind: KindEntity, Spans: spans}
}

// NewRelation creates a relation annotation. Its extent is derived from its
// annotation-valued properties.
func NewRelation(id, typ string) *Annotation {
	return &Annotation{ID: id, Type: typ, Kind: KindRelation}
}

// With sets a property and returns the annotation for chaining.
func (a *Annotation) With(name string, v Value) *Annotation {
	a.Properties.Set(name, v)
	return a
}

// Extent returns the annotation's spans. An entity yields its own spans as a
// single slot. A relation yields one slot per referenced annotation, holding
// that annotation's flattened spans. A reference back into the current path
// contributes an empty slot.
func (a *Annotation) Extent() Extent {
	return a.extent(make(map[*Annotation]bool))
}

func (a *Annotation) extent(path map[*Annotation]bool) Extent {
	if a.Kind == KindEntity {
		return Extent{a.Spans}
	}
	path[a] = true
	defer delete(path, a)

	var e Extent
	for _, prop := range a.Properties {
		ref := prop.Value.Reference()
		if ref == nil {
			continue
		}
		if path[ref] {
			e = append(e, nil)
			continue
		}
		e = append(e, ref.extent(path).Flatten())
	}
	return e
}

// String renders the annotation for diagnostics.
func (a *Annotation) String() string {
	var b strings.Builder
	b.WriteString(a.Kind.String())
	b.WriteString(" ")
	b.WriteString(a.ID)
	b.WriteString(" ")
	b.WriteString(a.Type)
	b.WriteString(" [")
	b.WriteString(a.Extent().String())
	b.WriteString("]")
	for _, prop := range a.Properties {
		b.WriteString(" ")
		b.WriteString(prop.Name)
		b.WriteString("=")
		if ref := prop.Value.Reference(); ref != nil {
			b.WriteString(ref.ID)
		} else {
			b.WriteString(prop.Value.String())
		}
	}
	return b.String()
}
