package eval

import (
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
)

// Equivalence decides when two span sets denote the same extent. Everything
// else about an annotation (type, parents type, properties) is always
// compared structurally; nested annotation references are compared with the
// same Equivalence.
//
// SpansBucket must return equal strings for spans that SpansEqual accepts.
// Unequal spans may share a bucket.
type Equivalence interface {
	Name() string
	SpansEqual(a, b anafora.Spans) bool
	SpansBucket(s anafora.Spans) string
}

type exact struct{}

func (exact) Name() string                       { return "exact" }
func (exact) SpansEqual(a, b anafora.Spans) bool { return a.Equal(b) }
func (exact) SpansBucket(s anafora.Spans) string { return s.String() }

type overlapping struct{}

func (overlapping) Name() string                       { return "overlap" }
func (overlapping) SpansEqual(a, b anafora.Spans) bool { return a.Overlaps(b) }

// SpansBucket is constant: overlap is not transitive, so no finer bucketing
// can be consistent with it.
func (overlapping) SpansBucket(anafora.Spans) string { return "" }

var (
	// Exact matches spans by identity: same spans in the same order.
	Exact Equivalence = exact{}

	// Overlapping matches spans when any sub-span of one overlaps any sub-span
	// of the other. The relation is reflexive for non-empty spans but not
	// transitive, so sets built under it hold clusters rather than
	// equivalence classes and their contents depend on insertion order.
	Overlapping Equivalence = overlapping{}
)

// ExtentsEqual compares two extents slot by slot.
func ExtentsEqual(eq Equivalence, a, b anafora.Extent) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq.SpansEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func extentBucket(eq Equivalence, e anafora.Extent) string {
	parts := make([]string, len(e))
	for i, spans := range e {
		parts[i] = eq.SpansBucket(spans)
	}
	return strconv.Itoa(len(e)) + "[" + strings.Join(parts, "|") + "]"
}

// AnnotationsEqual reports whether a and b are the same annotation under eq.
// IDs are ignored.
func AnnotationsEqual(eq Equivalence, a, b *anafora.Annotation) bool {
	return newComparer(eq).annotations(a, b)
}

// comparer walks two annotation graphs in lockstep. Pairs already on the
// current path fall back to a raw comparison that does not descend into
// properties, so cyclic property graphs terminate.
type comparer struct {
	eq       Equivalence
	visiting map[[2]*anafora.Annotation]bool
}

func newComparer(eq Equivalence) *comparer {
	return &comparer{eq: eq, visiting: make(map[[2]*anafora.Annotation]bool)}
}

func (c *comparer) annotations(a, b *anafora.Annotation) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.ParentsType != b.ParentsType || a.Kind != b.Kind {
		return false
	}

	pair := [2]*anafora.Annotation{a, b}
	if c.visiting[pair] {
		return ExtentsEqual(Exact, a.Extent(), b.Extent())
	}
	if !ExtentsEqual(c.eq, a.Extent(), b.Extent()) {
		return false
	}

	c.visiting[pair] = true
	defer delete(c.visiting, pair)

	if len(a.Properties) != len(b.Properties) {
		return false
	}
	for _, prop := range a.Properties {
		other, ok := b.Properties.Get(prop.Name)
		if !ok || !c.values(prop.Value, other) {
			return false
		}
	}
	return true
}

func (c *comparer) values(a, b anafora.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case anafora.ValueString:
		at, _ := a.Text()
		bt, _ := b.Text()
		return at == bt
	case anafora.ValueNumber:
		an, _ := a.Number()
		bn, _ := b.Number()
		return an == bn
	case anafora.ValueReference:
		return c.annotations(a.Reference(), b.Reference())
	default:
		return true
	}
}

// annotationBucket renders everything AnnotationsEqual requires to be
// identical, plus the extent as far as eq can bucket it.
func annotationBucket(eq Equivalence, a *anafora.Annotation) string {
	props := make([]string, len(a.Properties))
	for i, prop := range a.Properties {
		props[i] = prop.Name + "=" + prop.Value.String()
	}
	sort.Strings(props)

	var b strings.Builder
	b.WriteString(a.Kind.String())
	b.WriteByte(0)
	b.WriteString(a.Type)
	b.WriteByte(0)
	b.WriteString(a.ParentsType)
	b.WriteByte(0)
	b.WriteString(extentBucket(eq, a.Extent()))
	b.WriteByte(0)
	b.WriteString(strings.Join(props, "\x00"))
	return b.String()
}

type annotationMatcher struct{ eq Equivalence }

func (m annotationMatcher) Bucket(a *anafora.Annotation) string { return annotationBucket(m.eq, a) }
func (m annotationMatcher) Match(a, b *anafora.Annotation) bool { return AnnotationsEqual(m.eq, a, b) }

// AnnotationMatcher returns the set matcher for annotations under eq.
func AnnotationMatcher(eq Equivalence) Matcher[*anafora.Annotation] {
	return annotationMatcher{eq: eq}
}
