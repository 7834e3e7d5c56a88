package anafora

import (
	"fmt"
	"os"
	"strings"

	"github.com/FocuswithJustin/anafora-eval/core/errors"
	"github.com/FocuswithJustin/anafora-eval/core/xml"
)

// PropertyDef describes one property allowed on an annotation type.
type PropertyDef struct {
	Name       string
	Input      string
	Required   bool
	Choices    []string
	InstanceOf []string
}

// TypeDef describes one annotation type.
type TypeDef struct {
	Name        string
	ParentsType string
	Kind        Kind
	Properties  []PropertyDef
}

func (t *TypeDef) property(name string) *PropertyDef {
	for i := range t.Properties {
		if t.Properties[i].Name == name {
			return &t.Properties[i]
		}
	}
	return nil
}

// Schema is the validity checker for Anafora data.
type Schema struct {
	types map[string]*TypeDef
}

// SchemaError reports one invalid annotation.
type SchemaError struct {
	Annotation *Annotation
	Message    string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Annotation.ID, e.Message)
}

// Type returns the definition for a type name, or nil.
func (s *Schema) Type(name string) *TypeDef {
	return s.types[name]
}

// LoadSchema reads and parses an Anafora schema file.
func LoadSchema(path string) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	s, err := ParseSchema(content)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return s, nil
}

// ParseSchema parses Anafora schema XML.
func ParseSchema(content []byte) (*Schema, error) {
	doc, err := xml.Parse(content)
	if err != nil {
		return nil, errors.NewParse("schema", "", err.Error())
	}
	root := doc.Root()
	if root == nil || root.Name() != "schema" {
		return nil, errors.NewParse("schema", "", "root element must be <schema>")
	}

	requiredDefault := true
	if v := root.Child("defaultattribute").ChildText("required"); v != "" {
		requiredDefault = parseBool(v)
	}

	s := &Schema{types: make(map[string]*TypeDef)}
	groups := []struct {
		expr string
		kind Kind
	}{
		{"definition//entities/entity", KindEntity},
		{"definition//relations/relation", KindRelation},
	}
	for _, g := range groups {
		nodes, err := root.XPath(g.expr)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			def := &TypeDef{Name: n.Attr("type"), Kind: g.kind}
			if parents, err := n.XPath("parent::*"); err == nil && len(parents) > 0 {
				def.ParentsType = parents[0].Attr("type")
			}
			for _, p := range n.Child("properties").Children() {
				def.Properties = append(def.Properties, parsePropertyDef(p, requiredDefault))
			}
			if def.Name == "" {
				return nil, errors.NewParse("schema", "", fmt.Sprintf("%s without type attribute", g.kind))
			}
			s.types[def.Name] = def
		}
	}
	return s, nil
}

func parsePropertyDef(n *xml.Node, requiredDefault bool) PropertyDef {
	def := PropertyDef{
		Name:     n.Attr("type"),
		Input:    n.Attr("input"),
		Required: requiredDefault,
	}
	if n.HasAttr("required") {
		def.Required = parseBool(n.Attr("required"))
	}
	if def.Input == "choice" {
		for _, choice := range strings.Split(n.Text(), ",") {
			def.Choices = append(def.Choices, strings.TrimSpace(choice))
		}
	}
	if v := n.Attr("instanceOf"); v != "" {
		for _, t := range strings.Split(v, ",") {
			def.InstanceOf = append(def.InstanceOf, strings.TrimSpace(t))
		}
	}
	return def
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// Errors returns every schema violation in d, in document order.
func (s *Schema) Errors(d *Data) []SchemaError {
	var errs []SchemaError
	for _, a := range d.Annotations() {
		errs = append(errs, s.annotationErrors(d, a)...)
	}
	return errs
}

func (s *Schema) annotationErrors(d *Data, a *Annotation) []SchemaError {
	fail := func(format string, args ...any) SchemaError {
		return SchemaError{Annotation: a, Message: fmt.Sprintf(format, args...)}
	}

	def := s.types[a.Type]
	if def == nil {
		return []SchemaError{fail("invalid type %q", a.Type)}
	}
	if def.Kind != a.Kind {
		return []SchemaError{fail("%q is defined as %s, found %s", a.Type, def.Kind, a.Kind)}
	}

	var errs []SchemaError
	for _, span := range a.Spans {
		if span.Start >= span.End {
			errs = append(errs, fail("invalid span (%s)", span))
		}
	}

	for _, prop := range a.Properties {
		if def.property(prop.Name) == nil {
			errs = append(errs, fail("invalid property %q", prop.Name))
		}
	}

	for _, pd := range def.Properties {
		value, ok := a.Properties.Get(pd.Name)
		if !ok || value.Kind() == ValueEmpty {
			if pd.Required {
				errs = append(errs, fail("missing required property %q", pd.Name))
			}
			continue
		}
		if len(pd.Choices) > 0 {
			text, isText := value.Text()
			if !isText || !contains(pd.Choices, text) {
				errs = append(errs, fail("invalid value %s for property %q", value, pd.Name))
			}
		}
		if len(pd.InstanceOf) > 0 {
			ref := value.Reference()
			switch {
			case ref == nil || !d.Contains(ref):
				errs = append(errs, fail("property %q must reference an annotation, found %s", pd.Name, value))
			case !contains(pd.InstanceOf, ref.Type):
				errs = append(errs, fail("property %q references %q, expected one of %v", pd.Name, ref.Type, pd.InstanceOf))
			}
		}
	}
	return errs
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
