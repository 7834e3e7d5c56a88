package anafora

import (
	"io/fs"
	"os"

	"github.com/FocuswithJustin/anafora-eval/core/errors"
	"github.com/FocuswithJustin/anafora-eval/core/xml"
)

// Data is one annotated document: an ordered collection of annotations.
// A nil *Data behaves as an empty collection.
type Data struct {
	// Path is the file the data was loaded from, if any.
	Path string

	annotations []*Annotation
	byID        map[string]*Annotation
}

// NewData creates a document holding the given annotations.
func NewData(annotations ...*Annotation) *Data {
	d := &Data{byID: make(map[string]*Annotation)}
	for _, a := range annotations {
		d.Add(a)
	}
	return d
}

// Add appends an annotation.
func (d *Data) Add(a *Annotation) {
	d.annotations = append(d.annotations, a)
	if d.byID == nil {
		d.byID = make(map[string]*Annotation)
	}
	if a.ID != "" {
		d.byID[a.ID] = a
	}
}

// Annotations returns the annotations in document order.
func (d *Data) Annotations() []*Annotation {
	if d == nil {
		return nil
	}
	return d.annotations
}

// Len returns the number of annotations.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.annotations)
}

// Get returns the annotation with the given ID, or nil.
func (d *Data) Get(id string) *Annotation {
	if d == nil {
		return nil
	}
	return d.byID[id]
}

// Remove deletes the annotation (by identity) and reports whether it was
// present. Properties of the remaining annotations that referenced it fall
// back to its ID as plain text, as if the ID had never resolved.
func (d *Data) Remove(a *Annotation) bool {
	if d == nil {
		return false
	}
	for i, candidate := range d.annotations {
		if candidate != a {
			continue
		}
		d.annotations = append(d.annotations[:i], d.annotations[i+1:]...)
		if d.byID[a.ID] == a {
			delete(d.byID, a.ID)
		}
		for _, other := range d.annotations {
			for j := range other.Properties {
				if other.Properties[j].Value.Reference() == a {
					other.Properties[j].Value = StringValue(a.ID)
				}
			}
		}
		return true
	}
	return false
}

// Contains reports whether a itself (not an equal copy) is in the document.
func (d *Data) Contains(a *Annotation) bool {
	return a != nil && d.Get(a.ID) == a
}

type rawProperty struct {
	name string
	text string
}

// Parse parses Anafora XML. Property texts naming another annotation's ID in
// the same document become references.
func Parse(content []byte) (*Data, error) {
	doc, err := xml.Parse(content)
	if err != nil {
		return nil, errors.NewParse("XML", "", err.Error())
	}
	root := doc.Root()
	if root == nil || root.Name() != "data" {
		return nil, errors.NewParse("XML", "", "root element must be <data>")
	}

	d := NewData()
	pending := make(map[*Annotation][]rawProperty)

	for _, el := range root.Child("annotations").Children() {
		var a *Annotation
		switch el.Name() {
		case "entity":
			spans, err := ParseSpans(el.ChildText("span"))
			if err != nil {
				return nil, errors.NewParse("span", "", err.Error())
			}
			a = NewEntity(el.ChildText("id"), el.ChildText("type"), spans...)
		case "relation":
			a = NewRelation(el.ChildText("id"), el.ChildText("type"))
		default:
			continue
		}
		a.ParentsType = el.ChildText("parentsType")
		for _, prop := range el.Child("properties").Children() {
			pending[a] = append(pending[a], rawProperty{name: prop.Name(), text: prop.Text()})
		}
		d.Add(a)
	}

	for _, a := range d.annotations {
		for _, raw := range pending[a] {
			switch ref := d.byID[raw.text]; {
			case raw.text == "":
				a.Properties.Set(raw.name, EmptyValue())
			case ref != nil:
				a.Properties.Set(raw.name, ReferenceValue(ref))
			default:
				a.Properties.Set(raw.name, StringValue(raw.text))
			}
		}
	}

	return d, nil
}

// LoadFile reads and parses an Anafora XML file. A missing file yields a
// *errors.NotFoundError, a read failure an *errors.IOError and malformed
// content an *errors.ParseError.
func LoadFile(path string) (*Data, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, errors.NewNotFound("file", path)
		}
		return nil, nil, errors.NewIO("read", path, err)
	}

	d, err := Parse(content)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, content, err
	}
	d.Path = path
	return d, content, nil
}
