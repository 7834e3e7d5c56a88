// Package xml provides the small XML surface the annotation loaders need:
// parsing, XPath selection, and element/attribute accessors.
//
// Security Notes:
//   - The xmlquery library is used for parsing, which uses Go's encoding/xml
//     internally and does not fetch external entities.
package xml

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element.
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Compile compiles an XPath expression so callers can reuse it.
func Compile(expr string) (*xpath.Expr, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return compiled, nil
}

// XPath executes an XPath query against the document.
func (d *Document) XPath(expr string) ([]*Node, error) {
	compiled, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return wrap(xmlquery.QuerySelectorAll(d.root, compiled)), nil
}

// XPath executes an XPath query relative to the node.
func (n *Node) XPath(expr string) ([]*Node, error) {
	if n == nil || n.node == nil {
		return nil, nil
	}
	compiled, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return wrap(xmlquery.QuerySelectorAll(n.node, compiled)), nil
}

func wrap(nodes []*xmlquery.Node) []*Node {
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result
}

// Name returns the element name.
func (n *Node) Name() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the whitespace-trimmed text content of the node.
func (n *Node) Text() string {
	if n == nil || n.node == nil {
		return ""
	}
	return strings.TrimSpace(n.node.InnerText())
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n == nil || n.node == nil {
		return nil
	}
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children() {
		if child.Name() == name {
			return child
		}
	}
	return nil
}

// ChildText returns the text of the first child element with the given name.
func (n *Node) ChildText(name string) string {
	return n.Child(name).Text()
}

// Attr returns the value of a specific attribute.
func (n *Node) Attr(name string) string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(name string) bool {
	if n == nil || n.node == nil {
		return false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return true
		}
	}
	return false
}
