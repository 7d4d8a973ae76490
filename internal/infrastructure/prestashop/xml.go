package prestashop

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Node is a generic webservice XML element. Leaves carry text, branches carry children.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []*Node    `xml:",any"`
}

// cdata wraps leaf text so the encoder emits it as a CDATA section
type cdata struct {
	Value string `xml:",cdata"`
}

// NewElement creates a branch element with the given children
func NewElement(name string, children ...*Node) *Node {
	return &Node{XMLName: xml.Name{Local: name}, Children: children}
}

// NewLeaf creates a text element
func NewLeaf(name, text string) *Node {
	return &Node{XMLName: xml.Name{Local: name}, Content: text}
}

// WithAttr sets an attribute and returns the node
func (n *Node) WithAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return n
}

// Name returns the element's local name
func (n *Node) Name() string {
	return n.XMLName.Local
}

// Attr returns the value of a non-namespaced attribute
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// Child returns the first direct child with the given local name
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given local name
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// Find follows path from n, taking the first matching child at each step
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Text returns the trimmed text of the element at path, or "" when absent
func (n *Node) Text(path ...string) string {
	target := n.Find(path...)
	if target == nil {
		return ""
	}
	return strings.TrimSpace(target.Content)
}

// SetText replaces the element's text and drops its children
func (n *Node) SetText(text string) {
	n.Content = text
	n.Children = nil
}

// Append adds children and returns the node
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Remove drops every direct child whose local name is listed
func (n *Node) Remove(names ...string) {
	if n == nil || len(names) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if _, ok := drop[c.XMLName.Local]; !ok {
			kept = append(kept, c)
		}
	}
	n.Children = kept
}

// MarshalXML writes the element without namespaces. Leaf text is written as CDATA.
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.XMLName.Local}}
	for _, a := range n.Attrs {
		// xmlns declarations and xlink:href do not survive a round trip
		if a.Name.Space != "" || a.Name.Local == "xmlns" {
			continue
		}
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
	}

	if len(n.Children) == 0 {
		return e.EncodeElement(cdata{Value: n.Content}, start)
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := e.EncodeElement(c, xml.StartElement{Name: c.XMLName}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// ParseDocument decodes a webservice response body
func ParseDocument(data []byte) (*Node, error) {
	var root Node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// MarshalDocument encodes a document with the XML declaration
func MarshalDocument(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// document wraps a resource element in the <prestashop> root
func document(resource *Node) *Node {
	return NewElement("prestashop", resource)
}
