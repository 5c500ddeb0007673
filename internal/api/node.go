package api

import (
	"encoding/xml"
	"strings"
)

// Node is a namespace-resolved XML element kept without schema knowledge.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []Node     `xml:",any"`
}

// Name returns the local element name.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.XMLName.Local
}

// Child returns the first child element with the given local name, or nil.
func (n *Node) Child(local string) *Node {
	if n == nil {
		return nil
	}
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

// Children returns all child elements with the given local name.
func (n *Node) Children(local string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// Find walks a path of local names below n.
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

// Attr returns the data attribute with the given local name. Namespace
// declarations and xsi:* attributes never match; use AttrNS for those.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.DataAttrs() {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrNS returns the attribute with the given namespace URI and local name,
// e.g. AttrNS(NSXSI, "type").
func (n *Node) AttrNS(space, local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the trimmed character data of n.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content)
}

// IsNil reports whether the element is marked xsi:nil="true".
func (n *Node) IsNil() bool {
	if n == nil {
		return true
	}
	for _, a := range n.Attrs {
		if a.Name.Space == NSXSI && a.Name.Local == "nil" {
			return a.Value == "true" || a.Value == "1"
		}
	}
	return false
}

// DataAttrs returns the attributes that carry record data, skipping namespace
// declarations and xsi:* schema hints.
func (n *Node) DataAttrs() []xml.Attr {
	if n == nil {
		return nil
	}
	out := make([]xml.Attr, 0, len(n.Attrs))
	for _, a := range n.Attrs {
		switch {
		case a.Name.Space == "xmlns", a.Name.Space == "" && a.Name.Local == "xmlns":
			continue
		case a.Name.Space == NSXSI:
			continue
		}
		out = append(out, a)
	}
	return out
}
