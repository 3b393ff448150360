package styledtree

import (
	"strings"

	"github.com/npillmayer/htmlpix/engine/dom/style"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	htmlNode       *html.Node
	parent         *StyNode
	children       []*StyNode
	computedStyles *style.PropertyMap
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(h *html.Node) *StyNode {
	return &StyNode{htmlNode: h}
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Parent returns the parent node, or nil for the root.
func (sn *StyNode) Parent() *StyNode {
	return sn.parent
}

// Children returns the child nodes in document order.
func (sn *StyNode) Children() []*StyNode {
	return sn.children
}

// AddChild appends a child node.
func (sn *StyNode) AddChild(ch *StyNode) {
	ch.parent = sn
	sn.children = append(sn.children, ch)
}

// Styles returns the computed properties of the node. Text nodes share the
// styles of their parent element.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// Get is a shortcut for Styles().Get(key).
func (sn *StyNode) Get(key string) style.Property {
	return sn.computedStyles.Get(key)
}

// IsText is true for text nodes.
func (sn *StyNode) IsText() bool {
	return sn.htmlNode != nil && sn.htmlNode.Type == html.TextNode
}

// Text returns the text of a text node, or "".
func (sn *StyNode) Text() string {
	if !sn.IsText() {
		return ""
	}
	return sn.htmlNode.Data
}

// Tag returns the lower-case element name, or "" for non-elements.
func (sn *StyNode) Tag() string {
	if sn.htmlNode == nil || sn.htmlNode.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(sn.htmlNode.Data)
}

// Walk calls fn for every node of the subtree of sn in document order.
// If fn returns false, the children of the node are skipped.
func (sn *StyNode) Walk(fn func(*StyNode) bool) {
	if !fn(sn) {
		return
	}
	for _, ch := range sn.children {
		ch.Walk(fn)
	}
}

// Find returns the first element with the given tag in the subtree of sn.
func (sn *StyNode) Find(tag string) *StyNode {
	var found *StyNode
	sn.Walk(func(n *StyNode) bool {
		if found == nil && n.Tag() == tag {
			found = n
		}
		return found == nil
	})
	return found
}
