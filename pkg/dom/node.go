package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr creates or overwrites key on n.
func SetAttr(n *html.Node, key, value string) {
	if n == nil {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr drops key from n.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	out := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		out = append(out, attr)
	}
	n.Attr = out
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	raw, _ := Attr(n, "class")
	return strings.Fields(raw)
}

// HasClass reports whether class is present on n.
func HasClass(n *html.Node, class string) bool {
	for _, existing := range Classes(n) {
		if existing == class {
			return true
		}
	}
	return false
}

// AddClass appends class when missing.
func AddClass(n *html.Node, class string) {
	if n == nil || class == "" || HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.Join(append(Classes(n), class), " "))
}

// RemoveClass drops class. An emptied class attribute is removed entirely.
func RemoveClass(n *html.Node, class string) {
	if n == nil || !HasClass(n, class) {
		return
	}
	kept := make([]string, 0, len(Classes(n)))
	for _, existing := range Classes(n) {
		if existing != class {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass flips class and reports whether it is now present.
func ToggleClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		RemoveClass(n, class)
		return false
	}
	AddClass(n, class)
	return true
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	RemoveChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// ReplaceChildren swaps the children of n for nodes. Nodes must be detached.
func ReplaceChildren(n *html.Node, nodes ...*html.Node) {
	if n == nil {
		return
	}
	RemoveChildren(n)
	for _, child := range nodes {
		if child == nil {
			continue
		}
		n.AppendChild(child)
	}
}

// Remove detaches n from its parent. Detached nodes are left untouched.
func Remove(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// InsertBefore attaches node as the previous sibling of ref.
func InsertBefore(ref, node *html.Node) {
	if ref == nil || ref.Parent == nil || node == nil {
		return
	}
	ref.Parent.InsertBefore(node, ref)
}

// InsertAfterSkippingBreaks places node right after ref, stepping over any
// <br> siblings so the inserted node follows the visible content of ref. When
// nothing but breaks follows ref, node is appended to the parent.
func InsertAfterSkippingBreaks(ref, node *html.Node) {
	if ref == nil || ref.Parent == nil || node == nil {
		return
	}
	next := ref.NextSibling
	for next != nil && IsBreak(next) {
		next = next.NextSibling
	}
	if next != nil {
		ref.Parent.InsertBefore(node, next)
		return
	}
	ref.Parent.AppendChild(node)
}

// IsBreak reports whether n is a <br> element.
func IsBreak(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && (n.DataAtom == atom.Br || strings.EqualFold(n.Data, "br"))
}

// IsTag reports whether n is an element with the given tag name.
func IsTag(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}
