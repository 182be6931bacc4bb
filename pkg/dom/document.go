// Package dom wraps a parsed HTML tree with the handful of operations the
// enhancement layer performs on a live page: region lookup, inline style
// edits, class toggles and sibling-aware insertion.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoMatch reports that a selector did not resolve to any element.
var ErrNoMatch = errors.New("dom: no element matches selector")

// Document is an in-memory HTML page. It is not safe for concurrent use;
// callers serialise access the same way a browser serialises its UI thread.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML document. Fragments are completed with the implied
// html/head/body elements by the parser.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("dom: reader is required")
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	if d == nil || d.doc == nil || len(d.doc.Nodes) == 0 {
		return nil
	}
	return d.doc.Nodes[0]
}

// Find returns every element matching selector in document order.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// All returns the nodes matching selector. Invalid or unmatched selectors
// yield an empty slice.
func (d *Document) All(selector string) []*html.Node {
	if d == nil || d.doc == nil {
		return nil
	}
	return d.doc.Find(selector).Nodes
}

// First mirrors querySelector: the first match in document order, or nil.
func (d *Document) First(selector string) *html.Node {
	nodes := d.All(selector)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// MustFirst is First returning ErrNoMatch instead of nil.
func (d *Document) MustFirst(selector string) (*html.Node, error) {
	node := d.First(selector)
	if node == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return node, nil
}

// Body returns the body element. The HTML parser always synthesises one.
func (d *Document) Body() *html.Node {
	return d.First("body")
}

// ByID returns the element carrying id, or nil.
func (d *Document) ByID(id string) *html.Node {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.Root(), func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if value, ok := Attr(n, "id"); ok && value == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// Contains reports whether n is still attached to this document.
func (d *Document) Contains(n *html.Node) bool {
	root := d.Root()
	if root == nil || n == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Render serialises the document.
func (d *Document) Render(w io.Writer) error {
	root := d.Root()
	if root == nil {
		return errors.New("dom: document is empty")
	}
	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("dom: render document: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Within returns the descendants of n matching selector, querySelectorAll
// style.
func Within(n *html.Node, selector string) []*html.Node {
	if n == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(n).Find(selector).Nodes
}

// FirstWithin returns the first descendant of n matching selector.
func FirstWithin(n *html.Node, selector string) *html.Node {
	nodes := Within(n, selector)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Closest returns the nearest ancestor of n (n included) matching selector.
func Closest(n *html.Node, selector string) *html.Node {
	if n == nil {
		return nil
	}
	found := goquery.NewDocumentFromNode(n).Closest(selector)
	if len(found.Nodes) == 0 {
		return nil
	}
	return found.Nodes[0]
}

// NewElement builds a detached element.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     append([]html.Attribute(nil), attrs...),
	}
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// OuterHTML renders n and its subtree.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
