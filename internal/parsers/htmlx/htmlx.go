// Package htmlx wraps golang.org/x/net/html with the small set of DOM
// queries the Silver parsers need.
package htmlx

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Parse parses an HTML document.
func Parse(content []byte) (*html.Node, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// Walk visits every node under root in document order. Returning false
// from visit stops the walk.
func Walk(root *html.Node, visit func(*html.Node) bool) {
	var traverse func(*html.Node) bool
	traverse = func(n *html.Node) bool {
		if !visit(n) {
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !traverse(c) {
				return false
			}
		}
		return true
	}
	traverse(root)
}

// FindAll returns every element node under root matching pred.
func FindAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first element node under root matching pred.
func Find(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// ByTag matches elements with the given tag name.
func ByTag(name string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == name }
}

// ByClass matches elements with a class token containing the given
// substring. Lovdata and Skatteetaten pages decorate their tokens
// ("paragrafValgt", "content-main"), so substring matching is the
// useful contract.
func ByClass(substr string) func(*html.Node) bool {
	return func(n *html.Node) bool { return ClassContains(n, substr) }
}

// AnyOf matches elements satisfying any of the given predicates.
func AnyOf(preds ...func(*html.Node) bool) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// ClassContains reports whether any class token contains substr.
func ClassContains(n *html.Node, substr string) bool {
	for _, token := range strings.Fields(Attr(n, "class")) {
		if strings.Contains(token, substr) {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of a node with scripts and
// styles skipped and whitespace collapsed.
func Text(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// IsHeading reports whether the element is h1 through h6.
func IsHeading(n *html.Node) bool {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// TableRows returns the cell texts of every tr under root, one string
// slice per row.
func TableRows(root *html.Node) [][]string {
	var rows [][]string
	for _, tr := range FindAll(root, ByTag("tr")) {
		var cells []string
		for _, cell := range FindAll(tr, AnyOf(ByTag("td"), ByTag("th"))) {
			cells = append(cells, Text(cell))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}
