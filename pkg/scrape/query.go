package scrape

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse parses an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ParseBytes parses an HTML document held in memory.
func ParseBytes(b []byte) (*html.Node, error) {
	return Parse(bytes.NewReader(b))
}

// QueryAll returns every descendant of root matching sel, in document order.
// root itself is never matched.
func QueryAll(root *html.Node, sel Selector) []*html.Node {
	if root == nil || len(sel.parts) == 0 {
		return nil
	}
	matches := descendants(root, sel.parts[0])
	for _, part := range sel.parts[1:] {
		seen := make(map[*html.Node]bool)
		var next []*html.Node
		for _, m := range matches {
			for _, d := range descendants(m, part) {
				if !seen[d] {
					seen[d] = true
					next = append(next, d)
				}
			}
		}
		matches = next
	}
	return matches
}

// Query returns the first match of sel below root, or nil.
func Query(root *html.Node, sel Selector) *html.Node {
	if all := QueryAll(root, sel); len(all) > 0 {
		return all[0]
	}
	return nil
}

func descendants(root *html.Node, c compound) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if c.matches(ch) {
				out = append(out, ch)
			}
			walk(ch)
		}
	}
	walk(root)
	return out
}

// Attr returns the value of attribute key on n, or "".
func Attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the concatenated text of n and all its descendants.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// OwnText returns the text nodes that are direct children of n, unmodified
// and in document order.
func OwnText(n *html.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			out = append(out, c.Data)
		}
	}
	return out
}
