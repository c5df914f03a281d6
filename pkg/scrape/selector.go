package scrape

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Selector is a compiled selector: a chain of compound selectors joined by
// descendant combinators.
type Selector struct {
	raw   string
	parts []compound
}

type attrOp int

const (
	attrExists attrOp = iota
	attrEquals
	attrPrefix
	attrContains
)

type attrMatch struct {
	key string
	op  attrOp
	val string
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

// Compile parses a selector.
func Compile(sel string) (Selector, error) {
	fields := strings.Fields(sel)
	if len(fields) == 0 {
		return Selector{}, fmt.Errorf("empty selector")
	}
	s := Selector{raw: sel}
	for _, f := range fields {
		c, err := parseCompound(f)
		if err != nil {
			return Selector{}, fmt.Errorf("selector %q: %w", sel, err)
		}
		s.parts = append(s.parts, c)
	}
	return s, nil
}

// MustCompile is like Compile but panics on error.
// It is intended for package-level selector variables.
func MustCompile(sel string) Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the source text of the selector.
func (s Selector) String() string { return s.raw }

func parseCompound(f string) (compound, error) {
	var c compound
	i := 0
	for i < len(f) && !strings.ContainsRune(".#[", rune(f[i])) {
		i++
	}
	c.tag = strings.ToLower(f[:i])
	if strings.ContainsAny(c.tag, ":>+~,") {
		return c, fmt.Errorf("unsupported syntax in %q", f)
	}

	for i < len(f) {
		switch f[i] {
		case '.', '#':
			j := i + 1
			for j < len(f) && !strings.ContainsRune(".#[", rune(f[j])) {
				j++
			}
			name := f[i+1 : j]
			if name == "" {
				return c, fmt.Errorf("empty name in %q", f)
			}
			if f[i] == '.' {
				c.classes = append(c.classes, name)
			} else {
				c.id = name
			}
			i = j
		case '[':
			end := strings.IndexByte(f[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute in %q", f)
			}
			m, err := parseAttr(f[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, m)
			i += end + 1
		default:
			return c, fmt.Errorf("unexpected %q in %q", f[i], f)
		}
	}
	return c, nil
}

func parseAttr(body string) (attrMatch, error) {
	for _, op := range []struct {
		tok string
		op  attrOp
	}{{"^=", attrPrefix}, {"*=", attrContains}, {"=", attrEquals}} {
		if k, v, ok := strings.Cut(body, op.tok); ok {
			if k == "" {
				return attrMatch{}, fmt.Errorf("empty attribute name in [%s]", body)
			}
			return attrMatch{key: k, op: op.op, val: strings.Trim(v, `"'`)}, nil
		}
	}
	if body == "" {
		return attrMatch{}, fmt.Errorf("empty attribute selector")
	}
	return attrMatch{key: body, op: attrExists}, nil
}

func (c compound) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && n.Data != c.tag {
		return false
	}
	if c.id != "" && Attr(n, "id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(Attr(n, "class"))
		for _, want := range c.classes {
			if !contains(have, want) {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		val, ok := lookupAttr(n, a.key)
		if !ok {
			return false
		}
		switch a.op {
		case attrEquals:
			if val != a.val {
				return false
			}
		case attrPrefix:
			if !strings.HasPrefix(val, a.val) {
				return false
			}
		case attrContains:
			if !strings.Contains(val, a.val) {
				return false
			}
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
