package views_test

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type htmlNode = html.Node

// dom is a parsed page queried the way a user finds things on screen.
type dom struct {
	root *html.Node
}

func render(t *testing.T, fn func(w io.Writer) error) *dom {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, fn(&buf))

	root, err := html.Parse(&buf)
	require.NoError(t, err)

	return &dom{root: root}
}

func (d *dom) walk(fn func(n *html.Node)) {
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		fn(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(d.root)
}

func (d *dom) allByTestID(id string) []*html.Node {
	var out []*html.Node
	d.walk(func(n *html.Node) {
		if n.Type == html.ElementNode && attr(n, "data-testid") == id {
			out = append(out, n)
		}
	})
	return out
}

func (d *dom) byTestID(t *testing.T, id string) *html.Node {
	t.Helper()

	nodes := d.allByTestID(id)
	require.Len(t, nodes, 1, "data-testid=%q", id)
	return nodes[0]
}

// allByText returns the elements whose own text is exactly text.
func (d *dom) allByText(text string) []*html.Node {
	var out []*html.Node
	d.walk(func(n *html.Node) {
		if n.Type == html.ElementNode && ownText(n) == text {
			out = append(out, n)
		}
	})
	return out
}

// textsMatching returns the own text of every element matching re, in
// document order.
func (d *dom) textsMatching(re *regexp.Regexp) []string {
	var out []string
	d.walk(func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if text := ownText(n); re.MatchString(text) {
			out = append(out, text)
		}
	})
	return out
}

func ownText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
