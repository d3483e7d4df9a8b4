// Package htmlsrc builds authoring trees from HTML markup.
//
// Markup is parsed the way a browser parses it, with golang.org/x/net/html,
// and converted into dom elements in the HTML namespace. Every attribute
// written in the markup is a specified attribute. Text is kept only for
// elements without element children, which is the only text the mirror
// engine reads.
package htmlsrc

import (
	"io"
	"strings"

	mirrorerr "github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// Parse reads an HTML document from r and returns the first element named
// hostTag, converted with its subtree. An empty hostTag selects <body>.
// The input encoding is detected from a byte order mark or <meta> tag.
func Parse(doc *dom.Document, r io.Reader, hostTag string) (*dom.Element, error) {
	utf8, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(utf8)
	if err != nil {
		return nil, err
	}

	if hostTag == "" {
		hostTag = "body"
	}
	hostTag = strings.ToLower(hostTag)

	host := findElement(root, hostTag)
	if host == nil {
		return nil, mirrorerr.New("L001").
			WithDetailf("No <%s> element in the markup.", hostTag).
			WithSuggestion("Wrap the drawing in <" + hostTag + ">...</" + hostTag + "> or pass --host.")
	}
	return convert(doc, host), nil
}

// ParseString is Parse over a string.
func ParseString(doc *dom.Document, markup, hostTag string) (*dom.Element, error) {
	return Parse(doc, strings.NewReader(markup), hostTag)
}

// ParseFragment parses markup as the content of a <body> element and
// returns the top-level elements it contains. Top-level text is dropped.
func ParseFragment(doc *dom.Document, markup string) ([]*dom.Element, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}

	out := make([]*dom.Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, convert(doc, n))
		}
	}
	return out, nil
}

// findElement returns the first element named tag in document order.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// convert copies an element node and its element descendants.
func convert(doc *dom.Document, n *html.Node) *dom.Element {
	el := doc.CreateElement(n.Data)
	for _, a := range n.Attr {
		el.SetAttribute(a.Key, a.Val)
	}

	var text strings.Builder
	hasElements := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			hasElements = true
			el.AppendChild(convert(doc, c))
		case html.TextNode:
			text.WriteString(c.Data)
		}
	}
	if !hasElements && text.Len() > 0 {
		el.SetText(text.String())
	}
	return el
}
