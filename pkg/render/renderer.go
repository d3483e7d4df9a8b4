package render

import (
	"bytes"
	"io"

	"github.com/vango-dev/svgmirror/pkg/dom"
)

// RendererConfig configures the renderer.
type RendererConfig struct {
	// Pretty enables indented output, one element per line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer writes element trees as markup.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders an element tree to a string.
func (r *Renderer) RenderToString(el *dom.Element) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, el); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams an element tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, el *dom.Element) error {
	if el == nil {
		return nil
	}
	sw := &stickyWriter{w: w}
	r.renderElement(sw, el, 0, true)
	return sw.err
}

// renderElement writes el and its subtree. declare adds the SVG namespace
// declaration to the first SVG element of the output.
func (r *Renderer) renderElement(w *stickyWriter, el *dom.Element, depth int, declare bool) {
	tag := el.LocalName()
	isSVG := el.NamespaceURI() == dom.NamespaceSVG

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(tag)

	if isSVG && declare {
		if _, ok := el.GetAttributeNS("", "xmlns"); !ok {
			w.WriteString(` xmlns="` + dom.NamespaceSVG + `"`)
		}
		declare = false
	}
	r.renderAttributes(w, el)

	children := el.Children()
	text := el.Text()

	if len(children) == 0 && text == "" && el.NamespaceURI() != dom.NamespaceHTML {
		w.WriteString("/>")
		r.newline(w)
		return
	}
	w.WriteString(">")

	if text != "" {
		w.WriteString(escapeText(text))
	}

	if len(children) > 0 {
		r.newline(w)
		for _, child := range children {
			r.renderElement(w, child, depth+1, declare)
		}
		if r.config.Pretty {
			r.writeIndent(w, depth)
		}
	}

	w.WriteString("</")
	w.WriteString(tag)
	w.WriteString(">")
	r.newline(w)
}

// renderAttributes writes el's attributes in order. Namespaced attributes
// are written by local name.
func (r *Renderer) renderAttributes(w *stickyWriter, el *dom.Element) {
	for _, a := range el.Attributes() {
		w.WriteString(" ")
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(escapeAttr(a.Value))
		w.WriteString(`"`)
	}
}

func (r *Renderer) newline(w *stickyWriter) {
	if r.config.Pretty {
		w.WriteString("\n")
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

// stickyWriter remembers the first write error and drops every write after
// it.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) WriteString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}
