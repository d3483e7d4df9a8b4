package mirrortest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/htmlsrc"
	"github.com/vango-dev/svgmirror/pkg/mirror"
	"github.com/vango-dev/svgmirror/pkg/render"
)

// HostTag is the host element Attach wraps markup in.
const HostTag = "svg-html"

// Attach parses markup as the content of a host element and attaches a new
// engine to it. The test fails if either step fails.
func Attach(tb testing.TB, markup string, opts ...mirror.Option) (*mirror.Engine, *dom.Element) {
	tb.Helper()

	doc := dom.NewDocument()
	host, err := htmlsrc.ParseString(doc, "<"+HostTag+">"+markup+"</"+HostTag+">", HostTag)
	if err != nil {
		tb.Fatalf("parse markup: %v", err)
	}

	engine := mirror.New(doc, opts...)
	if err := engine.Attach(host); err != nil {
		tb.Fatalf("attach: %v", err)
	}
	tb.Cleanup(func() { _ = engine.Close() })
	return engine, host
}

// AssertMirrored fails the test if the engine's presentation tree does not
// mirror its host.
func AssertMirrored(tb testing.TB, e *mirror.Engine) {
	tb.Helper()
	if err := Mirrored(e); err != nil {
		tb.Errorf("presentation tree does not mirror the host:\n%v\nrendered: %s", err, RenderToString(e.Root()))
	}
}

// Mirrored returns an error describing every way the engine's presentation
// tree differs from its host tree, or nil.
func Mirrored(e *mirror.Engine) error {
	host := e.Host()
	if host == nil {
		return errors.New("engine is not attached")
	}

	c := &checker{engine: e}
	if p, ok := e.Lookup(host); !ok || p != e.Root() {
		c.failf("host %s is not paired with the root", host)
	}
	if got, want := e.Root().ChildCount(), host.ChildCount(); got != want {
		c.failf("root has %d children, host has %d", got, want)
	}
	for _, child := range host.Children() {
		c.check(child, e.Root())
	}

	// The host is paired and watched too.
	if got, want := e.Associations(), c.visited+1; got != want {
		c.failf("%d pairs for %d elements", got, want)
	}
	if got, want := e.Watchers(), c.visited+1; got != want {
		c.failf("%d watchers for %d elements", got, want)
	}
	return errors.Join(c.errs...)
}

type checker struct {
	engine  *mirror.Engine
	visited int
	errs    []error
}

func (c *checker) failf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

func (c *checker) check(a, parent *dom.Element) {
	c.visited++

	p, ok := c.engine.Lookup(a)
	if !ok {
		c.failf("%s has no pair", a)
		return
	}
	if !c.engine.Watching(a) {
		c.failf("%s is not watched", a)
	}

	if p.Parent() != parent {
		c.failf("pair of %s is under %s, want %s", a, p.Parent(), parent)
	} else if p.Index() != a.Index() {
		c.failf("pair of %s is at index %d, want %d", a, p.Index(), a.Index())
	}

	if want := mirror.ResolveTag(a.TagName()); p.LocalName() != want {
		c.failf("pair of %s has tag %q, want %q", a, p.LocalName(), want)
	}
	if p.NamespaceURI() != dom.NamespaceSVG {
		c.failf("pair of %s is in namespace %q", a, p.NamespaceURI())
	}

	c.checkAttributes(a, p)

	if a.ChildCount() == 0 && p.Text() != a.TextContent() {
		c.failf("pair of %s has text %q, want %q", a, p.Text(), a.TextContent())
	}
	if p.ChildCount() != a.ChildCount() {
		c.failf("pair of %s has %d children, want %d", a, p.ChildCount(), a.ChildCount())
	}

	for _, child := range a.Children() {
		c.check(child, p)
	}
}

func (c *checker) checkAttributes(a, p *dom.Element) {
	want := make(map[string]string)
	for _, attr := range a.SpecifiedAttributes() {
		want[attr.Name] = attr.Value
	}

	got := p.Attributes()
	for _, attr := range got {
		if attr.Namespace != "" {
			c.failf("pair of %s has namespaced attribute %s:%s", a, attr.Namespace, attr.Name)
			continue
		}
		v, ok := want[attr.Name]
		switch {
		case !ok:
			c.failf("pair of %s has extra attribute %s=%q", a, attr.Name, attr.Value)
		case v != attr.Value:
			c.failf("pair of %s has %s=%q, want %q", a, attr.Name, attr.Value, v)
		}
	}
	if len(got) < len(want) {
		for name := range want {
			if _, ok := p.GetAttributeNS("", name); !ok {
				c.failf("pair of %s is missing attribute %s", a, name)
			}
		}
	}
}

// RenderToString renders an element tree without pretty printing.
func RenderToString(el *dom.Element) string {
	s, err := render.NewRenderer(render.RendererConfig{}).RenderToString(el)
	if err != nil {
		return "<render error: " + err.Error() + ">"
	}
	return s
}

// ExpectContains asserts that the rendered tree contains a substring.
//
// Example:
//
//	mirrortest.ExpectContains(t, engine.Root(), `<rect fill="red"/>`)
func ExpectContains(tb testing.TB, el *dom.Element, expected string) {
	tb.Helper()
	out := RenderToString(el)
	if !strings.Contains(out, expected) {
		tb.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(out, 500))
	}
}

// ExpectNotContains asserts that the rendered tree does not contain a
// substring.
func ExpectNotContains(tb testing.TB, el *dom.Element, unexpected string) {
	tb.Helper()
	out := RenderToString(el)
	if strings.Contains(out, unexpected) {
		tb.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(out, 500))
	}
}

// ExpectAttribute asserts that el carries the null-namespace attribute
// name with the given value.
func ExpectAttribute(tb testing.TB, el *dom.Element, name, value string) {
	tb.Helper()
	got, ok := el.GetAttributeNS("", name)
	if !ok {
		tb.Errorf("expected %s to have attribute %s", el, name)
		return
	}
	if got != value {
		tb.Errorf("%s has %s=%q, want %q", el, name, got, value)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
