package htmlsrc

import (
	"strings"
	"testing"

	mirrorerr "github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
)

const drawing = `<!DOCTYPE html>
<html>
<body>
  <h1>Chart</h1>
  <svg-html view-box="0 0 100 100">
    <linearGradient id="g"><stop offset="0"></stop></linearGradient>
    <rect x="0" y="0" FILL="red"></rect>
    <text x="5">42</text>
  </svg-html>
</body>
</html>`

func TestParseFindsHost(t *testing.T) {
	doc := dom.NewDocument()
	host, err := ParseString(doc, drawing, "svg-html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if host.LocalName() != "svg-html" {
		t.Fatalf("host = %s, want svg-html", host.LocalName())
	}
	if v, _ := host.GetAttribute("view-box"); v != "0 0 100 100" {
		t.Errorf("view-box = %q", v)
	}
	if host.ChildCount() != 3 {
		t.Fatalf("host has %d children, want 3", host.ChildCount())
	}

	tests := []struct {
		index int
		tag   string
	}{
		{0, "lineargradient"},
		{1, "rect"},
		{2, "text"},
	}
	for _, tt := range tests {
		if got := host.Child(tt.index).LocalName(); got != tt.tag {
			t.Errorf("child %d = %s, want %s", tt.index, got, tt.tag)
		}
	}
}

func TestParseAttributesAreSpecified(t *testing.T) {
	doc := dom.NewDocument()
	host, err := ParseString(doc, drawing, "svg-html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rect := host.Child(1)
	attrs := rect.SpecifiedAttributes()
	if len(attrs) != 3 {
		t.Fatalf("got %d specified attributes, want 3", len(attrs))
	}
	if v, ok := rect.GetAttribute("fill"); !ok || v != "red" {
		t.Errorf("fill = %q, %v (names are lower-cased by the parser)", v, ok)
	}
}

func TestParseTextOnlyForLeaves(t *testing.T) {
	doc := dom.NewDocument()
	host, err := ParseString(doc, drawing, "svg-html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := host.Child(2).Text(); got != "42" {
		t.Errorf("text = %q, want 42", got)
	}
	if got := host.Text(); got != "" {
		t.Errorf("host text = %q, want empty (it has element children)", got)
	}
}

func TestParseDefaultsToBody(t *testing.T) {
	doc := dom.NewDocument()
	body, err := ParseString(doc, drawing, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.LocalName() != "body" || body.ChildCount() != 2 {
		t.Errorf("got %s with %d children", body.LocalName(), body.ChildCount())
	}
}

func TestParseMissingHost(t *testing.T) {
	doc := dom.NewDocument()
	_, err := ParseString(doc, "<p>nothing here</p>", "svg-html")
	if !mirrorerr.HasCode(err, "L001") {
		t.Fatalf("got %v, want L001", err)
	}
	if !strings.Contains(err.Error(), "Host element not found") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestParseFragment(t *testing.T) {
	doc := dom.NewDocument()
	els, err := ParseFragment(doc, `<circle r="5"></circle> stray <g><rect></rect></g>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 {
		t.Fatalf("got %d elements, want 2", len(els))
	}
	if v, _ := els[0].GetAttribute("r"); els[0].LocalName() != "circle" || v != "5" {
		t.Errorf("first element = %s r=%q", els[0].LocalName(), v)
	}
	if els[1].ChildCount() != 1 || els[1].Child(0).LocalName() != "rect" {
		t.Errorf("second element children wrong: %d", els[1].ChildCount())
	}
	if els[0].Parent() != nil {
		t.Error("fragment elements should be detached")
	}
}
