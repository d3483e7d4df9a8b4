// Package render serializes element trees to markup.
//
// It is used to inspect the presentation tree an engine maintains, for
// example from the svgmirror CLI or in tests:
//
//	renderer := render.NewRenderer(render.RendererConfig{Pretty: true})
//	svg, err := renderer.RenderToString(engine.Root())
//
// SVG elements are written as XML: the outermost SVG element declares the
// SVG namespace and childless elements without text are self-closing. HTML
// elements are always written with an explicit closing tag. Attributes keep
// the order in which they were set.
//
// All text and attribute values are escaped.
package render
