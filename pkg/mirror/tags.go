package mirror

import (
	"sort"
	"strings"
)

// svgTags maps the upper-cased form of every mixed-case SVG element name to
// its canonical spelling. Anything not listed is all lower case.
var svgTags = map[string]string{
	"ALTGLYPH":            "altGlyph",
	"ALTGLYPHDEF":         "altGlyphDef",
	"ALTGLYPHITEM":        "altGlyphItem",
	"ANIMATECOLOR":        "animateColor",
	"ANIMATEMOTION":       "animateMotion",
	"ANIMATETRANSFORM":    "animateTransform",
	"CLIPPATH":            "clipPath",
	"FEBLEND":             "feBlend",
	"FECOLORMATRIX":       "feColorMatrix",
	"FECOMPONENTTRANSFER": "feComponentTransfer",
	"FECOMPOSITE":         "feComposite",
	"FECONVOLVEMATRIX":    "feConvolveMatrix",
	"FEDIFFUSELIGHTING":   "feDiffuseLighting",
	"FEDISTANTLIGHT":      "feDistantLight",
	"FEFLOOD":             "feFlood",
	"FEFUNCA":             "feFuncA",
	"FEFUNCB":             "feFuncB",
	"FEFUNCG":             "feFuncG",
	"FEFUNCR":             "feFuncR",
	"FEGAUSSIANBLUR":      "feGaussianBlur",
	"FEIMAGE":             "feImage",
	"FEMERGE":             "feMerge",
	"FEMERGENODE":         "feMergeNode",
	"FEMORPHOLOGY":        "feMorphology",
	"FEOFFSET":            "feOffset",
	"FEPOINTLIGHT":        "fePointLight",
	"FESPECULARLIGHTING":  "feSpecularLighting",
	"FESPOTLIGHT":         "feSpotLight",
	"FETILE":              "feTile",
	"FETURBULENCE":        "feTurbulence",
	"FOREIGNOBJECT":       "foreignObject",
	"GLYPHREF":            "glyphRef",
	"LINEARGRADIENT":      "linearGradient",
	"RADIALGRADIENT":      "radialGradient",
	"TEXTPATH":            "textPath",
}

// ResolveTag returns the SVG spelling of an HTML tag name.
//
//	ResolveTag("LINEARGRADIENT") // "linearGradient"
//	ResolveTag("RECT")           // "rect"
func ResolveTag(tagName string) string {
	if svg, ok := svgTags[strings.ToUpper(tagName)]; ok {
		return svg
	}
	return strings.ToLower(tagName)
}

// TagMapping is one entry of the mixed-case tag table.
type TagMapping struct {
	HTML string
	SVG  string
}

// TagTable returns the mixed-case tag table sorted by HTML name.
func TagTable() []TagMapping {
	out := make([]TagMapping, 0, len(svgTags))
	for html, svg := range svgTags {
		out = append(out, TagMapping{HTML: html, SVG: svg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HTML < out[j].HTML })
	return out
}
