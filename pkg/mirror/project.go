package mirror

import "github.com/vango-dev/svgmirror/pkg/dom"

// ProjectAttributes copies the specified attributes of src onto dst in the
// null namespace, overwriting values dst already has. Implicit attributes
// are skipped.
func ProjectAttributes(src, dst *dom.Element) {
	for _, a := range src.SpecifiedAttributes() {
		dst.SetAttributeNS("", a.Name, a.Value)
	}
}
