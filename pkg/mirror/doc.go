// Package mirror keeps an SVG presentation tree in step with an HTML
// authoring tree.
//
// An Engine owns a root <svg> element. Attach replicates the children of a
// host element into that root, pairing every authoring element with the
// presentation element created for it and observing every authoring element
// for changes. From then on, each Sync delivers the queued mutation records
// and the dispatcher applies them to the presentation tree:
//
//   - attribute changes are copied from the live authoring element
//   - added children are replicated under the paired parent
//   - removed children take their paired subtree with them
//   - text changes are copied while the element has no children
//
// Tag names are resolved through a fixed table of mixed-case SVG element
// names (linearGradient, feGaussianBlur, ...) because HTML tag names lose
// their case. Only specified attributes are copied, and they are written
// in the null namespace.
//
// # Usage
//
//	doc := dom.NewDocument()
//	host := doc.CreateElement("svg-html")
//	rect := doc.CreateElement("rect")
//	rect.SetAttribute("fill", "red")
//	host.AppendChild(rect)
//
//	engine := mirror.New(doc, mirror.WithLogger(logger))
//	if err := engine.Attach(host); err != nil {
//	    return err
//	}
//
//	rect.SetAttribute("fill", "blue")
//	if err := engine.Sync(); err != nil {
//	    return err
//	}
//	// engine.Root() now holds <svg><rect fill="blue"></rect></svg>
//
// An Engine is not safe for concurrent use. Like the document it observes,
// it belongs to a single goroutine.
package mirror
