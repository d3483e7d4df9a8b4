// Package dom provides the in-memory element model that svgmirror mirrors
// from and into.
//
// An Element carries a namespace, a tag, ordered attributes, ordered element
// children and its own text content. Elements created in the HTML namespace
// behave like HTML elements: their tag name is case-insensitive and
// SetAttribute lower-cases attribute names. Elements created with
// CreateElementNS keep the exact casing they were given.
//
// # Mutation Observation
//
// Mutations are reported asynchronously. Every change to an observed element
// queues a MutationRecord on the owning Document; nothing is delivered until
// Document.Flush runs, at which point records are handed to their observers
// in the order the mutations happened, grouped into batches of consecutive
// records for the same observer:
//
//	obs := dom.NewMutationObserver(func(records []*dom.MutationRecord, _ *dom.MutationObserver) {
//	    for _, r := range records {
//	        fmt.Println(r.Type, r.Target)
//	    }
//	})
//	obs.Observe(el, dom.ObserveOptions{Attributes: true, ChildList: true})
//
//	el.SetAttribute("fill", "red") // queued
//	doc.Flush()                    // delivered
//
// An observer watches only the elements it was asked to observe, never their
// descendants.
package dom
