package mirror

import (
	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/protocol"
)

// allMutations is what a watcher observes on an authoring element.
var allMutations = dom.ObserveOptions{
	Attributes:    true,
	ChildList:     true,
	CharacterData: true,
}

// replicate builds the presentation subtree for a and inserts it into
// parent before ref. A nil parent means the root; a nil ref appends.
func (e *Engine) replicate(a, parent, ref *dom.Element) *dom.Element {
	if parent == nil {
		parent = e.root
	}

	p := e.build(a)
	parent.InsertBefore(p, ref)

	if e.live(parent) {
		e.emit(protocol.NewInsertNodePatch(
			protocol.ElementID(parent),
			p.Index(),
			protocol.ElementToWire(p),
		))
	}
	return p
}

// build creates the presentation element for a and its descendants in
// pre-order, pairs each one and starts watching it.
func (e *Engine) build(a *dom.Element) *dom.Element {
	// An element can only have one pair. Re-adding one that is still
	// paired drops the old subtree first.
	if _, ok := e.registry.Get(a); ok {
		e.teardown(a)
	}

	tag := ResolveTag(a.TagName())
	p := e.doc.CreateElementNS(dom.NamespaceSVG, tag)

	children := a.Children()
	for _, c := range children {
		p.AppendChild(e.build(c))
	}
	if len(children) == 0 {
		p.SetText(a.TextContent())
	}

	ProjectAttributes(a, p)

	e.registry.Set(a, p)
	e.watch(a, allMutations)
	e.opts.metrics.recordReplicated()

	e.logger.Debug("svgmirror replicated",
		"op", "replicate",
		"tag", tag,
		"id", a.ID(),
	)
	return p
}

// teardown detaches a's pair and forgets a. With cascade enabled the
// descendants of a are forgotten too and their watchers disconnected.
func (e *Engine) teardown(a *dom.Element) {
	if p, ok := e.registry.Get(a); ok {
		if parent := p.Parent(); parent != nil {
			live := e.live(parent)
			parent.RemoveChild(p)
			if live {
				e.emit(protocol.NewRemoveNodePatch(protocol.ElementID(p)))
			}
		}
		e.registry.Delete(a)
	}

	if !e.opts.cascade {
		return
	}
	a.Walk(func(el *dom.Element) bool {
		e.registry.Delete(el)
		e.unwatch(el)
		return true
	})
}
