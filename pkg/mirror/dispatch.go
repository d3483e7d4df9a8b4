package mirror

import (
	mirrorerr "github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/protocol"
)

// dispatch applies one mutation record to the presentation tree.
func (e *Engine) dispatch(rec *dom.MutationRecord) {
	e.opts.metrics.recordMutation(rec.Type.String())

	switch rec.Type {
	case dom.MutationAttributes:
		e.applyAttribute(rec)

	case dom.MutationChildList:
		for _, n := range rec.AddedNodes {
			e.addChild(rec.Target, n)
		}
		for _, n := range rec.RemovedNodes {
			e.removeChild(rec.Target, n)
		}

	case dom.MutationCharacterData:
		e.applyText(rec.Target)

	default:
		err := mirrorerr.New("M002").WithDetailf("Record of type %d on %s.", rec.Type, rec.Target)
		e.logger.Warn("svgmirror ignored mutation", "op", "dispatch", "error", err)
	}
}

// pairOf returns target's pair, raising a violation when there is none.
func (e *Engine) pairOf(target *dom.Element, what string) (*dom.Element, bool) {
	p, ok := e.registry.Get(target)
	if !ok {
		e.violation(mirrorerr.New("M001").WithDetailf("%s on %s, which has no pair.", what, target))
	}
	return p, ok
}

// applyAttribute copies the live value of the changed attribute. The
// record's own value may be stale when several changes were batched.
func (e *Engine) applyAttribute(rec *dom.MutationRecord) {
	p, ok := e.pairOf(rec.Target, "Attribute "+rec.AttributeName+" changed")
	if !ok {
		return
	}
	name := rec.AttributeName
	id := protocol.ElementID(p)

	value, present := rec.Target.GetAttributeNS(rec.AttributeNamespace, name)
	if !present {
		if p.RemoveAttributeNS("", name) && e.live(p) {
			e.emit(protocol.NewRemoveAttrPatch(id, name))
		}
		return
	}

	if cur, ok := p.GetAttributeNS("", name); ok && cur == value {
		return
	}
	p.SetAttributeNS("", name, value)
	if e.live(p) {
		e.emit(protocol.NewSetAttrPatch(id, name, value))
	}
}

// live reports whether p is part of the presentation tree. Pairs left
// under a removed subtree still change, but patches never name them after
// their RemoveNode.
func (e *Engine) live(p *dom.Element) bool {
	return e.root.Contains(p)
}

// addChild replicates n under target's pair.
func (e *Engine) addChild(target, n *dom.Element) {
	// A later record moves or removes n; that record is the one to act on.
	if n.Parent() != target {
		e.logger.Debug("svgmirror skipped stale addition", "op", "add", "id", n.ID())
		return
	}

	parent, ok := e.pairOf(target, "Child added")
	if !ok {
		return
	}

	var ref *dom.Element
	if e.opts.positional {
		ref = e.successor(n, parent)
	}
	e.replicate(n, parent, ref)
}

// successor returns the pair of n's first following sibling that is
// already mirrored under parent.
func (e *Engine) successor(n, parent *dom.Element) *dom.Element {
	for s := n.NextSibling(); s != nil; s = s.NextSibling() {
		if p, ok := e.registry.Get(s); ok && p.Parent() == parent {
			return p
		}
	}
	return nil
}

// removeChild detaches n's pair. The authoring element is left where it
// is: data only flows towards the presentation tree.
func (e *Engine) removeChild(target, n *dom.Element) {
	p, ok := e.registry.Get(n)
	if !ok {
		return
	}

	// n was re-added and mirrored elsewhere before this record arrived.
	if tp, ok := e.registry.Get(target); ok && p.Parent() != nil && p.Parent() != tp {
		e.logger.Debug("svgmirror skipped stale removal", "op", "remove", "id", n.ID())
		return
	}

	e.teardown(n)

	if target.ChildCount() == 0 {
		e.syncText(target)
	}
}

// applyText copies target's text while it has no children.
func (e *Engine) applyText(target *dom.Element) {
	if _, ok := e.pairOf(target, "Text changed"); !ok {
		return
	}
	if target.ChildCount() > 0 {
		return
	}
	e.syncText(target)
}

func (e *Engine) syncText(target *dom.Element) {
	p, ok := e.registry.Get(target)
	if !ok || p == e.root {
		return
	}
	text := target.TextContent()
	if p.Text() == text {
		return
	}
	p.SetText(text)
	if e.live(p) {
		e.emit(protocol.NewSetTextPatch(protocol.ElementID(p), text))
	}
}
