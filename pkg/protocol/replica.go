package protocol

import (
	"errors"
	"fmt"
	"io"
)

// Replica errors.
var (
	ErrUnknownNode = errors.New("protocol: patch targets an unknown node")
	ErrBadIndex    = errors.New("protocol: insert index out of range")
	ErrBadStream   = errors.New("protocol: malformed frame stream")
)

// Replica is a copy of the presentation tree kept up to date by applying
// patches to a snapshot, the way a remote consumer of the change log would.
type Replica struct {
	root    *NodeWire
	nodes   map[string]*NodeWire
	parents map[string]*NodeWire
}

// NewReplica starts a replica from a snapshot. The snapshot is owned by the
// replica afterwards.
func NewReplica(snapshot *NodeWire) *Replica {
	r := &Replica{
		root:    snapshot,
		nodes:   make(map[string]*NodeWire),
		parents: make(map[string]*NodeWire),
	}
	r.index(snapshot, nil)
	return r
}

// Root returns the replica's tree.
func (r *Replica) Root() *NodeWire {
	return r.root
}

// Apply applies patches in order. It stops at the first patch that does not
// fit the tree.
func (r *Replica) Apply(patches []Patch) error {
	for i := range patches {
		if err := r.apply(&patches[i]); err != nil {
			return fmt.Errorf("patch %d (%s %s): %w", i, patches[i].Op, patches[i].ID, err)
		}
	}
	return nil
}

func (r *Replica) apply(p *Patch) error {
	if p.Op == PatchInsertNode {
		return r.insert(p)
	}

	n, ok := r.nodes[p.ID]
	if !ok {
		return ErrUnknownNode
	}

	switch p.Op {
	case PatchSetText:
		n.Text = p.Value

	case PatchSetAttr:
		for i := range n.Attrs {
			if n.Attrs[i].Key == p.Key {
				n.Attrs[i].Value = p.Value
				return nil
			}
		}
		n.Attrs = append(n.Attrs, AttrWire{Key: p.Key, Value: p.Value})

	case PatchRemoveAttr:
		for i := range n.Attrs {
			if n.Attrs[i].Key == p.Key {
				n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
				break
			}
		}
		if len(n.Attrs) == 0 {
			n.Attrs = nil
		}

	case PatchRemoveNode:
		parent := r.parents[p.ID]
		if parent == nil {
			return ErrUnknownNode
		}
		for i, c := range parent.Children {
			if c == n {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
		if len(parent.Children) == 0 {
			parent.Children = nil
		}
		r.unindex(n)

	default:
		return fmt.Errorf("protocol: unknown patch op %d", p.Op)
	}
	return nil
}

func (r *Replica) insert(p *Patch) error {
	parent, ok := r.nodes[p.ParentID]
	if !ok || p.Node == nil {
		return ErrUnknownNode
	}
	if p.Index < 0 || p.Index > len(parent.Children) {
		return ErrBadIndex
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[p.Index+1:], parent.Children[p.Index:])
	parent.Children[p.Index] = p.Node
	r.index(p.Node, parent)
	return nil
}

func (r *Replica) index(n, parent *NodeWire) {
	if n == nil {
		return
	}
	r.nodes[n.ID] = n
	r.parents[n.ID] = parent
	for _, c := range n.Children {
		r.index(c, n)
	}
}

func (r *Replica) unindex(n *NodeWire) {
	delete(r.nodes, n.ID)
	delete(r.parents, n.ID)
	for _, c := range n.Children {
		r.unindex(c)
	}
}

// ReplayStream reads a snapshot frame followed by patches frames up to the
// one flagged FlagFinal, and returns the replica they describe together
// with the number of patches frames. Patches frames must be numbered from
// 1 without gaps.
func ReplayStream(rd io.Reader) (*Replica, int, error) {
	f, err := ReadFrame(rd)
	if err != nil {
		return nil, 0, err
	}
	if f.Type != FrameSnapshot {
		return nil, 0, fmt.Errorf("%w: first frame is %s, want Snapshot", ErrBadStream, f.Type)
	}
	snapshot, err := DecodeSnapshot(f.Payload)
	if err != nil {
		return nil, 0, err
	}
	replica := NewReplica(snapshot)

	var seq uint64
	for !f.Flags.Has(FlagFinal) {
		if f, err = ReadFrame(rd); err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("%w: no final frame", ErrBadStream)
			}
			return nil, 0, err
		}
		if f.Type != FramePatches {
			return nil, 0, fmt.Errorf("%w: unexpected %s frame", ErrBadStream, f.Type)
		}
		pf, err := DecodePatches(f.Payload)
		if err != nil {
			return nil, 0, err
		}
		if seq++; pf.Seq != seq {
			return nil, 0, fmt.Errorf("%w: frame seq %d, want %d", ErrBadStream, pf.Seq, seq)
		}
		if err := replica.Apply(pf.Patches); err != nil {
			return nil, 0, err
		}
	}
	return replica, int(seq), nil
}
