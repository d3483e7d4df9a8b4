package protocol

import (
	"strconv"

	"github.com/vango-dev/svgmirror/pkg/dom"
)

// AttrWire is the wire format of one attribute.
type AttrWire struct {
	Key   string
	Value string
}

// NodeWire is the wire format of an element subtree.
type NodeWire struct {
	ID       string      // "n<id>" of the element
	Tag      string      // Tag name, case preserved
	Attrs    []AttrWire  // Attributes in element order
	Children []*NodeWire // Child elements
	Text     string      // Own text, written before the children
}

// ElementID formats an element's identity the way patches address it.
func ElementID(el *dom.Element) string {
	if el == nil {
		return ""
	}
	return "n" + strconv.FormatUint(el.ID(), 10)
}

// ElementToWire converts an element subtree to wire format.
func ElementToWire(el *dom.Element) *NodeWire {
	if el == nil {
		return nil
	}

	w := &NodeWire{
		ID:   ElementID(el),
		Tag:  el.LocalName(),
		Text: el.Text(),
	}

	if attrs := el.Attributes(); len(attrs) > 0 {
		w.Attrs = make([]AttrWire, len(attrs))
		for i, a := range attrs {
			w.Attrs[i] = AttrWire{Key: a.Name, Value: a.Value}
		}
	}

	children := el.Children()
	if len(children) == 0 {
		return w
	}
	w.Children = make([]*NodeWire, len(children))
	for i, c := range children {
		w.Children[i] = ElementToWire(c)
	}
	return w
}

// EncodeNodeWire encodes a NodeWire using the provided encoder.
func EncodeNodeWire(e *Encoder, node *NodeWire) {
	if node == nil {
		e.WriteBool(false)
		return
	}
	e.WriteBool(true)
	e.WriteString(node.ID)
	e.WriteString(node.Tag)

	e.WriteUvarint(uint64(len(node.Attrs)))
	for _, a := range node.Attrs {
		e.WriteString(a.Key)
		e.WriteString(a.Value)
	}

	e.WriteUvarint(uint64(len(node.Children)))
	for _, child := range node.Children {
		EncodeNodeWire(e, child)
	}

	e.WriteString(node.Text)
}

// DecodeNodeWire decodes a NodeWire, enforcing MaxNodeDepth.
func DecodeNodeWire(d *Decoder) (*NodeWire, error) {
	return decodeNodeWireWithDepth(d, 0)
}

func decodeNodeWireWithDepth(d *Decoder, depth int) (*NodeWire, error) {
	if err := checkDepth(depth, MaxNodeDepth); err != nil {
		return nil, err
	}

	present, err := d.ReadBool()
	if err != nil || !present {
		return nil, err
	}

	node := &NodeWire{}
	if node.ID, err = d.ReadString(); err != nil {
		return nil, err
	}
	if node.Tag, err = d.ReadString(); err != nil {
		return nil, err
	}

	attrCount, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	if attrCount > 0 {
		node.Attrs = make([]AttrWire, attrCount)
		for i := range node.Attrs {
			if node.Attrs[i].Key, err = d.ReadString(); err != nil {
				return nil, err
			}
			if node.Attrs[i].Value, err = d.ReadString(); err != nil {
				return nil, err
			}
		}
	}

	childCount, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	if childCount > 0 {
		node.Children = make([]*NodeWire, childCount)
		for i := range node.Children {
			if node.Children[i], err = decodeNodeWireWithDepth(d, depth+1); err != nil {
				return nil, err
			}
		}
	}

	if node.Text, err = d.ReadString(); err != nil {
		return nil, err
	}
	return node, nil
}

// Attr returns the value of the named attribute.
func (w *NodeWire) Attr(key string) (string, bool) {
	for _, a := range w.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
