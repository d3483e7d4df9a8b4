package protocol

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText    PatchOp = 0x01 // Update text content
	PatchSetAttr    PatchOp = 0x02 // Set attribute
	PatchRemoveAttr PatchOp = 0x03 // Remove attribute
	PatchInsertNode PatchOp = 0x04 // Insert new subtree
	PatchRemoveNode PatchOp = 0x05 // Remove subtree
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	default:
		return "Unknown"
	}
}

// Patch represents a single presentation-tree operation.
type Patch struct {
	Op       PatchOp
	ID       string    // Target element
	Key      string    // Attribute key (SetAttr/RemoveAttr)
	Value    string    // Attribute value or text
	ParentID string    // Parent for InsertNode
	Index    int       // Insert position
	Node     *NodeWire // For InsertNode
}

// PatchesFrame represents a batch of patches with sequence number.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))

	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteUint8(uint8(p.Op))
	e.WriteString(p.ID)

	switch p.Op {
	case PatchSetText:
		e.WriteString(p.Value)

	case PatchSetAttr:
		e.WriteString(p.Key)
		e.WriteString(p.Value)

	case PatchRemoveAttr:
		e.WriteString(p.Key)

	case PatchInsertNode:
		e.WriteString(p.ParentID)
		e.WriteUvarint(uint64(p.Index))
		EncodeNodeWire(e, p.Node)

	case PatchRemoveNode:
		// No additional data (ID is sufficient)
	}
}

// DecodePatches decodes a patches frame from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	return DecodePatchesFrom(NewDecoder(data))
}

// DecodePatchesFrom decodes a patches frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	patches := make([]Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}

	return &PatchesFrame{
		Seq:     seq,
		Patches: patches,
	}, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(opByte)

	p.ID, err = d.ReadString()
	if err != nil {
		return err
	}

	switch p.Op {
	case PatchSetText:
		p.Value, err = d.ReadString()

	case PatchSetAttr:
		p.Key, err = d.ReadString()
		if err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchRemoveAttr:
		p.Key, err = d.ReadString()

	case PatchInsertNode:
		p.ParentID, err = d.ReadString()
		if err != nil {
			return err
		}
		var idx uint64
		idx, err = d.ReadUvarint()
		if err != nil {
			return err
		}
		p.Index = int(idx)
		p.Node, err = DecodeNodeWire(d)

	case PatchRemoveNode:
		// No additional data
	}

	return err
}

// NewSetTextPatch creates a SetText patch.
func NewSetTextPatch(id, text string) Patch {
	return Patch{Op: PatchSetText, ID: id, Value: text}
}

// NewSetAttrPatch creates a SetAttr patch.
func NewSetAttrPatch(id, key, value string) Patch {
	return Patch{Op: PatchSetAttr, ID: id, Key: key, Value: value}
}

// NewRemoveAttrPatch creates a RemoveAttr patch.
func NewRemoveAttrPatch(id, key string) Patch {
	return Patch{Op: PatchRemoveAttr, ID: id, Key: key}
}

// NewInsertNodePatch creates an InsertNode patch.
func NewInsertNodePatch(parentID string, index int, node *NodeWire) Patch {
	id := ""
	if node != nil {
		id = node.ID
	}
	return Patch{Op: PatchInsertNode, ID: id, ParentID: parentID, Index: index, Node: node}
}

// NewRemoveNodePatch creates a RemoveNode patch.
func NewRemoveNodePatch(id string) Patch {
	return Patch{Op: PatchRemoveNode, ID: id}
}
