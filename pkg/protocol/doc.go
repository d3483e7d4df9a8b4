// Package protocol implements the binary change-log format for svgmirror.
//
// Every dispatch batch of the mirroring engine produces a list of patches
// describing how the presentation tree changed. This package encodes those
// patches compactly so they can be recorded, replayed or shipped to another
// process that keeps its own copy of the presentation tree.
//
// # Wire Format
//
// A stream is a sequence of frames, each with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameSnapshot (0x01): the complete presentation tree
//   - FramePatches (0x02): one batch of patches
//
// # Encoding
//
//   - Varint: counts, indexes and sequence numbers (encoding/binary uvarint)
//   - Length-prefixed: strings prefixed with their varint length
//   - Big-endian: the payload length in frame headers
//
// A log starts with a snapshot frame and ends with a frame flagged
// FlagFinal. ReplayStream reads one back into a Replica.
//
// # Patches
//
// Each patch carries an operation, the target element's ID and
// operation-specific data:
//
//	SetText:     [Op: 0x01][ID][Value]
//	SetAttr:     [Op: 0x02][ID][Key][Value]
//	RemoveAttr:  [Op: 0x03][ID][Key]
//	InsertNode:  [Op: 0x04][ID][ParentID][Index][Node]
//	RemoveNode:  [Op: 0x05][ID]
//
// Element IDs are the presentation elements' dom.Element.ID values rendered
// as "n<id>".
package protocol
