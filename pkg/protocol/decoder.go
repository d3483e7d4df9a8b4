package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

// Allocation limits for length prefixes read off the wire.
const (
	// DefaultMaxAllocation bounds a single decoded string (4MB).
	DefaultMaxAllocation = 4 * 1024 * 1024

	// HardMaxAllocation bounds a frame payload (16MB).
	HardMaxAllocation = 16 * 1024 * 1024

	// MaxCollectionCount bounds the attributes, children or patches of
	// one decoded collection.
	MaxCollectionCount = 100_000
)

// Decoding errors.
var (
	ErrVarintOverflow     = errors.New("protocol: varint overflow")
	ErrAllocationTooLarge = errors.New("protocol: allocation size exceeds limit")
	ErrCollectionTooLarge = errors.New("protocol: collection count exceeds limit")
)

// Decoder reads wire values from a byte slice. Reading past the end
// returns io.ErrUnexpectedEOF.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// ReadByte reads a single byte. It makes Decoder an io.ByteReader.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	v, err := binary.ReadUvarint(d)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return 0, err
	default:
		return 0, ErrVarintOverflow
	}
}

// ReadString reads a length-prefixed string.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if n > DefaultMaxAllocation {
		return "", ErrAllocationTooLarge
	}
	if n > uint64(d.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

// ReadBool reads one byte; anything but 0x00 is true.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	return b != 0, err
}

// ReadCollectionCount reads a varint count, rejecting counts above
// MaxCollectionCount or above the unread byte count, since every item
// takes at least one byte.
func (d *Decoder) ReadCollectionCount() (int, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if n > MaxCollectionCount {
		return 0, ErrCollectionTooLarge
	}
	if n > uint64(d.Remaining()) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(n), nil
}
