// Package ssz implements the offset-table binary encoding used for
// execution payloads: fixed-size fields are written inline in declaration
// order, and every variable-size field is replaced in that fixed region by
// a 4-byte offset pointing at its content, which is appended after the
// fixed region in the same declaration order.
//
// The package provides the container building blocks; the payload types in
// the types package declare their own field layouts on top of them.
package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// BytesPerLengthOffset is the width of one offset slot in a container's
// fixed region.
const BytesPerLengthOffset = 4

// Encoder assembles a single container. Fixed-size fields and offset slots
// go to the head, variable-size content to the tail; Finalize concatenates
// the two. The head length must be declared up front because every offset
// is relative to the start of the container.
type Encoder struct {
	head     []byte
	tail     []byte
	fixedLen int
}

// NewEncoder returns an encoder for a container whose fixed region is
// fixedLen bytes: the sum of all fixed field widths plus one offset slot
// per variable-size field.
func NewEncoder(fixedLen int) *Encoder {
	return &Encoder{head: make([]byte, 0, fixedLen), fixedLen: fixedLen}
}

// WriteBytes appends a fixed-size field.
func (e *Encoder) WriteBytes(b []byte) {
	e.head = append(e.head, b...)
}

// WriteUint64 appends a little-endian 64-bit field.
func (e *Encoder) WriteUint64(v uint64) {
	e.head = binary.LittleEndian.AppendUint64(e.head, v)
}

// WriteUint256 appends a 32-byte little-endian 256-bit field.
func (e *Encoder) WriteUint256(v *uint256.Int) {
	for _, limb := range v {
		e.head = binary.LittleEndian.AppendUint64(e.head, limb)
	}
}

// WriteVariable reserves an offset slot in the head pointing at the
// current end of the tail, then appends content to the tail.
func (e *Encoder) WriteVariable(content []byte) {
	offset := e.fixedLen + len(e.tail)
	e.head = binary.LittleEndian.AppendUint32(e.head, uint32(offset))
	e.tail = append(e.tail, content...)
}

// Finalize returns the encoded container. It panics if the fields written
// do not add up to the declared fixed length; that is a bug in the
// caller's layout, not an input condition.
func (e *Encoder) Finalize() []byte {
	if len(e.head) != e.fixedLen {
		panic(fmt.Sprintf("ssz: container head is %d bytes, declared %d", len(e.head), e.fixedLen))
	}
	return append(e.head, e.tail...)
}

// ByteListsSize returns the encoded size of a list of variable-size byte
// lists: one offset slot per element plus the element contents.
func ByteListsSize(lists [][]byte) int {
	n := len(lists) * BytesPerLengthOffset
	for _, l := range lists {
		n += len(l)
	}
	return n
}

// EncodeByteLists encodes a list of variable-size byte lists as a
// container of its own: an offset per element, then the concatenated
// element bytes.
func EncodeByteLists(lists [][]byte) []byte {
	enc := NewEncoder(len(lists) * BytesPerLengthOffset)
	for _, l := range lists {
		enc.WriteVariable(l)
	}
	return enc.Finalize()
}
