package ssz

import (
	"encoding/binary"

	"github.com/holiman/uint256"
)

// item is one registered field of a container: a byte width for
// fixed-size fields, zero for variable-size fields.
type item struct {
	fixed int
}

// DecoderBuilder is the first decoding pass. The caller registers the
// declared type of every field in order; Build then scans the fixed
// region, validates the offset table, and produces a Decoder holding one
// sub-slice of the buffer per field.
type DecoderBuilder struct {
	buf   []byte
	items []item
}

// NewDecoderBuilder starts decoding the given container buffer.
func NewDecoderBuilder(buf []byte) *DecoderBuilder {
	return &DecoderBuilder{buf: buf}
}

// RegisterFixed declares the next field as fixed-size with the given
// byte width.
func (b *DecoderBuilder) RegisterFixed(size int) {
	b.items = append(b.items, item{fixed: size})
}

// RegisterUint64 declares the next field as a little-endian 64-bit value.
func (b *DecoderBuilder) RegisterUint64() { b.RegisterFixed(8) }

// RegisterUint256 declares the next field as a 32-byte little-endian
// 256-bit value.
func (b *DecoderBuilder) RegisterUint256() { b.RegisterFixed(32) }

// RegisterVariable declares the next field as variable-size, occupying
// one offset slot in the fixed region.
func (b *DecoderBuilder) RegisterVariable() {
	b.items = append(b.items, item{})
}

// Build validates the buffer against the registered layout and slices it
// into per-field byte ranges. A variable field's range ends where the
// next variable field's range begins, or at the end of the buffer for the
// last one.
func (b *DecoderBuilder) Build() (*Decoder, error) {
	fixedLen := 0
	variable := 0
	for _, it := range b.items {
		if it.fixed > 0 {
			fixedLen += it.fixed
		} else {
			fixedLen += BytesPerLengthOffset
			variable++
		}
	}
	if len(b.buf) < fixedLen {
		return nil, &LengthError{Field: -1, Len: len(b.buf), Expected: fixedLen}
	}
	if variable == 0 && len(b.buf) != fixedLen {
		return nil, &LengthError{Field: -1, Len: len(b.buf), Expected: fixedLen}
	}

	type pending struct {
		field  int
		offset uint32
	}
	fields := make([][]byte, len(b.items))
	pendings := make([]pending, 0, variable)
	pos := 0
	for i, it := range b.items {
		if it.fixed > 0 {
			fields[i] = b.buf[pos : pos+it.fixed]
			pos += it.fixed
			continue
		}
		pendings = append(pendings, pending{field: i, offset: binary.LittleEndian.Uint32(b.buf[pos:])})
		pos += BytesPerLengthOffset
	}

	prev := uint32(fixedLen)
	for j, p := range pendings {
		switch {
		case p.offset < uint32(fixedLen):
			return nil, &OffsetError{Field: p.field, Offset: p.offset, Err: ErrOffsetIntoFixedPortion}
		case j == 0 && p.offset != uint32(fixedLen):
			return nil, &OffsetError{Field: p.field, Offset: p.offset, Err: ErrOffsetSkipsVariableBytes}
		case p.offset < prev:
			return nil, &OffsetError{Field: p.field, Offset: p.offset, Err: ErrOffsetsDecreasing}
		case p.offset > uint32(len(b.buf)):
			return nil, &OffsetError{Field: p.field, Offset: p.offset, Err: ErrOffsetOutOfBounds}
		}
		prev = p.offset
	}
	for j, p := range pendings {
		end := uint32(len(b.buf))
		if j+1 < len(pendings) {
			end = pendings[j+1].offset
		}
		fields[p.field] = b.buf[p.offset:end]
	}

	return &Decoder{fields: fields}, nil
}

// Decoder is the second decoding pass: fields are materialized strictly
// in registration order.
type Decoder struct {
	fields [][]byte
	next   int
}

// Next returns the raw bytes of the next field. The slice aliases the
// input buffer; callers that retain it must copy.
func (d *Decoder) Next() []byte {
	b := d.fields[d.next]
	d.next++
	return b
}

// ReadBytes copies the next fixed-size field into dst.
func (d *Decoder) ReadBytes(dst []byte) {
	copy(dst, d.Next())
}

// ReadUint64 reads the next field as a little-endian 64-bit value.
func (d *Decoder) ReadUint64() uint64 {
	return binary.LittleEndian.Uint64(d.Next())
}

// ReadUint256 reads the next field as a 32-byte little-endian 256-bit
// value into v.
func (d *Decoder) ReadUint256(v *uint256.Int) {
	b := d.Next()
	for i := range v {
		v[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
}

// DecodeByteLists splits a container of variable-size byte lists encoded
// by EncodeByteLists. The element count is recovered from the first
// offset, which must point at the end of the offset table.
func DecodeByteLists(buf []byte) ([][]byte, error) {
	if len(buf) == 0 {
		return [][]byte{}, nil
	}
	if len(buf) < BytesPerLengthOffset {
		return nil, &LengthError{Field: 0, Len: len(buf), Expected: BytesPerLengthOffset}
	}
	first := binary.LittleEndian.Uint32(buf)
	if first == 0 || first%BytesPerLengthOffset != 0 {
		return nil, &OffsetError{Field: 0, Offset: first, Err: ErrOffsetIntoFixedPortion}
	}
	// The element count is claimed by the input. Bound it by the buffer
	// before sizing anything on it, or a 4-byte input could demand
	// gigabytes of offset-table bookkeeping.
	if first > uint32(len(buf)) {
		return nil, &OffsetError{Field: 0, Offset: first, Err: ErrOffsetOutOfBounds}
	}
	n := int(first) / BytesPerLengthOffset

	b := NewDecoderBuilder(buf)
	for i := 0; i < n; i++ {
		b.RegisterVariable()
	}
	d, err := b.Build()
	if err != nil {
		return nil, err
	}
	lists := make([][]byte, n)
	for i := range lists {
		lists[i] = d.Next()
	}
	return lists, nil
}

// SplitFixedList splits a list of fixed-size elements into element
// slices. The buffer length must be an exact multiple of elemSize.
func SplitFixedList(buf []byte, elemSize int) ([][]byte, error) {
	if len(buf)%elemSize != 0 {
		return nil, &LengthError{Field: -1, Len: len(buf), Expected: len(buf) - len(buf)%elemSize + elemSize}
	}
	chunks := make([][]byte, len(buf)/elemSize)
	for i := range chunks {
		chunks[i] = buf[i*elemSize : (i+1)*elemSize]
	}
	return chunks, nil
}
