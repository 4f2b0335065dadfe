package ssz_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/n42chain/engineapi/ssz"
)

// encodeSample builds a container with the layout used throughout the
// tests: a uint64, a variable byte list, a uint256, and a second
// variable byte list.
func encodeSample(t *testing.T, n uint64, blob []byte, v *uint256.Int, blob2 []byte) []byte {
	t.Helper()
	enc := ssz.NewEncoder(8 + ssz.BytesPerLengthOffset + 32 + ssz.BytesPerLengthOffset)
	enc.WriteUint64(n)
	enc.WriteVariable(blob)
	enc.WriteUint256(v)
	enc.WriteVariable(blob2)
	return enc.Finalize()
}

func buildSample(buf []byte) (*ssz.Decoder, error) {
	b := ssz.NewDecoderBuilder(buf)
	b.RegisterUint64()
	b.RegisterVariable()
	b.RegisterUint256()
	b.RegisterVariable()
	return b.Build()
}

func TestRoundTrip(t *testing.T) {
	v := uint256.NewInt(0x342770c0)
	buf := encodeSample(t, 42, []byte{1, 2, 3}, v, []byte{9})

	d, err := buildSample(buf)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := d.ReadUint64(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := d.Next(); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("unexpected first blob: %x", got)
	}
	var got256 uint256.Int
	d.ReadUint256(&got256)
	if !got256.Eq(v) {
		t.Errorf("expected %s, got %s", v, &got256)
	}
	if got := d.Next(); !bytes.Equal(got, []byte{9}) {
		t.Errorf("unexpected second blob: %x", got)
	}
}

func TestEmptyVariableFields(t *testing.T) {
	buf := encodeSample(t, 0, nil, uint256.NewInt(0), nil)
	if len(buf) != 48 {
		t.Fatalf("expected head-only container of 48 bytes, got %d", len(buf))
	}

	d, err := buildSample(buf)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	d.Next()
	if got := d.Next(); len(got) != 0 {
		t.Errorf("expected empty first blob, got %x", got)
	}
	d.Next()
	if got := d.Next(); len(got) != 0 {
		t.Errorf("expected empty second blob, got %x", got)
	}
}

func TestOffsetLayout(t *testing.T) {
	buf := encodeSample(t, 1, []byte{0xaa, 0xbb}, uint256.NewInt(2), []byte{0xcc})

	first := binary.LittleEndian.Uint32(buf[8:])
	second := binary.LittleEndian.Uint32(buf[8+4+32:])
	if first != 48 {
		t.Errorf("expected first offset 48, got %d", first)
	}
	if second != 50 {
		t.Errorf("expected second offset 50, got %d", second)
	}
	if second < first || int(second) > len(buf) {
		t.Errorf("offsets not monotonic within bounds: %d, %d, len %d", first, second, len(buf))
	}
}

func TestBuildShortBuffer(t *testing.T) {
	buf := encodeSample(t, 1, []byte{1}, uint256.NewInt(1), nil)
	_, err := buildSample(buf[:20])

	var lenErr *ssz.LengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("expected LengthError, got %v", err)
	}
	if lenErr.Len != 20 || lenErr.Expected != 48 {
		t.Errorf("unexpected error detail: %+v", lenErr)
	}
}

func TestBuildFixedOnlyLengthMismatch(t *testing.T) {
	b := ssz.NewDecoderBuilder(make([]byte, 17))
	b.RegisterUint64()
	b.RegisterUint64()
	_, err := b.Build()

	var lenErr *ssz.LengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("expected LengthError, got %v", err)
	}
}

func TestBuildOffsetErrors(t *testing.T) {
	valid := encodeSample(t, 1, []byte{1, 2}, uint256.NewInt(1), []byte{3})

	corrupt := func(pos int, offset uint32) []byte {
		buf := append([]byte{}, valid...)
		binary.LittleEndian.PutUint32(buf[pos:], offset)
		return buf
	}
	firstSlot, secondSlot := 8, 8+4+32

	cases := []struct {
		name string
		buf  []byte
		want error
	}{
		{"into fixed portion", corrupt(firstSlot, 10), ssz.ErrOffsetIntoFixedPortion},
		{"skips variable bytes", corrupt(firstSlot, 49), ssz.ErrOffsetSkipsVariableBytes},
		{"out of bounds", corrupt(secondSlot, uint32(len(valid)+1)), ssz.ErrOffsetOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildSample(tc.buf)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var offErr *ssz.OffsetError
			if !errors.As(err, &offErr) {
				t.Fatalf("expected OffsetError, got %v", err)
			}
		})
	}
}

func TestBuildOffsetsDecreasing(t *testing.T) {
	// Three variable fields; the first offset is pinned at the end of the
	// head, so a decreasing pair can only appear from the second onward.
	buf := make([]byte, 18)
	binary.LittleEndian.PutUint32(buf[0:], 12)
	binary.LittleEndian.PutUint32(buf[4:], 16)
	binary.LittleEndian.PutUint32(buf[8:], 14)

	b := ssz.NewDecoderBuilder(buf)
	b.RegisterVariable()
	b.RegisterVariable()
	b.RegisterVariable()
	_, err := b.Build()
	if !errors.Is(err, ssz.ErrOffsetsDecreasing) {
		t.Fatalf("expected ErrOffsetsDecreasing, got %v", err)
	}
}

func TestEncoderPanicsOnShortHead(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for undersized head")
		}
	}()
	enc := ssz.NewEncoder(16)
	enc.WriteUint64(1)
	enc.Finalize()
}

func TestByteListsRoundTrip(t *testing.T) {
	lists := [][]byte{{1, 2, 3}, {}, {4}}

	buf := ssz.EncodeByteLists(lists)
	if len(buf) != ssz.ByteListsSize(lists) {
		t.Errorf("expected %d bytes, got %d", ssz.ByteListsSize(lists), len(buf))
	}

	got, err := ssz.DecodeByteLists(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(lists) {
		t.Fatalf("expected %d lists, got %d", len(lists), len(got))
	}
	for i := range lists {
		if !bytes.Equal(got[i], lists[i]) {
			t.Errorf("list %d: expected %x, got %x", i, lists[i], got[i])
		}
	}
}

func TestByteListsEmpty(t *testing.T) {
	buf := ssz.EncodeByteLists(nil)
	if len(buf) != 0 {
		t.Fatalf("expected empty encoding, got %x", buf)
	}

	got, err := ssz.DecodeByteLists(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected non-nil empty result, got %#v", got)
	}
}

func TestDecodeByteListsBadFirstOffset(t *testing.T) {
	// First offset not a multiple of the slot width.
	buf := []byte{3, 0, 0, 0}
	if _, err := ssz.DecodeByteLists(buf); err == nil {
		t.Fatal("expected error for misaligned first offset")
	}
}

func TestDecodeByteListsOffsetPastBuffer(t *testing.T) {
	// The element count is derived from the first offset. An offset past
	// the end of the buffer is rejected before the offset table is sized,
	// so a 4-byte input cannot demand a near-4-billion-entry table.
	for _, first := range []uint32{8, 1 << 27, 0xfffffffc} {
		buf := make([]byte, ssz.BytesPerLengthOffset)
		binary.LittleEndian.PutUint32(buf, first)
		_, err := ssz.DecodeByteLists(buf)
		if !errors.Is(err, ssz.ErrOffsetOutOfBounds) {
			t.Fatalf("first offset %d: expected ErrOffsetOutOfBounds, got %v", first, err)
		}
	}
}

func TestSplitFixedList(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}
	chunks, err := ssz.SplitFixedList(buf, 3)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(chunks) != 2 || !bytes.Equal(chunks[0], []byte{1, 2, 3}) || !bytes.Equal(chunks[1], []byte{4, 5, 6}) {
		t.Errorf("unexpected chunks: %x", chunks)
	}

	if _, err := ssz.SplitFixedList(buf, 4); err == nil {
		t.Fatal("expected error for ragged list")
	}
}
