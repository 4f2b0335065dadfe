package ssz

import (
	"errors"
	"fmt"
)

// Offset-table failure modes. Each is wrapped in an OffsetError carrying
// the offending field position.
var (
	// ErrOffsetIntoFixedPortion means an offset points inside the fixed
	// region of the container.
	ErrOffsetIntoFixedPortion = errors.New("offset points into fixed portion")
	// ErrOffsetSkipsVariableBytes means the first offset does not start
	// exactly at the end of the fixed region, leaving unaccounted bytes.
	ErrOffsetSkipsVariableBytes = errors.New("first offset does not point at end of fixed portion")
	// ErrOffsetsDecreasing means a later offset is smaller than an
	// earlier one.
	ErrOffsetsDecreasing = errors.New("offsets are decreasing")
	// ErrOffsetOutOfBounds means an offset exceeds the buffer length.
	ErrOffsetOutOfBounds = errors.New("offset exceeds buffer bounds")
)

// LengthError reports a buffer whose length cannot satisfy the declared
// field layout.
type LengthError struct {
	// Field is the zero-based position of the offending field, or -1 for
	// a container-level length mismatch.
	Field    int
	Len      int
	Expected int
}

func (e *LengthError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("ssz: invalid byte length %d, expected %d", e.Len, e.Expected)
	}
	return fmt.Sprintf("ssz: field %d: invalid byte length %d, expected %d", e.Field, e.Len, e.Expected)
}

// OffsetError reports an offset-table entry that is inconsistent with the
// buffer or with the offsets preceding it.
type OffsetError struct {
	Field  int
	Offset uint32
	Err    error
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("ssz: field %d: offset %d: %v", e.Field, e.Offset, e.Err)
}

func (e *OffsetError) Unwrap() error { return e.Err }
