package types

import (
	"errors"
	"fmt"
)

// ErrUnknownPayloadShape is returned when an untagged payload document
// matches none of the candidate versions. Per-candidate failures are not
// reported individually; the caller only learns that no shape fit.
var ErrUnknownPayloadShape = errors.New("types: document matches no known payload version")

// MissingFieldError is returned when a required key is absent from a
// payload document.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("types: missing required field %q for %s", e.Field, e.Type)
}

// TrailingDataError is returned by strict decoding when well-formed JSON
// is followed by further input.
type TrailingDataError struct {
	Type string
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("types: trailing data after %s document", e.Type)
}

// IsMissingField reports whether err is a MissingFieldError.
func IsMissingField(err error) bool {
	var m *MissingFieldError
	return errors.As(err, &m)
}
