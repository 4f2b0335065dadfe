package engineapi

import (
	"errors"
	"fmt"

	"github.com/n42chain/engineapi/types"
)

// UnknownPayloadError signals that a payload ID does not name an
// in-flight build job. Build jobs are transient, so consensus treats
// this as a cue to restart the build, not as a fault.
type UnknownPayloadError struct {
	ID types.PayloadID
}

func (e *UnknownPayloadError) Error() string {
	return fmt.Sprintf("unknown payload %s", e.ID)
}

// NewUnknownPayloadError creates a new UnknownPayloadError.
func NewUnknownPayloadError(id types.PayloadID) *UnknownPayloadError {
	return &UnknownPayloadError{ID: id}
}

// IsUnknownPayload checks whether an error is an UnknownPayloadError and
// returns it.
func IsUnknownPayload(err error) (*UnknownPayloadError, bool) {
	var u *UnknownPayloadError
	if errors.As(err, &u) {
		return u, true
	}
	return nil, false
}
