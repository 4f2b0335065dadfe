package types

import "github.com/ethereum/go-ethereum/common"

// Payload status values returned for newPayload and forkchoiceUpdated
// calls.
const (
	// StatusValid means the payload was already known or was just
	// validated and executed, or the fork choice update was accepted.
	StatusValid = "VALID"
	// StatusInvalid means the payload failed to execute on top of the
	// local chain, or the new head could not be reorged to.
	StatusInvalid = "INVALID"
	// StatusSyncing means the payload was accepted on top of an active
	// sync, or the new head was seen before but is not part of the chain.
	StatusSyncing = "SYNCING"
	// StatusAccepted means the payload was accepted but not processed
	// (side chain).
	StatusAccepted = "ACCEPTED"
)

// PayloadStatusV1 is the result of processing a payload or fork choice
// update. All three keys are always present on the wire; LatestValidHash
// and ValidationError encode as explicit nulls when unset rather than
// being omitted.
type PayloadStatusV1 struct {
	Status          string       `json:"status"`
	LatestValidHash *common.Hash `json:"latestValidHash"`
	ValidationError *string      `json:"validationError"`
}

// NewPayloadStatus returns a status with the given tag and no further
// detail.
func NewPayloadStatus(status string) PayloadStatusV1 {
	return PayloadStatusV1{Status: status}
}

// InvalidStatus returns an INVALID status carrying the validation
// failure text.
func InvalidStatus(validationError string) PayloadStatusV1 {
	return PayloadStatusV1{Status: StatusInvalid, ValidationError: &validationError}
}

// WithLatestValidHash returns a copy of the status pointing at the most
// recent valid ancestor.
func (s PayloadStatusV1) WithLatestValidHash(h common.Hash) PayloadStatusV1 {
	s.LatestValidHash = &h
	return s
}

// IsValid reports whether the status is VALID.
func (s *PayloadStatusV1) IsValid() bool { return s.Status == StatusValid }

// IsInvalid reports whether the status is INVALID.
func (s *PayloadStatusV1) IsInvalid() bool { return s.Status == StatusInvalid }

// IsSyncing reports whether the status is SYNCING.
func (s *PayloadStatusV1) IsSyncing() bool { return s.Status == StatusSyncing }

func (s PayloadStatusV1) String() string {
	if s.Status == StatusInvalid && s.ValidationError != nil {
		return s.Status + ": " + *s.ValidationError
	}
	return s.Status
}
