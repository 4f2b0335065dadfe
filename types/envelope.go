package types

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ExecutionPayloadEnvelopeV2 is the result of a V2 payload build: the
// built payload (V1 or V2 depending on the fork the timestamp falls in)
// together with the fee value the recipient would collect.
type ExecutionPayloadEnvelopeV2 struct {
	ExecutionPayload ExecutionPayloadFieldV2 `json:"executionPayload"`
	BlockValue       U256                    `json:"blockValue"`
}

// IntoV1Payload returns the built payload reduced to its V1 prefix.
func (e *ExecutionPayloadEnvelopeV2) IntoV1Payload() ExecutionPayloadV1 {
	return e.ExecutionPayload.IntoV1()
}

type executionPayloadEnvelopeV2JSON struct {
	ExecutionPayload *ExecutionPayloadFieldV2 `json:"executionPayload"`
	BlockValue       *U256                    `json:"blockValue"`
}

func (e *ExecutionPayloadEnvelopeV2) UnmarshalJSON(input []byte) error {
	var dec executionPayloadEnvelopeV2JSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.ExecutionPayload == nil {
		return &MissingFieldError{Type: "ExecutionPayloadEnvelopeV2", Field: "executionPayload"}
	}
	if dec.BlockValue == nil {
		return &MissingFieldError{Type: "ExecutionPayloadEnvelopeV2", Field: "blockValue"}
	}
	e.ExecutionPayload = *dec.ExecutionPayload
	e.BlockValue = *dec.BlockValue
	return nil
}

// ExecutionPayloadEnvelopeV3 is the result of a V3 payload build,
// carrying the blob bundle for the payload and the builder-override
// suggestion alongside the payload itself.
type ExecutionPayloadEnvelopeV3 struct {
	ExecutionPayload      ExecutionPayloadV3 `json:"executionPayload"`
	BlockValue            U256               `json:"blockValue"`
	BlobsBundle           BlobsBundleV1      `json:"blobsBundle"`
	ShouldOverrideBuilder bool               `json:"shouldOverrideBuilder"`
}

type executionPayloadEnvelopeV3JSON struct {
	ExecutionPayload      *ExecutionPayloadV3 `json:"executionPayload"`
	BlockValue            *U256               `json:"blockValue"`
	BlobsBundle           *BlobsBundleV1      `json:"blobsBundle"`
	ShouldOverrideBuilder *bool               `json:"shouldOverrideBuilder"`
}

func (dec *executionPayloadEnvelopeV3JSON) toEnvelope(e *ExecutionPayloadEnvelopeV3, typ string) error {
	if dec.ExecutionPayload == nil {
		return &MissingFieldError{Type: typ, Field: "executionPayload"}
	}
	if dec.BlockValue == nil {
		return &MissingFieldError{Type: typ, Field: "blockValue"}
	}
	if dec.BlobsBundle == nil {
		return &MissingFieldError{Type: typ, Field: "blobsBundle"}
	}
	if dec.ShouldOverrideBuilder == nil {
		return &MissingFieldError{Type: typ, Field: "shouldOverrideBuilder"}
	}
	e.ExecutionPayload = *dec.ExecutionPayload
	e.BlockValue = *dec.BlockValue
	e.BlobsBundle = *dec.BlobsBundle
	e.ShouldOverrideBuilder = *dec.ShouldOverrideBuilder
	return nil
}

func (e *ExecutionPayloadEnvelopeV3) UnmarshalJSON(input []byte) error {
	var dec executionPayloadEnvelopeV3JSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	return dec.toEnvelope(e, "ExecutionPayloadEnvelopeV3")
}

// ExecutionPayloadEnvelopeV4 extends the V3 envelope with the opaque
// execution-layer requests produced while building the block.
type ExecutionPayloadEnvelopeV4 struct {
	ExecutionPayload      ExecutionPayloadV3 `json:"executionPayload"`
	BlockValue            U256               `json:"blockValue"`
	BlobsBundle           BlobsBundleV1      `json:"blobsBundle"`
	ShouldOverrideBuilder bool               `json:"shouldOverrideBuilder"`
	ExecutionRequests     []hexutil.Bytes    `json:"executionRequests"`
}

type executionPayloadEnvelopeV4JSON struct {
	executionPayloadEnvelopeV3JSON
	ExecutionRequests *[]hexutil.Bytes `json:"executionRequests"`
}

// MarshalJSON encodes the envelope, normalizing a nil request list to an
// empty one.
func (e ExecutionPayloadEnvelopeV4) MarshalJSON() ([]byte, error) {
	type envelopeV4 ExecutionPayloadEnvelopeV4
	m := envelopeV4(e)
	if m.ExecutionRequests == nil {
		m.ExecutionRequests = []hexutil.Bytes{}
	}
	return json.Marshal(m)
}

func (e *ExecutionPayloadEnvelopeV4) UnmarshalJSON(input []byte) error {
	var dec executionPayloadEnvelopeV4JSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	var inner ExecutionPayloadEnvelopeV3
	if err := dec.executionPayloadEnvelopeV3JSON.toEnvelope(&inner, "ExecutionPayloadEnvelopeV4"); err != nil {
		return err
	}
	if dec.ExecutionRequests == nil {
		return &MissingFieldError{Type: "ExecutionPayloadEnvelopeV4", Field: "executionRequests"}
	}
	e.ExecutionPayload = inner.ExecutionPayload
	e.BlockValue = inner.BlockValue
	e.BlobsBundle = inner.BlobsBundle
	e.ShouldOverrideBuilder = inner.ShouldOverrideBuilder
	e.ExecutionRequests = *dec.ExecutionRequests
	return nil
}
