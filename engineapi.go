// Package engineapi defines the payload exchange boundary between the
// N42 consensus process and its execution process: the versioned
// execution payload records, their binary and JSON codecs, and the
// collaborator interfaces the two processes implement against each
// other.
//
// The codecs live in [github.com/n42chain/engineapi/types] and
// [github.com/n42chain/engineapi/ssz] and are pure: no I/O, no shared
// state, safe for concurrent use on independent inputs. This package
// holds the interfaces and the errors that cross the boundary; the
// transport framing the calls is the caller's concern.
package engineapi

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/n42chain/engineapi/types"
)

// PayloadValidator is implemented by the execution process. It receives
// built blocks from consensus and reports how far they got.
type PayloadValidator interface {
	// NewPayload submits a payload of any supported version for
	// validation and execution. The returned status is the only channel
	// for validation failures; the error return covers the call itself
	// failing, not the payload being bad.
	NewPayload(ctx context.Context, payload types.ExecutionPayload) (types.PayloadStatusV1, error)

	// NewPayloadV2 submits the input shape of a V2 payload, which may or
	// may not carry withdrawals depending on the fork the block falls in.
	NewPayloadV2(ctx context.Context, payload types.ExecutionPayloadInputV2) (types.PayloadStatusV1, error)
}

// PayloadBuilder is implemented by the execution process. Consensus
// starts a build job via a fork choice update carrying
// [types.PayloadAttributes], then collects the result by the returned
// payload ID.
//
// Builders return an UnknownPayloadError when the ID does not name an
// in-flight job; build jobs are transient and an ID from a previous
// process lifetime is simply unknown.
type PayloadBuilder interface {
	// GetPayloadV2 returns the built payload with its fee value.
	GetPayloadV2(ctx context.Context, id types.PayloadID) (*types.ExecutionPayloadEnvelopeV2, error)

	// GetPayloadV3 returns the built payload with its fee value, blob
	// bundle, and builder-override suggestion.
	GetPayloadV3(ctx context.Context, id types.PayloadID) (*types.ExecutionPayloadEnvelopeV3, error)

	// GetPayloadV4 additionally returns the execution-layer requests
	// produced while building.
	GetPayloadV4(ctx context.Context, id types.PayloadID) (*types.ExecutionPayloadEnvelopeV4, error)
}

// BodyProvider serves historical payload bodies. A nil entry in the
// result means the block is not known to the execution process.
type BodyProvider interface {
	PayloadBodiesByHash(ctx context.Context, hashes []common.Hash) (types.ExecutionPayloadBodiesV1, error)
	PayloadBodiesByRange(ctx context.Context, start, count uint64) (types.ExecutionPayloadBodiesV1, error)
}
