// Package types defines the versioned execution payload records exchanged
// between the N42 consensus process and its execution process, together
// with their two wire codecs: the offset-table binary encoding (see the
// ssz package) and the camelCase JSON used on the engine RPC surface.
//
// Each payload version appends fields to the previous one, and the
// layering is explicit: V2 embeds V1, V3 embeds V2. Both codecs flatten
// the embedded parent, so the encoded field order is always the parent's
// fields followed by the child's additions.
package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ExecutionPayloadV1 is the base execution payload shape. The N42 chain
// extends the upstream V1 layout with a difficulty and a block nonce,
// appended after the transaction list in both codecs.
type ExecutionPayloadV1 struct {
	ParentHash    common.Hash     `json:"parentHash"`
	FeeRecipient  common.Address  `json:"feeRecipient"`
	StateRoot     common.Hash     `json:"stateRoot"`
	ReceiptsRoot  common.Hash     `json:"receiptsRoot"`
	LogsBloom     Bloom           `json:"logsBloom"`
	PrevRandao    common.Hash     `json:"prevRandao"`
	BlockNumber   Quantity        `json:"blockNumber"`
	GasLimit      Quantity        `json:"gasLimit"`
	GasUsed       Quantity        `json:"gasUsed"`
	Timestamp     Quantity        `json:"timestamp"`
	ExtraData     hexutil.Bytes   `json:"extraData"`
	BaseFeePerGas U256            `json:"baseFeePerGas"`
	BlockHash     common.Hash     `json:"blockHash"`
	Transactions  []hexutil.Bytes `json:"transactions"`
	Difficulty    U256            `json:"difficulty"`
	Nonce         BlockNonce      `json:"nonce"`
}

// BlockNumHash pairs a block number with its hash.
type BlockNumHash struct {
	Number uint64
	Hash   common.Hash
}

// NumHash returns the payload's block number and hash.
func (p *ExecutionPayloadV1) NumHash() BlockNumHash {
	return BlockNumHash{Number: uint64(p.BlockNumber), Hash: p.BlockHash}
}

// ExecutionPayloadV2 extends V1 with validator withdrawals.
type ExecutionPayloadV2 struct {
	ExecutionPayloadV1
	Withdrawals []Withdrawal `json:"withdrawals"`
}

// ExecutionPayloadV3 extends V2 with the blob gas accounting fields.
type ExecutionPayloadV3 struct {
	ExecutionPayloadV2
	BlobGasUsed   Quantity `json:"blobGasUsed"`
	ExcessBlobGas Quantity `json:"excessBlobGas"`
}

// ExecutionPayloadV4 extends V3 with opaque execution-layer requests.
// It exists on the JSON surface only; the binary codec stops at V3.
type ExecutionPayloadV4 struct {
	ExecutionPayloadV3
	ExecutionRequests []hexutil.Bytes `json:"executionRequests"`
}

// ExecutionPayload is a tagged union over the payload versions that cross
// the engine boundary untagged. Exactly one variant is set; construct
// values with PayloadFromV1/V2/V3.
//
// JSON carries no version discriminator, so decoding tries V3, then V2,
// then V1, keeping the first shape whose required fields all parse. The
// ordering is load-bearing: a document carrying blobGasUsed must never
// silently decode as an older version. The converse ambiguity is
// accepted as-is: a document that is a valid V1 but also happens to carry
// every V2 or V3 key is taken as the newer version.
type ExecutionPayload struct {
	v1 *ExecutionPayloadV1
	v2 *ExecutionPayloadV2
	v3 *ExecutionPayloadV3
}

// PayloadFromV1 wraps a V1 payload.
func PayloadFromV1(p *ExecutionPayloadV1) ExecutionPayload {
	return ExecutionPayload{v1: p}
}

// PayloadFromV2 wraps a V2 payload.
func PayloadFromV2(p *ExecutionPayloadV2) ExecutionPayload {
	return ExecutionPayload{v2: p}
}

// PayloadFromV3 wraps a V3 payload.
func PayloadFromV3(p *ExecutionPayloadV3) ExecutionPayload {
	return ExecutionPayload{v3: p}
}

// Version reports the active variant (1, 2 or 3), or 0 for the zero
// value.
func (p *ExecutionPayload) Version() int {
	switch {
	case p.v3 != nil:
		return 3
	case p.v2 != nil:
		return 2
	case p.v1 != nil:
		return 1
	}
	return 0
}

// AsV1 returns the common V1 prefix of the active variant. The reference
// points into the variant, so mutations are visible through the union.
// Every variant has a V1 prefix, so this never fails on a constructed
// value; it returns nil only for the zero value.
func (p *ExecutionPayload) AsV1() *ExecutionPayloadV1 {
	switch {
	case p.v3 != nil:
		return &p.v3.ExecutionPayloadV1
	case p.v2 != nil:
		return &p.v2.ExecutionPayloadV1
	}
	return p.v1
}

// AsV2 returns the V2 view if the active variant is V2 or newer.
func (p *ExecutionPayload) AsV2() (*ExecutionPayloadV2, bool) {
	switch {
	case p.v3 != nil:
		return &p.v3.ExecutionPayloadV2, true
	case p.v2 != nil:
		return p.v2, true
	}
	return nil, false
}

// AsV3 returns the V3 payload if that is the active variant.
func (p *ExecutionPayload) AsV3() (*ExecutionPayloadV3, bool) {
	if p.v3 != nil {
		return p.v3, true
	}
	return nil, false
}

// Withdrawals returns the withdrawal list for V2 and newer variants.
// The second return is false for V1, where the field does not exist;
// that is distinct from a present-but-empty list.
func (p *ExecutionPayload) Withdrawals() ([]Withdrawal, bool) {
	if v2, ok := p.AsV2(); ok {
		return v2.Withdrawals, true
	}
	return nil, false
}

// Timestamp returns the payload timestamp.
func (p *ExecutionPayload) Timestamp() uint64 { return uint64(p.AsV1().Timestamp) }

// ParentHash returns the parent block hash.
func (p *ExecutionPayload) ParentHash() common.Hash { return p.AsV1().ParentHash }

// BlockHash returns the payload's own block hash. The hash is computed
// by the producer; this package treats it as opaque data.
func (p *ExecutionPayload) BlockHash() common.Hash { return p.AsV1().BlockHash }

// BlockNumber returns the block height.
func (p *ExecutionPayload) BlockNumber() uint64 { return uint64(p.AsV1().BlockNumber) }

// NumHash returns the block number and hash together.
func (p *ExecutionPayload) NumHash() BlockNumHash { return p.AsV1().NumHash() }

// PrevRandao returns the randomness value of the payload.
func (p *ExecutionPayload) PrevRandao() common.Hash { return p.AsV1().PrevRandao }

// ExecutionPayloadFieldV2 is the executionPayload member of the V2
// envelope: a V1 or V2 payload, again without a discriminator. Decoding
// tries V2 before V1.
type ExecutionPayloadFieldV2 struct {
	v1 *ExecutionPayloadV1
	v2 *ExecutionPayloadV2
}

// PayloadFieldFromV1 wraps a V1 payload.
func PayloadFieldFromV1(p *ExecutionPayloadV1) ExecutionPayloadFieldV2 {
	return ExecutionPayloadFieldV2{v1: p}
}

// PayloadFieldFromV2 wraps a V2 payload.
func PayloadFieldFromV2(p *ExecutionPayloadV2) ExecutionPayloadFieldV2 {
	return ExecutionPayloadFieldV2{v2: p}
}

// AsV1 returns the common V1 prefix of the active variant.
func (f *ExecutionPayloadFieldV2) AsV1() *ExecutionPayloadV1 {
	if f.v2 != nil {
		return &f.v2.ExecutionPayloadV1
	}
	return f.v1
}

// AsV2 returns the V2 payload if that is the active variant.
func (f *ExecutionPayloadFieldV2) AsV2() (*ExecutionPayloadV2, bool) {
	if f.v2 != nil {
		return f.v2, true
	}
	return nil, false
}

// IntoV1 returns a copy of the V1 prefix, discarding withdrawals when the
// active variant is V2.
func (f *ExecutionPayloadFieldV2) IntoV1() ExecutionPayloadV1 {
	return *f.AsV1()
}

// ExecutionPayloadInputV2 is the input shape of a V2 payload submission:
// the flattened V1 fields plus an optional withdrawal list. Withdrawals
// stay distinguishable between absent (pre-V2 block) and present but
// empty; the key is omitted entirely when the slice is nil.
type ExecutionPayloadInputV2 struct {
	ExecutionPayload ExecutionPayloadV1
	Withdrawals      []Withdrawal
}

// ExecutionPayloadBodyV1 is one entry of a payload-bodies response.
// Withdrawals is nil for pre-V2 blocks and marshals as an explicit null
// rather than being omitted.
type ExecutionPayloadBodyV1 struct {
	Transactions []hexutil.Bytes `json:"transactions"`
	Withdrawals  []Withdrawal    `json:"withdrawals"`
}

// ExecutionPayloadBodiesV1 is a payload-bodies response; entries are nil
// for blocks the execution process does not know.
type ExecutionPayloadBodiesV1 []*ExecutionPayloadBodyV1
