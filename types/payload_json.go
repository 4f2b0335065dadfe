package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// The JSON codec uses two shadow struct families. The marshal shadows
// carry value fields so nil slices can be normalized to empty lists
// before encoding. The unmarshal shadows carry pointer fields so that a
// missing key is distinguishable from a zero value and can be reported
// as a MissingFieldError. Embedding mirrors the payload types, which
// keeps the flattened key order identical to the struct declarations.

// decodeStrict decodes a single JSON document rejecting both unknown
// keys and trailing input. V1 deliberately does not go through this
// path; it predates the strict contract and must keep accepting
// documents produced by newer peers.
func decodeStrict(input []byte, v any, typ string) error {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &TrailingDataError{Type: typ}
	}
	return nil
}

type executionPayloadV1Marshal struct {
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

func payloadV1Marshal(p *ExecutionPayloadV1) executionPayloadV1Marshal {
	m := executionPayloadV1Marshal{
		ParentHash:    p.ParentHash,
		FeeRecipient:  p.FeeRecipient,
		StateRoot:     p.StateRoot,
		ReceiptsRoot:  p.ReceiptsRoot,
		LogsBloom:     p.LogsBloom,
		PrevRandao:    p.PrevRandao,
		BlockNumber:   p.BlockNumber,
		GasLimit:      p.GasLimit,
		GasUsed:       p.GasUsed,
		Timestamp:     p.Timestamp,
		ExtraData:     p.ExtraData,
		BaseFeePerGas: p.BaseFeePerGas,
		BlockHash:     p.BlockHash,
		Transactions:  p.Transactions,
		Difficulty:    p.Difficulty,
		Nonce:         p.Nonce,
	}
	if m.ExtraData == nil {
		m.ExtraData = hexutil.Bytes{}
	}
	if m.Transactions == nil {
		m.Transactions = []hexutil.Bytes{}
	}
	return m
}

type executionPayloadV1JSON struct {
	ParentHash    *common.Hash     `json:"parentHash"`
	FeeRecipient  *common.Address  `json:"feeRecipient"`
	StateRoot     *common.Hash     `json:"stateRoot"`
	ReceiptsRoot  *common.Hash     `json:"receiptsRoot"`
	LogsBloom     *Bloom           `json:"logsBloom"`
	PrevRandao    *common.Hash     `json:"prevRandao"`
	BlockNumber   *Quantity        `json:"blockNumber"`
	GasLimit      *Quantity        `json:"gasLimit"`
	GasUsed       *Quantity        `json:"gasUsed"`
	Timestamp     *Quantity        `json:"timestamp"`
	ExtraData     *hexutil.Bytes   `json:"extraData"`
	BaseFeePerGas *U256            `json:"baseFeePerGas"`
	BlockHash     *common.Hash     `json:"blockHash"`
	Transactions  *[]hexutil.Bytes `json:"transactions"`
	Difficulty    *U256            `json:"difficulty"`
	Nonce         *BlockNonce      `json:"nonce"`
}

func (dec *executionPayloadV1JSON) toPayload(p *ExecutionPayloadV1) error {
	if dec.ParentHash == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "parentHash"}
	}
	if dec.FeeRecipient == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "feeRecipient"}
	}
	if dec.StateRoot == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "stateRoot"}
	}
	if dec.ReceiptsRoot == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "receiptsRoot"}
	}
	if dec.LogsBloom == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "logsBloom"}
	}
	if dec.PrevRandao == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "prevRandao"}
	}
	if dec.BlockNumber == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "blockNumber"}
	}
	if dec.GasLimit == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "gasLimit"}
	}
	if dec.GasUsed == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "gasUsed"}
	}
	if dec.Timestamp == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "timestamp"}
	}
	if dec.ExtraData == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "extraData"}
	}
	if dec.BaseFeePerGas == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "baseFeePerGas"}
	}
	if dec.BlockHash == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "blockHash"}
	}
	if dec.Transactions == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV1", Field: "transactions"}
	}
	p.ParentHash = *dec.ParentHash
	p.FeeRecipient = *dec.FeeRecipient
	p.StateRoot = *dec.StateRoot
	p.ReceiptsRoot = *dec.ReceiptsRoot
	p.LogsBloom = *dec.LogsBloom
	p.PrevRandao = *dec.PrevRandao
	p.BlockNumber = *dec.BlockNumber
	p.GasLimit = *dec.GasLimit
	p.GasUsed = *dec.GasUsed
	p.Timestamp = *dec.Timestamp
	p.ExtraData = *dec.ExtraData
	p.BaseFeePerGas = *dec.BaseFeePerGas
	p.BlockHash = *dec.BlockHash
	p.Transactions = *dec.Transactions
	// The chain-specific fields default to zero so documents produced by
	// upstream tooling, which has no difficulty or nonce, still decode.
	p.Difficulty = U256{}
	if dec.Difficulty != nil {
		p.Difficulty = *dec.Difficulty
	}
	p.Nonce = BlockNonce{}
	if dec.Nonce != nil {
		p.Nonce = *dec.Nonce
	}
	return nil
}

// MarshalJSON encodes the payload, normalizing nil byte lists to empty
// ones.
func (p ExecutionPayloadV1) MarshalJSON() ([]byte, error) {
	return json.Marshal(payloadV1Marshal(&p))
}

// UnmarshalJSON decodes a V1 payload. Unknown keys are ignored: V1 is
// the fallback shape of the untagged resolver and must stay permissive.
func (p *ExecutionPayloadV1) UnmarshalJSON(input []byte) error {
	var dec executionPayloadV1JSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	return dec.toPayload(p)
}

type executionPayloadV2Marshal struct {
	executionPayloadV1Marshal
	Withdrawals []Withdrawal `json:"withdrawals"`
}

func payloadV2Marshal(p *ExecutionPayloadV2) executionPayloadV2Marshal {
	m := executionPayloadV2Marshal{
		executionPayloadV1Marshal: payloadV1Marshal(&p.ExecutionPayloadV1),
		Withdrawals:               p.Withdrawals,
	}
	if m.Withdrawals == nil {
		m.Withdrawals = []Withdrawal{}
	}
	return m
}

type executionPayloadV2JSON struct {
	executionPayloadV1JSON
	Withdrawals *[]Withdrawal `json:"withdrawals"`
}

func (dec *executionPayloadV2JSON) toPayload(p *ExecutionPayloadV2) error {
	if err := dec.executionPayloadV1JSON.toPayload(&p.ExecutionPayloadV1); err != nil {
		return err
	}
	if dec.Withdrawals == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV2", Field: "withdrawals"}
	}
	p.Withdrawals = *dec.Withdrawals
	return nil
}

func (p ExecutionPayloadV2) MarshalJSON() ([]byte, error) {
	return json.Marshal(payloadV2Marshal(&p))
}

// UnmarshalJSON decodes a V2 payload strictly: any key outside the V2
// set fails the decode.
func (p *ExecutionPayloadV2) UnmarshalJSON(input []byte) error {
	var dec executionPayloadV2JSON
	if err := decodeStrict(input, &dec, "ExecutionPayloadV2"); err != nil {
		return err
	}
	return dec.toPayload(p)
}

type executionPayloadV3Marshal struct {
	executionPayloadV2Marshal
	BlobGasUsed   Quantity `json:"blobGasUsed"`
	ExcessBlobGas Quantity `json:"excessBlobGas"`
}

func payloadV3Marshal(p *ExecutionPayloadV3) executionPayloadV3Marshal {
	return executionPayloadV3Marshal{
		executionPayloadV2Marshal: payloadV2Marshal(&p.ExecutionPayloadV2),
		BlobGasUsed:               p.BlobGasUsed,
		ExcessBlobGas:             p.ExcessBlobGas,
	}
}

type executionPayloadV3JSON struct {
	executionPayloadV2JSON
	BlobGasUsed   *Quantity `json:"blobGasUsed"`
	ExcessBlobGas *Quantity `json:"excessBlobGas"`
}

func (dec *executionPayloadV3JSON) toPayload(p *ExecutionPayloadV3) error {
	if err := dec.executionPayloadV2JSON.toPayload(&p.ExecutionPayloadV2); err != nil {
		return err
	}
	if dec.BlobGasUsed == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV3", Field: "blobGasUsed"}
	}
	if dec.ExcessBlobGas == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV3", Field: "excessBlobGas"}
	}
	p.BlobGasUsed = *dec.BlobGasUsed
	p.ExcessBlobGas = *dec.ExcessBlobGas
	return nil
}

func (p ExecutionPayloadV3) MarshalJSON() ([]byte, error) {
	return json.Marshal(payloadV3Marshal(&p))
}

// UnmarshalJSON decodes a V3 payload strictly.
func (p *ExecutionPayloadV3) UnmarshalJSON(input []byte) error {
	var dec executionPayloadV3JSON
	if err := decodeStrict(input, &dec, "ExecutionPayloadV3"); err != nil {
		return err
	}
	return dec.toPayload(p)
}

type executionPayloadV4Marshal struct {
	executionPayloadV3Marshal
	ExecutionRequests []hexutil.Bytes `json:"executionRequests"`
}

type executionPayloadV4JSON struct {
	executionPayloadV3JSON
	ExecutionRequests *[]hexutil.Bytes `json:"executionRequests"`
}

func (p ExecutionPayloadV4) MarshalJSON() ([]byte, error) {
	m := executionPayloadV4Marshal{
		executionPayloadV3Marshal: payloadV3Marshal(&p.ExecutionPayloadV3),
		ExecutionRequests:         p.ExecutionRequests,
	}
	if m.ExecutionRequests == nil {
		m.ExecutionRequests = []hexutil.Bytes{}
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a V4 payload strictly.
func (p *ExecutionPayloadV4) UnmarshalJSON(input []byte) error {
	var dec executionPayloadV4JSON
	if err := decodeStrict(input, &dec, "ExecutionPayloadV4"); err != nil {
		return err
	}
	if err := dec.executionPayloadV3JSON.toPayload(&p.ExecutionPayloadV3); err != nil {
		return err
	}
	if dec.ExecutionRequests == nil {
		return &MissingFieldError{Type: "ExecutionPayloadV4", Field: "executionRequests"}
	}
	p.ExecutionRequests = *dec.ExecutionRequests
	return nil
}

// MarshalJSON encodes the active variant. The zero value has no variant
// and cannot be encoded.
func (p ExecutionPayload) MarshalJSON() ([]byte, error) {
	switch {
	case p.v3 != nil:
		return json.Marshal(p.v3)
	case p.v2 != nil:
		return json.Marshal(p.v2)
	case p.v1 != nil:
		return json.Marshal(p.v1)
	}
	return nil, errors.New("types: cannot encode empty execution payload")
}

// UnmarshalJSON resolves the untagged document by trial decoding, most
// specific shape first: V3, then V2, then V1. The strict V3/V2 decoders
// push any document with extra keys down to the permissive V1 fallback,
// mirroring the encoder side of the versioned peers.
func (p *ExecutionPayload) UnmarshalJSON(input []byte) error {
	var v3 ExecutionPayloadV3
	if err := v3.UnmarshalJSON(input); err == nil {
		*p = PayloadFromV3(&v3)
		return nil
	}
	var v2 ExecutionPayloadV2
	if err := v2.UnmarshalJSON(input); err == nil {
		*p = PayloadFromV2(&v2)
		return nil
	}
	var v1 ExecutionPayloadV1
	if err := v1.UnmarshalJSON(input); err == nil {
		*p = PayloadFromV1(&v1)
		return nil
	}
	return ErrUnknownPayloadShape
}

// MarshalJSON encodes the active variant.
func (f ExecutionPayloadFieldV2) MarshalJSON() ([]byte, error) {
	if f.v2 != nil {
		return json.Marshal(f.v2)
	}
	if f.v1 != nil {
		return json.Marshal(f.v1)
	}
	return nil, errors.New("types: cannot encode empty execution payload field")
}

// UnmarshalJSON resolves the untagged document, trying V2 before V1.
func (f *ExecutionPayloadFieldV2) UnmarshalJSON(input []byte) error {
	var v2 ExecutionPayloadV2
	if err := v2.UnmarshalJSON(input); err == nil {
		*f = PayloadFieldFromV2(&v2)
		return nil
	}
	var v1 ExecutionPayloadV1
	if err := v1.UnmarshalJSON(input); err == nil {
		*f = PayloadFieldFromV1(&v1)
		return nil
	}
	return ErrUnknownPayloadShape
}

type executionPayloadInputV2Marshal struct {
	executionPayloadV1Marshal
	Withdrawals *[]Withdrawal `json:"withdrawals,omitempty"`
}

type executionPayloadInputV2JSON struct {
	executionPayloadV1JSON
	Withdrawals *[]Withdrawal `json:"withdrawals"`
}

// MarshalJSON encodes the submission. The withdrawals key is omitted
// entirely when the list is nil; a present empty list encodes as [].
func (p ExecutionPayloadInputV2) MarshalJSON() ([]byte, error) {
	m := executionPayloadInputV2Marshal{
		executionPayloadV1Marshal: payloadV1Marshal(&p.ExecutionPayload),
	}
	if p.Withdrawals != nil {
		ws := p.Withdrawals
		m.Withdrawals = &ws
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the submission strictly. A missing withdrawals
// key yields nil, an explicit empty list yields an empty non-nil slice;
// the two stay distinguishable.
func (p *ExecutionPayloadInputV2) UnmarshalJSON(input []byte) error {
	var dec executionPayloadInputV2JSON
	if err := decodeStrict(input, &dec, "ExecutionPayloadInputV2"); err != nil {
		return err
	}
	if err := dec.executionPayloadV1JSON.toPayload(&p.ExecutionPayload); err != nil {
		return err
	}
	if dec.Withdrawals == nil {
		p.Withdrawals = nil
		return nil
	}
	ws := *dec.Withdrawals
	if ws == nil {
		ws = []Withdrawal{}
	}
	p.Withdrawals = ws
	return nil
}

// MarshalJSON encodes the body entry. Transactions normalizes to an
// empty list; a nil withdrawals list stays an explicit null.
func (b ExecutionPayloadBodyV1) MarshalJSON() ([]byte, error) {
	type bodyJSON ExecutionPayloadBodyV1
	m := bodyJSON(b)
	if m.Transactions == nil {
		m.Transactions = []hexutil.Bytes{}
	}
	return json.Marshal(m)
}
