package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/n42chain/engineapi/ssz"
)

// Fixed-region widths per payload version: the sum of the fixed field
// widths plus one offset slot per variable-size field. V1 has two
// variable fields (extraData, transactions), V2 adds withdrawals, V3
// adds two more counters.
const (
	payloadV1FixedLen = 5*common.HashLength + common.AddressLength + BloomLength +
		4*8 + 32 + 32 + 8 + 2*ssz.BytesPerLengthOffset
	payloadV2FixedLen = payloadV1FixedLen + ssz.BytesPerLengthOffset
	payloadV3FixedLen = payloadV2FixedLen + 2*8
)

// appendSSZFields writes the V1 fields into enc in declaration order.
// Extended versions call this first so the parent's layout contributes
// verbatim as a prefix of theirs.
func (p *ExecutionPayloadV1) appendSSZFields(enc *ssz.Encoder) {
	enc.WriteBytes(p.ParentHash[:])
	enc.WriteBytes(p.FeeRecipient[:])
	enc.WriteBytes(p.StateRoot[:])
	enc.WriteBytes(p.ReceiptsRoot[:])
	enc.WriteBytes(p.LogsBloom[:])
	enc.WriteBytes(p.PrevRandao[:])
	enc.WriteUint64(uint64(p.BlockNumber))
	enc.WriteUint64(uint64(p.GasLimit))
	enc.WriteUint64(uint64(p.GasUsed))
	enc.WriteUint64(uint64(p.Timestamp))
	enc.WriteVariable(p.ExtraData)
	enc.WriteUint256(p.BaseFeePerGas.Int())
	enc.WriteBytes(p.BlockHash[:])
	enc.WriteVariable(ssz.EncodeByteLists(byteLists(p.Transactions)))
	enc.WriteUint256(p.Difficulty.Int())
	enc.WriteBytes(p.Nonce[:])
}

// registerSSZFields declares the V1 field layout on b.
func (*ExecutionPayloadV1) registerSSZFields(b *ssz.DecoderBuilder) {
	b.RegisterFixed(common.HashLength)
	b.RegisterFixed(common.AddressLength)
	b.RegisterFixed(common.HashLength)
	b.RegisterFixed(common.HashLength)
	b.RegisterFixed(BloomLength)
	b.RegisterFixed(common.HashLength)
	b.RegisterUint64()
	b.RegisterUint64()
	b.RegisterUint64()
	b.RegisterUint64()
	b.RegisterVariable()
	b.RegisterUint256()
	b.RegisterFixed(common.HashLength)
	b.RegisterVariable()
	b.RegisterUint256()
	b.RegisterFixed(8)
}

// readSSZFields materializes the V1 fields from d in declaration order.
func (p *ExecutionPayloadV1) readSSZFields(d *ssz.Decoder) error {
	d.ReadBytes(p.ParentHash[:])
	d.ReadBytes(p.FeeRecipient[:])
	d.ReadBytes(p.StateRoot[:])
	d.ReadBytes(p.ReceiptsRoot[:])
	d.ReadBytes(p.LogsBloom[:])
	d.ReadBytes(p.PrevRandao[:])
	p.BlockNumber = Quantity(d.ReadUint64())
	p.GasLimit = Quantity(d.ReadUint64())
	p.GasUsed = Quantity(d.ReadUint64())
	p.Timestamp = Quantity(d.ReadUint64())
	p.ExtraData = append(hexutil.Bytes{}, d.Next()...)
	d.ReadUint256(p.BaseFeePerGas.Int())
	d.ReadBytes(p.BlockHash[:])
	txs, err := ssz.DecodeByteLists(d.Next())
	if err != nil {
		return err
	}
	p.Transactions = txBytes(txs)
	d.ReadUint256(p.Difficulty.Int())
	d.ReadBytes(p.Nonce[:])
	return nil
}

// SizeSSZ returns the encoded size in bytes.
func (p *ExecutionPayloadV1) SizeSSZ() int {
	return payloadV1FixedLen + len(p.ExtraData) + ssz.ByteListsSize(byteLists(p.Transactions))
}

// MarshalSSZ encodes the payload with the offset-table convention.
func (p *ExecutionPayloadV1) MarshalSSZ() ([]byte, error) {
	enc := ssz.NewEncoder(payloadV1FixedLen)
	p.appendSSZFields(enc)
	return enc.Finalize(), nil
}

// UnmarshalSSZ decodes the payload from buf.
func (p *ExecutionPayloadV1) UnmarshalSSZ(buf []byte) error {
	b := ssz.NewDecoderBuilder(buf)
	p.registerSSZFields(b)
	d, err := b.Build()
	if err != nil {
		return err
	}
	return p.readSSZFields(d)
}

// SizeSSZ returns the encoded size in bytes.
func (p *ExecutionPayloadV2) SizeSSZ() int {
	return p.ExecutionPayloadV1.SizeSSZ() + ssz.BytesPerLengthOffset +
		len(p.Withdrawals)*withdrawalSize
}

// MarshalSSZ encodes the payload: the V1 fields followed by the
// withdrawal list.
func (p *ExecutionPayloadV2) MarshalSSZ() ([]byte, error) {
	enc := ssz.NewEncoder(payloadV2FixedLen)
	p.appendSSZFields(enc)
	enc.WriteVariable(marshalWithdrawals(p.Withdrawals))
	return enc.Finalize(), nil
}

// UnmarshalSSZ decodes the payload from buf.
func (p *ExecutionPayloadV2) UnmarshalSSZ(buf []byte) error {
	b := ssz.NewDecoderBuilder(buf)
	p.registerSSZFields(b)
	b.RegisterVariable()
	d, err := b.Build()
	if err != nil {
		return err
	}
	if err := p.ExecutionPayloadV1.readSSZFields(d); err != nil {
		return err
	}
	ws, err := unmarshalWithdrawals(d.Next())
	if err != nil {
		return err
	}
	p.Withdrawals = ws
	return nil
}

// SizeSSZ returns the encoded size in bytes.
func (p *ExecutionPayloadV3) SizeSSZ() int {
	return p.ExecutionPayloadV2.SizeSSZ() + 2*8
}

// MarshalSSZ encodes the payload: the V2 fields followed by the blob gas
// counters.
func (p *ExecutionPayloadV3) MarshalSSZ() ([]byte, error) {
	enc := ssz.NewEncoder(payloadV3FixedLen)
	p.appendSSZFields(enc)
	enc.WriteVariable(marshalWithdrawals(p.Withdrawals))
	enc.WriteUint64(uint64(p.BlobGasUsed))
	enc.WriteUint64(uint64(p.ExcessBlobGas))
	return enc.Finalize(), nil
}

// UnmarshalSSZ decodes the payload from buf.
func (p *ExecutionPayloadV3) UnmarshalSSZ(buf []byte) error {
	b := ssz.NewDecoderBuilder(buf)
	p.registerSSZFields(b)
	b.RegisterVariable()
	b.RegisterUint64()
	b.RegisterUint64()
	d, err := b.Build()
	if err != nil {
		return err
	}
	if err := p.ExecutionPayloadV1.readSSZFields(d); err != nil {
		return err
	}
	ws, err := unmarshalWithdrawals(d.Next())
	if err != nil {
		return err
	}
	p.Withdrawals = ws
	p.BlobGasUsed = Quantity(d.ReadUint64())
	p.ExcessBlobGas = Quantity(d.ReadUint64())
	return nil
}

func byteLists(in []hexutil.Bytes) [][]byte {
	out := make([][]byte, len(in))
	for i, b := range in {
		out[i] = b
	}
	return out
}

func txBytes(in [][]byte) []hexutil.Bytes {
	out := make([]hexutil.Bytes, len(in))
	for i, b := range in {
		out[i] = append(hexutil.Bytes{}, b...)
	}
	return out
}
