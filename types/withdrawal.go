package types

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/n42chain/engineapi/ssz"
)

// Withdrawal is a validator withdrawal pushed into the execution layer,
// enabled with V2 payloads.
type Withdrawal struct {
	Index          Quantity       `json:"index"`
	ValidatorIndex Quantity       `json:"validatorIndex"`
	Address        common.Address `json:"address"`
	Amount         Quantity       `json:"amount"`
}

// withdrawalSize is the binary width: all four fields are fixed-size.
const withdrawalSize = 8 + 8 + common.AddressLength + 8

// SizeSSZ returns the encoded size in bytes.
func (w *Withdrawal) SizeSSZ() int { return withdrawalSize }

// MarshalSSZ encodes the withdrawal.
func (w *Withdrawal) MarshalSSZ() ([]byte, error) {
	enc := ssz.NewEncoder(withdrawalSize)
	enc.WriteUint64(uint64(w.Index))
	enc.WriteUint64(uint64(w.ValidatorIndex))
	enc.WriteBytes(w.Address[:])
	enc.WriteUint64(uint64(w.Amount))
	return enc.Finalize(), nil
}

// UnmarshalSSZ decodes the withdrawal from buf.
func (w *Withdrawal) UnmarshalSSZ(buf []byte) error {
	b := ssz.NewDecoderBuilder(buf)
	b.RegisterUint64()
	b.RegisterUint64()
	b.RegisterFixed(common.AddressLength)
	b.RegisterUint64()
	d, err := b.Build()
	if err != nil {
		return err
	}
	w.Index = Quantity(d.ReadUint64())
	w.ValidatorIndex = Quantity(d.ReadUint64())
	d.ReadBytes(w.Address[:])
	w.Amount = Quantity(d.ReadUint64())
	return nil
}

func marshalWithdrawals(ws []Withdrawal) []byte {
	out := make([]byte, 0, len(ws)*withdrawalSize)
	for i := range ws {
		b, _ := ws[i].MarshalSSZ()
		out = append(out, b...)
	}
	return out
}

func unmarshalWithdrawals(buf []byte) ([]Withdrawal, error) {
	chunks, err := ssz.SplitFixedList(buf, withdrawalSize)
	if err != nil {
		return nil, err
	}
	ws := make([]Withdrawal, len(chunks))
	for i, c := range chunks {
		if err := ws[i].UnmarshalSSZ(c); err != nil {
			return nil, err
		}
	}
	return ws, nil
}
