package types

import "github.com/ethereum/go-ethereum/common/hexutil"

// PayloadID is the opaque 8-byte token that correlates an in-flight
// payload build job between the consensus and execution processes. It has
// no internal structure; only equality matters.
type PayloadID [8]byte

func (id PayloadID) String() string {
	return hexutil.Encode(id[:])
}

func (id PayloadID) MarshalText() ([]byte, error) {
	return hexutil.Bytes(id[:]).MarshalText()
}

func (id *PayloadID) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("PayloadID", input, id[:])
}
