package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// BloomLength is the byte width of a block's logs bloom filter.
const BloomLength = 256

// Quantity is an unsigned 64-bit counter rendered in JSON as a "0x"
// prefixed minimal-length lowercase hex string ("0x0" for zero). Parsing
// is case-insensitive and accepts leading zero digits; geth's
// hexutil.Uint64 rejects those, which is why this is a separate type.
type Quantity uint64

func (q Quantity) MarshalText() ([]byte, error) {
	return []byte("0x" + strconv.FormatUint(uint64(q), 16)), nil
}

func (q *Quantity) UnmarshalText(input []byte) error {
	digits, err := quantityDigits(input)
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return fmt.Errorf("invalid hex quantity %q: %w", input, err)
	}
	*q = Quantity(v)
	return nil
}

// U256 is a 256-bit unsigned quantity with the same textual rules as
// Quantity. It is a named form of uint256.Int so values stay comparable
// with ==.
type U256 uint256.Int

// NewU256 returns the quantity for a small value.
func NewU256(v uint64) U256 {
	return U256(*uint256.NewInt(v))
}

// Int exposes the value as a uint256.Int for arithmetic.
func (u *U256) Int() *uint256.Int {
	return (*uint256.Int)(u)
}

// Hex returns the minimal "0x" hex rendering.
func (u U256) Hex() string {
	i := uint256.Int(u)
	return i.Hex()
}

func (u U256) MarshalText() ([]byte, error) {
	return []byte(u.Hex()), nil
}

func (u *U256) UnmarshalText(input []byte) error {
	digits, err := quantityDigits(input)
	if err != nil {
		return err
	}
	// uint256 rejects leading zero digits and uppercase input; the wire
	// format permits both, so normalize before handing over.
	digits = strings.TrimLeft(strings.ToLower(digits), "0")
	if digits == "" {
		digits = "0"
	}
	v, err := uint256.FromHex("0x" + digits)
	if err != nil {
		return fmt.Errorf("invalid hex quantity %q: %w", input, err)
	}
	*u = U256(*v)
	return nil
}

// quantityDigits strips the mandatory 0x prefix and verifies at least one
// digit remains. Case-insensitivity covers the prefix as well as the
// digits, so "0X1" parses the same as "0x1".
func quantityDigits(input []byte) (string, error) {
	s := string(input)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", fmt.Errorf("invalid hex quantity %q: missing 0x prefix", s)
	}
	if len(s) == 2 {
		return "", fmt.Errorf("invalid hex quantity %q: no digits", s)
	}
	return s[2:], nil
}

// Bloom is the 2048-bit logs bloom filter of a block.
type Bloom [BloomLength]byte

func (b Bloom) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

func (b *Bloom) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Bloom", input, b[:])
}

// BlockNonce is the 8-byte block nonce carried by N42 headers.
type BlockNonce [8]byte

func (n BlockNonce) MarshalText() ([]byte, error) {
	return hexutil.Bytes(n[:]).MarshalText()
}

func (n *BlockNonce) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("BlockNonce", input, n[:])
}
