package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/n42chain/engineapi/ssz"
)

// BlobLength is the byte width of one data blob: 4096 field elements of
// 32 bytes each.
const BlobLength = 4096 * 32

// Bytes48 is a KZG commitment or proof.
type Bytes48 [48]byte

func (b Bytes48) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

func (b *Bytes48) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Bytes48", input, b[:])
}

// Blob is one fixed-size data blob.
type Blob [BlobLength]byte

func (b Blob) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

func (b *Blob) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Blob", input, b[:])
}

// BlobSidecar holds the matched commitment, proof, and blob sequences of
// a single blob transaction.
type BlobSidecar struct {
	Commitments []Bytes48 `json:"commitments"`
	Proofs      []Bytes48 `json:"proofs"`
	Blobs       []Blob    `json:"blobs"`
}

// BlobsBundleV1 collects the blob data of every transaction in an
// executed payload into three index-aligned sequences. The sequences
// always have equal length; only a caller violating the Take contract
// can break that.
type BlobsBundleV1 struct {
	Commitments []Bytes48 `json:"commitments"`
	Proofs      []Bytes48 `json:"proofs"`
	Blobs       []Blob    `json:"blobs"`
}

// NewBlobsBundle folds the sidecars into a single bundle, preserving
// both the sidecar order and each sidecar's internal order.
func NewBlobsBundle(sidecars []BlobSidecar) BlobsBundleV1 {
	var b BlobsBundleV1
	for _, sc := range sidecars {
		b.Commitments = append(b.Commitments, sc.Commitments...)
		b.Proofs = append(b.Proofs, sc.Proofs...)
		b.Blobs = append(b.Blobs, sc.Blobs...)
	}
	return b
}

// Len returns the number of blobs in the bundle.
func (b *BlobsBundleV1) Len() int { return len(b.Blobs) }

// Take removes and returns the first n elements of each sequence,
// leaving the bundle holding the remainder. It panics if n exceeds the
// bundle length; callers check Len first, so an overdraw is a contract
// violation rather than an input condition.
func (b *BlobsBundleV1) Take(n int) (commitments []Bytes48, proofs []Bytes48, blobs []Blob) {
	if n > b.Len() || n > len(b.Commitments) || n > len(b.Proofs) {
		panic(fmt.Sprintf("types: taking %d blobs from a bundle of %d", n, b.Len()))
	}
	commitments = append([]Bytes48{}, b.Commitments[:n]...)
	proofs = append([]Bytes48{}, b.Proofs[:n]...)
	blobs = append([]Blob{}, b.Blobs[:n]...)
	b.Commitments = b.Commitments[n:]
	b.Proofs = b.Proofs[n:]
	b.Blobs = b.Blobs[n:]
	return commitments, proofs, blobs
}

// PopSidecar drains the first n entries into a sidecar.
func (b *BlobsBundleV1) PopSidecar(n int) BlobSidecar {
	commitments, proofs, blobs := b.Take(n)
	return BlobSidecar{Commitments: commitments, Proofs: proofs, Blobs: blobs}
}

// MarshalJSON encodes the bundle, normalizing nil sequences to empty
// lists.
func (b BlobsBundleV1) MarshalJSON() ([]byte, error) {
	type bundleJSON BlobsBundleV1
	m := bundleJSON(b)
	if m.Commitments == nil {
		m.Commitments = []Bytes48{}
	}
	if m.Proofs == nil {
		m.Proofs = []Bytes48{}
	}
	if m.Blobs == nil {
		m.Blobs = []Blob{}
	}
	return json.Marshal(m)
}

// SizeSSZ returns the encoded size in bytes.
func (b *BlobsBundleV1) SizeSSZ() int {
	return 3*ssz.BytesPerLengthOffset +
		len(b.Commitments)*48 + len(b.Proofs)*48 + len(b.Blobs)*BlobLength
}

// MarshalSSZ encodes the bundle. All three sequences hold fixed-size
// elements, so the layout is three offset slots followed by each
// sequence's elements back to back. The offsets follow directly from the
// sequence lengths, so this writes into a single allocation without the
// generic encoder; the tests pin both paths to the same bytes.
func (b *BlobsBundleV1) MarshalSSZ() ([]byte, error) {
	buf := make([]byte, b.SizeSSZ())
	commitmentsOff := 3 * ssz.BytesPerLengthOffset
	proofsOff := commitmentsOff + len(b.Commitments)*48
	blobsOff := proofsOff + len(b.Proofs)*48
	binary.LittleEndian.PutUint32(buf[0:], uint32(commitmentsOff))
	binary.LittleEndian.PutUint32(buf[4:], uint32(proofsOff))
	binary.LittleEndian.PutUint32(buf[8:], uint32(blobsOff))
	pos := commitmentsOff
	for i := range b.Commitments {
		pos += copy(buf[pos:], b.Commitments[i][:])
	}
	for i := range b.Proofs {
		pos += copy(buf[pos:], b.Proofs[i][:])
	}
	for i := range b.Blobs {
		pos += copy(buf[pos:], b.Blobs[i][:])
	}
	return buf, nil
}

// UnmarshalSSZ decodes the bundle from buf through the generic two-pass
// decoder.
func (b *BlobsBundleV1) UnmarshalSSZ(buf []byte) error {
	db := ssz.NewDecoderBuilder(buf)
	db.RegisterVariable()
	db.RegisterVariable()
	db.RegisterVariable()
	d, err := db.Build()
	if err != nil {
		return err
	}
	commitments, err := ssz.SplitFixedList(d.Next(), 48)
	if err != nil {
		return err
	}
	proofs, err := ssz.SplitFixedList(d.Next(), 48)
	if err != nil {
		return err
	}
	blobs, err := ssz.SplitFixedList(d.Next(), BlobLength)
	if err != nil {
		return err
	}
	b.Commitments = make([]Bytes48, len(commitments))
	for i, c := range commitments {
		copy(b.Commitments[i][:], c)
	}
	b.Proofs = make([]Bytes48, len(proofs))
	for i, p := range proofs {
		copy(b.Proofs[i][:], p)
	}
	b.Blobs = make([]Blob, len(blobs))
	for i, bl := range blobs {
		copy(b.Blobs[i][:], bl)
	}
	return nil
}
