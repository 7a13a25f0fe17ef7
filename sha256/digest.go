package sha256

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// ErrInvalidDigestLength indicates the length of a hex digest is invalid.
var ErrInvalidDigestLength = errors.New("invalid length for digest")

// Digest represents a 32-byte SHA-256 digest. Since Digest implements
// fmt.Stringer, format it with %s or %v; %x on a Digest hex-encodes the hex
// string, use %x on d[:] for the raw bytes.
type Digest [Size]byte

// Digest serializes s, each word big-endian.
func (s State) Digest() Digest {
	var d Digest
	for i, word := range s {
		binary.BigEndian.PutUint32(d[i*4:], word)
	}
	return d
}

// Bytes returns a copy of the digest as a byte slice.
func (d Digest) Bytes() []byte {
	bs := make([]byte, Size)
	copy(bs, d[:])
	return bs
}

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// DecodeStringToDigest decodes a string value to Digest,
// the length of string value must be 64.
func DecodeStringToDigest(str string) (Digest, error) {
	if len(str) != Size*2 {
		return Digest{}, ErrInvalidDigestLength
	}
	bs, err := hex.DecodeString(str)
	if err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], bs)

	return d, nil
}
