// Package hmac implements HMAC-SHA256 as defined in RFC 2104 on top of the
// sha256 package of this module.
package hmac

import (
	"crypto/subtle"

	"massnet.org/hashcore/sha256"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// Tag is a 32-byte HMAC-SHA256 authentication tag.
type Tag = sha256.Digest

// NormalizeKey returns key as exactly one block of key material. Keys longer
// than sha256.BlockSize are replaced by their digest, shorter keys are padded
// with zero bytes. key is never modified.
func NormalizeKey(key []byte) [sha256.BlockSize]byte {
	var k [sha256.BlockSize]byte
	if len(key) > sha256.BlockSize {
		d := sha256.Sum256(key)
		copy(k[:], d[:])
	} else {
		copy(k[:], key)
	}
	return k
}

// Sum returns HMAC-SHA256(key, msg), i.e.
// H((K ^ opad) || H((K ^ ipad) || msg)). Any key length, including zero,
// is valid.
func Sum(key, msg []byte) Tag {
	k := NormalizeKey(key)

	inner := make([]byte, sha256.BlockSize, sha256.BlockSize+len(msg))
	for i := range k {
		inner[i] = k[i] ^ ipad
	}
	inner = append(inner, msg...)
	innerSum := sha256.Sum256(inner)

	outer := make([]byte, sha256.BlockSize, sha256.BlockSize+sha256.Size)
	for i := range k {
		outer[i] = k[i] ^ opad
	}
	outer = append(outer, innerSum[:]...)
	return sha256.Sum256(outer)
}

// Verify reports whether tag is the HMAC-SHA256 of msg under key. The
// comparison does not short-circuit on the first differing byte.
func Verify(key, msg []byte, tag Tag) bool {
	expected := Sum(key, msg)
	return subtle.ConstantTimeCompare(expected[:], tag[:]) == 1
}
