package sha256

import (
	"encoding/binary"
	"errors"
)

// ErrMessageTooLong indicates the message bit length overflows the 64-bit
// length field.
var ErrMessageTooLong = errors.New("message too long for sha256")

// PaddedLen returns the length of the padded form of an n-byte message: the
// smallest multiple of BlockSize that is at least n+9.
func PaddedLen(n uint64) uint64 {
	return (n + 1 + lengthFieldSize + BlockSize - 1) / BlockSize * BlockSize
}

// Pad appends the SHA-256 padding to a copy of msg: a single 0x80 byte, zero
// bytes until the length is 56 mod 64, and the original length in bits as a
// big-endian uint64. msg itself is not modified.
func Pad(msg []byte) ([]byte, error) {
	if uint64(len(msg)) > MaxMessageSize {
		return nil, ErrMessageTooLong
	}

	padded := make([]byte, len(msg), PaddedLen(uint64(len(msg))))
	copy(padded, msg)

	padded = append(padded, 0x80)
	for len(padded)%BlockSize != lengthFieldStart {
		padded = append(padded, 0x00)
	}

	var length [lengthFieldSize]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(msg))*8)
	return append(padded, length[:]...), nil
}
