package sha256

import (
	"encoding/binary"
	"fmt"
)

// Block is one 512-bit message block viewed as sixteen big-endian words.
type Block [wordsPerBlock]uint32

// ParseBlock reads a single block from the first BlockSize bytes of p.
func ParseBlock(p []byte) Block {
	var b Block
	for i := range b {
		b[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	return b
}

// Parse splits a padded message into blocks. It panics if the length of
// padded is not a multiple of BlockSize, which Pad never produces.
func Parse(padded []byte) []Block {
	if len(padded)%BlockSize != 0 {
		panic(fmt.Sprintf("sha256: parse of %d bytes, not a multiple of %d", len(padded), BlockSize))
	}

	blocks := make([]Block, 0, len(padded)/BlockSize)
	for p := padded; len(p) > 0; p = p[BlockSize:] {
		blocks = append(blocks, ParseBlock(p))
	}
	return blocks
}
