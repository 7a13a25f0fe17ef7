package sha256

// Sum256 returns the SHA-256 digest of msg.
//
// It panics with ErrMessageTooLong if msg is longer than MaxMessageSize.
func Sum256(msg []byte) Digest {
	padded, err := Pad(msg)
	if err != nil {
		panic(err)
	}
	return CompressBlocks(Parse(padded)).Digest()
}

// SumHex returns the SHA-256 digest of msg as a 64-character lowercase hex
// string.
func SumHex(msg []byte) string {
	return Sum256(msg).String()
}

// DoubleSum256 returns sha256(sha256(msg)).
func DoubleSum256(msg []byte) Digest {
	d := Sum256(msg)
	return Sum256(d[:])
}
