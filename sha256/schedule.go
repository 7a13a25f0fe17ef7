package sha256

// Schedule is the 64-word message schedule W derived from one block.
type Schedule [scheduleLength]uint32

// Expand derives the message schedule of b. The first sixteen words are the
// block itself, every later word is
// σ1(W[t-2]) + W[t-7] + σ0(W[t-15]) + W[t-16] modulo 2^32.
func Expand(b Block) Schedule {
	var w Schedule
	copy(w[:], b[:])
	for t := wordsPerBlock; t < scheduleLength; t++ {
		w[t] = add32(add32(smallSigma1(w[t-2]), w[t-7]), add32(smallSigma0(w[t-15]), w[t-16]))
	}
	return w
}
