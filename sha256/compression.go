package sha256

// State is the eight-word intermediate hash value H(i).
type State [8]uint32

// Compress folds one message schedule into s and returns the new state. s is
// taken by value, so blocks of one message are chained by feeding each result
// into the next call, in block order.
func Compress(s State, w *Schedule) State {
	a, b, c, d, e, f, g, h := s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]

	for i := 0; i < scheduleLength; i++ {
		t1 := add32(add32(add32(add32(h, bigSigma1(e)), ch(e, f, g)), K[i]), w[i])
		t2 := add32(bigSigma0(a), maj(a, b, c))

		h = g
		g = f
		f = e
		e = add32(d, t1)
		d = c
		c = b
		b = a
		a = add32(t1, t2)
	}

	// Davies-Meyer feed-forward.
	s[0] = add32(s[0], a)
	s[1] = add32(s[1], b)
	s[2] = add32(s[2], c)
	s[3] = add32(s[3], d)
	s[4] = add32(s[4], e)
	s[5] = add32(s[5], f)
	s[6] = add32(s[6], g)
	s[7] = add32(s[7], h)
	return s
}

// CompressBlocks runs every block through Expand and Compress starting from
// InitialState.
func CompressBlocks(blocks []Block) State {
	s := InitialState
	for _, b := range blocks {
		w := Expand(b)
		s = Compress(s, &w)
	}
	return s
}
