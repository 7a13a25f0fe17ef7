package sha256

import "math/bits"

// Word operations from FIPS 180-4 section 4.1.2. All arithmetic is on uint32
// and wraps modulo 2^32.

func add32(x, y uint32) uint32 {
	return x + y
}

// rotr rotates x right by n mod 32 bits.
func rotr(x uint32, n uint) uint32 {
	return bits.RotateLeft32(x, -int(n%32))
}

// rotl rotates x left by n mod 32 bits.
func rotl(x uint32, n uint) uint32 {
	return bits.RotateLeft32(x, int(n%32))
}

// shr is a logical (zero filling) right shift.
func shr(x uint32, n uint) uint32 {
	return x >> n
}

func ch(x, y, z uint32) uint32 {
	return (x & y) ^ (^x & z)
}

func maj(x, y, z uint32) uint32 {
	return (x & y) ^ (x & z) ^ (y & z)
}

func bigSigma0(x uint32) uint32 {
	return rotr(x, 2) ^ rotr(x, 13) ^ rotr(x, 22)
}

func bigSigma1(x uint32) uint32 {
	return rotr(x, 6) ^ rotr(x, 11) ^ rotr(x, 25)
}

func smallSigma0(x uint32) uint32 {
	return rotr(x, 7) ^ rotr(x, 18) ^ shr(x, 3)
}

func smallSigma1(x uint32) uint32 {
	return rotr(x, 17) ^ rotr(x, 19) ^ shr(x, 10)
}
