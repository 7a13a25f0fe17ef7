// Package merkle computes the root of a binary SHA-256 Merkle tree over an
// ordered sequence of 32-byte items.
//
// An odd number of items is made even by repeating the last raw item before
// hashing, and every odd layer above it repeats its last node. Parents are
// sha256(left || right) with no prefix or delimiter, paired left to right.
package merkle

import (
	"errors"

	"massnet.org/hashcore/sha256"
)

// ErrEmptyItems is returned when a root is requested for zero items.
var ErrEmptyItems = errors.New("merkle: empty item list")

// Root returns the Merkle root of items. A single item x yields
// sha256(sha256(x) || sha256(x)).
func Root(items []sha256.Digest) (sha256.Digest, error) {
	if len(items) == 0 {
		return sha256.Digest{}, ErrEmptyItems
	}
	return reduce(HashLeaves(items)), nil
}

// Layers returns every layer of the tree, leaves first and the root layer
// last.
func Layers(items []sha256.Digest) ([][]sha256.Digest, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	layers := [][]sha256.Digest{HashLeaves(items)}
	for nodes := layers[0]; len(nodes) > 1; {
		nodes = HashLayer(nodes)
		layers = append(layers, nodes)
	}
	return layers, nil
}

// LoadItems returns a copy of items with the last item repeated when the
// count is odd.
func LoadItems(items []sha256.Digest) []sha256.Digest {
	loaded := make([]sha256.Digest, len(items), len(items)+1)
	copy(loaded, items)
	if len(loaded)%2 != 0 {
		loaded = append(loaded, loaded[len(loaded)-1])
	}
	return loaded
}

// HashLeaves loads items and hashes each of them, keeping the input order.
func HashLeaves(items []sha256.Digest) []sha256.Digest {
	leaves := LoadItems(items)
	for i := range leaves {
		leaves[i] = sha256.Sum256(leaves[i][:])
	}
	return leaves
}

// HashBranch returns the parent node sha256(left || right).
func HashBranch(left, right sha256.Digest) sha256.Digest {
	var buf [2 * sha256.Size]byte
	copy(buf[:sha256.Size], left[:])
	copy(buf[sha256.Size:], right[:])
	return sha256.Sum256(buf[:])
}

// HashLayer returns the parents of nodes, repeating the last node first when
// the count is odd. nodes is not modified.
func HashLayer(nodes []sha256.Digest) []sha256.Digest {
	parents := make([]sha256.Digest, (len(nodes)+1)/2)
	for i := range parents {
		parents[i] = HashBranch(pair(nodes, i))
	}
	return parents
}

// pair returns the i-th (left, right) pair of nodes, reusing the last node as
// its own sibling on an odd layer.
func pair(nodes []sha256.Digest, i int) (sha256.Digest, sha256.Digest) {
	left := nodes[2*i]
	if 2*i+1 < len(nodes) {
		return left, nodes[2*i+1]
	}
	return left, left
}

func reduce(nodes []sha256.Digest) sha256.Digest {
	for len(nodes) > 1 {
		nodes = HashLayer(nodes)
	}
	return nodes[0]
}
