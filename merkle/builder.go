package merkle

import (
	"github.com/pkg/errors"
	"massnet.org/hashcore/ccache"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/sha256"
	"massnet.org/hashcore/worker"
)

// Builder computes the same roots as Root, hashing leaves and large layers on
// a worker pool. A Builder is safe for concurrent use until Release.
type Builder struct {
	workers   int
	cacheSize int
	pool      *worker.Pool
	cache     *ccache.DigestCache
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets the pool size, non-positive means worker.DefaultSize.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithLeafCache memoizes up to n leaf hashes, so items that repeat across
// calls or inside one call are hashed once.
func WithLeafCache(n int) Option {
	return func(b *Builder) {
		b.cacheSize = n
	}
}

// NewBuilder creates a Builder and starts its worker pool. Release must be
// called once the Builder is no longer used.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}

	pool, err := worker.New(b.workers)
	if err != nil {
		return nil, errors.Wrap(err, "create merkle worker pool")
	}
	b.pool = pool
	if b.cacheSize > 0 {
		b.cache = ccache.NewDigestCache(b.cacheSize)
	}
	return b, nil
}

// Root returns the Merkle root of items.
func (b *Builder) Root(items []sha256.Digest) (sha256.Digest, error) {
	if len(items) == 0 {
		return sha256.Digest{}, ErrEmptyItems
	}

	nodes := LoadItems(items)
	if err := b.pool.Map(len(nodes), func(i int) {
		nodes[i] = b.hashLeaf(nodes[i])
	}); err != nil {
		return sha256.Digest{}, errors.Wrap(err, "hash merkle leaves")
	}

	for len(nodes) > 1 {
		if len(nodes) < 2*b.pool.Size() {
			nodes = HashLayer(nodes)
			continue
		}
		children := nodes
		parents := make([]sha256.Digest, (len(children)+1)/2)
		if err := b.pool.Map(len(parents), func(i int) {
			parents[i] = HashBranch(pair(children, i))
		}); err != nil {
			return sha256.Digest{}, errors.Wrap(err, "hash merkle layer")
		}
		nodes = parents
	}

	logging.VPrint(logging.DEBUG, "merkle root computed", logging.LogFormat{
		"items": len(items),
		"root":  nodes[0],
	})
	return nodes[0], nil
}

// Release stops the worker pool and drops the leaf cache.
func (b *Builder) Release() {
	b.pool.Release()
	if b.cache != nil {
		b.cache.Clear()
	}
}

func (b *Builder) hashLeaf(item sha256.Digest) sha256.Digest {
	if b.cache == nil {
		return sha256.Sum256(item[:])
	}
	return b.cache.Sum256(item)
}
