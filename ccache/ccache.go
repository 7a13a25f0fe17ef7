// Package ccache provides a concurrency safe LRU memo of SHA-256 digests.
package ccache

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"massnet.org/hashcore/sha256"
)

// DigestCache maps an input value to its digest, evicting the least recently
// used entry once maxEntries is reached.
type DigestCache struct {
	l     sync.Mutex
	cache *lru.Cache
}

// NewDigestCache creates a cache holding at most maxEntries digests. Zero
// means no limit.
func NewDigestCache(maxEntries int) *DigestCache {
	return &DigestCache{
		cache: lru.New(maxEntries),
	}
}

// Get returns the digest cached for key and marks it recently used.
func (c *DigestCache) Get(key sha256.Digest) (sha256.Digest, bool) {
	c.l.Lock()
	defer c.l.Unlock()
	v, ok := c.cache.Get(key)
	if !ok {
		return sha256.Digest{}, false
	}
	return v.(sha256.Digest), true
}

// Add caches value as the digest of key.
func (c *DigestCache) Add(key, value sha256.Digest) {
	c.l.Lock()
	c.cache.Add(key, value)
	c.l.Unlock()
}

// Sum256 returns sha256.Sum256(key[:]), computing it only on a cache miss.
func (c *DigestCache) Sum256(key sha256.Digest) sha256.Digest {
	if d, ok := c.Get(key); ok {
		return d
	}
	d := sha256.Sum256(key[:])
	c.Add(key, d)
	return d
}

// Len returns the number of cached digests.
func (c *DigestCache) Len() int {
	c.l.Lock()
	defer c.l.Unlock()
	return c.cache.Len()
}

// Clear drops every cached digest.
func (c *DigestCache) Clear() {
	c.l.Lock()
	c.cache.Clear()
	c.l.Unlock()
}
