package crypto

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultKeyCacheSize is the number of peers whose shared keys are kept.
const DefaultKeyCacheSize = 256

// SharedKeyCache keeps precomputed CryptoBoxes for recently seen peers so the
// Curve25519 computation runs once per peer rather than once per packet.
// It is safe for concurrent use.
type SharedKeyCache struct {
	own   *KeyPair
	boxes *lru.Cache[PublicKey, *CryptoBox]
}

// NewSharedKeyCache creates a cache for the given local key pair. A size of
// zero selects DefaultKeyCacheSize.
func NewSharedKeyCache(own *KeyPair, size int) (*SharedKeyCache, error) {
	if own == nil {
		return nil, fmt.Errorf("shared key cache: nil key pair")
	}
	if size == 0 {
		size = DefaultKeyCacheSize
	}

	boxes, err := lru.New[PublicKey, *CryptoBox](size)
	if err != nil {
		return nil, fmt.Errorf("shared key cache: %w", err)
	}

	return &SharedKeyCache{own: own, boxes: boxes}, nil
}

// Box returns the CryptoBox shared with peer, computing it on first use.
// Evicted boxes are left intact because callers may still hold them.
func (c *SharedKeyCache) Box(peer PublicKey) *CryptoBox {
	if b, ok := c.boxes.Get(peer); ok {
		return b
	}

	b := NewCryptoBox(peer, c.own.Secret)
	c.boxes.Add(peer, b)
	return b
}

// PublicKey returns the local public key the cache computes boxes for.
func (c *SharedKeyCache) PublicKey() PublicKey {
	return c.own.Public
}

// Len returns the number of cached boxes.
func (c *SharedKeyCache) Len() int {
	return c.boxes.Len()
}

// Purge drops every cached box.
func (c *SharedKeyCache) Purge() {
	c.boxes.Purge()
}
