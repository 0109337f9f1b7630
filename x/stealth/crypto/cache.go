package crypto

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SecretCache is a bounded LRU cache of agreed shared secrets keyed by the
// peer public key and an identifier of the own private key. It is owned by the caller and
// passed to the keeper explicitly. A nil *SecretCache is a valid, disabled
// cache.
type SecretCache struct {
	entries *lru.Cache[string, string]
}

// NewSecretCache creates a cache holding at most size secrets
func NewSecretCache(size int) (*SecretCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret cache size must be positive, got %d", size)
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &SecretCache{entries: entries}, nil
}

func secretCacheKey(peerPublicKey, ownKeyID string) string {
	return peerPublicKey + "\x00" + ownKeyID
}

// Get returns the cached secret for the key pair combination
func (c *SecretCache) Get(peerPublicKey, ownKeyID string) (string, bool) {
	if c == nil || ownKeyID == "" {
		return "", false
	}
	return c.entries.Get(secretCacheKey(peerPublicKey, ownKeyID))
}

// Add caches a secret, evicting the least recently used entry when full
func (c *SecretCache) Add(peerPublicKey, ownKeyID, secret string) {
	if c == nil || ownKeyID == "" || secret == "" {
		return
	}
	c.entries.Add(secretCacheKey(peerPublicKey, ownKeyID), secret)
}

// Len returns the number of cached secrets
func (c *SecretCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Clear drops every cached secret
func (c *SecretCache) Clear() {
	if c == nil {
		return
	}
	c.entries.Purge()
}
