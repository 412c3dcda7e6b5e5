package kvs

import (
	"time"

	gocache "github.com/pmylund/go-cache"
)

// MemoryKeyValueStore is an in-memory KeyValueStore. Expired entries are
// swept every cleanupInterval, so the effective TTL of a key can exceed the
// requested TTL by up to one interval.
type MemoryKeyValueStore struct {
	cache           *gocache.Cache
	cleanupInterval time.Duration
}

// NewDefaultMemoryStore creates a MemoryKeyValueStore with a 30s sweep.
func NewDefaultMemoryStore() KeyValueStore {
	return NewMemoryKeyValueStore(30 * time.Second)
}

// NewMemoryKeyValueStore creates a MemoryKeyValueStore.
func NewMemoryKeyValueStore(cleanupInterval time.Duration) *MemoryKeyValueStore {
	return &MemoryKeyValueStore{
		cache:           gocache.New(gocache.NoExpiration, cleanupInterval),
		cleanupInterval: cleanupInterval,
	}
}

// Set sets a key with a time-to-live. Use TTLNever to never expire.
func (store *MemoryKeyValueStore) Set(key, value string, ttl time.Duration) error {
	if ttl != TTLNever && ttl < store.cleanupInterval {
		logger.Warn("TTL is shorter than the store's cleanup interval", "key", key, "ttl", ttl)
	}
	store.cache.Set(key, value, ttl)
	return nil
}

// Get retrieves the value for key, or ErrNotFound.
func (store *MemoryKeyValueStore) Get(key string) (string, error) {
	val, found := store.cache.Get(key)
	if !found {
		return "", ErrNotFound
	}
	return val.(string), nil
}

// Del deletes a key.
func (store *MemoryKeyValueStore) Del(key string) error {
	store.cache.Delete(key)
	return nil
}

// FlushDB removes all keys.
func (store *MemoryKeyValueStore) FlushDB() error {
	store.cache.Flush()
	return nil
}
