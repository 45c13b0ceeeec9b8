// Package clientdata provides caching for external API client
// responses. Entries are stored as msgpack blobs with expiration
// timestamps for cache-first behavior.
package clientdata

import (
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// validBuckets is a set for O(1) bucket name validation.
var validBuckets = func() map[string]bool {
	m := make(map[string]bool, len(Buckets))
	for _, b := range Buckets {
		m[b] = true
	}
	return m
}()

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache holds encoded client responses keyed by bucket and key.
type Cache struct {
	mu      sync.RWMutex
	buckets map[string]map[string]entry
}

// NewCache creates an empty cache with all known buckets.
func NewCache() *Cache {
	buckets := make(map[string]map[string]entry, len(Buckets))
	for _, b := range Buckets {
		buckets[b] = make(map[string]entry)
	}
	return &Cache{buckets: buckets}
}

func validateBucket(bucket string) error {
	if !validBuckets[bucket] {
		return fmt.Errorf("invalid bucket name: %s", bucket)
	}
	return nil
}

// Store saves data with expiration = now + ttl, replacing any existing
// entry under the key.
func (c *Cache) Store(bucket, key string, data interface{}, ttl time.Duration) error {
	if err := validateBucket(bucket); err != nil {
		return err
	}

	encoded, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.buckets[bucket][key] = entry{
		data:      encoded,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// GetIfFresh decodes into out only if the entry has not expired.
// Returns false if the key is absent or stale. Use Get to retrieve
// stale data as a fallback when API calls fail.
func (c *Cache) GetIfFresh(bucket, key string, out interface{}) (bool, error) {
	if err := validateBucket(bucket); err != nil {
		return false, err
	}

	c.mu.RLock()
	e, ok := c.buckets[bucket][key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return false, nil
	}

	if err := msgpack.Unmarshal(e.data, out); err != nil {
		return false, fmt.Errorf("failed to decode data from %s: %w", bucket, err)
	}
	return true, nil
}

// Get decodes into out regardless of expiration status. Stale data is
// better than no data when the upstream is down.
func (c *Cache) Get(bucket, key string, out interface{}) (bool, error) {
	if err := validateBucket(bucket); err != nil {
		return false, err
	}

	c.mu.RLock()
	e, ok := c.buckets[bucket][key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if err := msgpack.Unmarshal(e.data, out); err != nil {
		return false, fmt.Errorf("failed to decode data from %s: %w", bucket, err)
	}
	return true, nil
}

// Delete removes a specific entry.
func (c *Cache) Delete(bucket, key string) error {
	if err := validateBucket(bucket); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.buckets[bucket], key)
	return nil
}

// DeleteExpired removes stale entries from one bucket and returns the
// count removed.
func (c *Cache) DeleteExpired(bucket string) (int, error) {
	if err := validateBucket(bucket); err != nil {
		return 0, err
	}

	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted := 0
	for key, e := range c.buckets[bucket] {
		if now.After(e.expiresAt) {
			delete(c.buckets[bucket], key)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteAllExpired removes stale entries from every bucket. Returns a
// map of bucket name to number of entries deleted.
func (c *Cache) DeleteAllExpired() (map[string]int, error) {
	results := make(map[string]int)
	for _, bucket := range Buckets {
		deleted, err := c.DeleteExpired(bucket)
		if err != nil {
			return results, err
		}
		results[bucket] = deleted
	}
	return results, nil
}
