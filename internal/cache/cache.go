package cache

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
)

// Cache is an obfuscated key-value cache over a persistent Store. Values
// are stored JSON-encoded behind a reversible text transform, so cached
// app data is not casually readable in the backing store.
//
// The cache is an optimization, never a correctness dependency: every
// failure (storage error, tampered entry, elapsed TTL) degrades to a miss
// and callers are expected to fall back to the authoritative remote API.
type Cache struct {
	store   Store
	nowFunc func() time.Time
}

type Option func(*Cache)

// WithNowFunc injects the clock used for TTL checks.
func WithNowFunc(nowFunc func() time.Time) Option {
	return func(c *Cache) {
		c.nowFunc = nowFunc
	}
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores a value without expiry. Errors are logged and swallowed.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, 0)
}

// SetWithTTL stores a value that Get will treat as absent once ttl
// elapses. A non-positive ttl means no expiry.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.nowFunc().Add(ttl).UnixMilli()
	}

	encoded, err := encode(value, expiresAt)
	if err != nil {
		log.Errorf("cache: encode value for key [%s]: %s", key, err)
		return
	}

	if err := c.store.Set(KeyPrefix+key, encoded); err != nil {
		log.Errorf("cache: store value for key [%s]: %s", key, err)
	}
}

// Get loads the value stored under key into dst and reports whether it
// was found. Corrupted, foreign and expired entries all read as misses.
// Expired entries are ignored, not deleted; the next Set overwrites them.
func (c *Cache) Get(key string, dst any) bool {
	raw, found, err := c.store.Get(KeyPrefix + key)
	if err != nil {
		log.Errorf("cache: read key [%s]: %s", key, err)
		return false
	}
	if !found {
		return false
	}

	payload, expiresAt, err := decode(raw)
	if err != nil {
		log.Tracef("cache: dropping unreadable entry [%s]: %s", key, err)
		return false
	}

	if expiresAt > 0 && c.nowFunc().UnixMilli() > expiresAt {
		log.Tracef("cache: entry [%s] expired", key)
		return false
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		log.Errorf("cache: unmarshal entry [%s]: %s", key, err)
		return false
	}

	return true
}

// Remove deletes the entry for key. Removing an absent key is a no-op.
func (c *Cache) Remove(key string) {
	if err := c.store.Delete(KeyPrefix + key); err != nil {
		log.Errorf("cache: remove key [%s]: %s", key, err)
	}
}

// Clear removes every app cache entry, leaving any unrelated data in the
// backing store untouched.
func (c *Cache) Clear() {
	keys, err := c.store.Keys(KeyPrefix)
	if err != nil {
		log.Errorf("cache: list keys for clear: %s", err)
		return
	}
	for _, key := range keys {
		if err := c.store.Delete(key); err != nil {
			log.Errorf("cache: clear key [%s]: %s", key, err)
		}
	}
}
