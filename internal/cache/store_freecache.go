package cache

import (
	"strings"

	"github.com/coocood/freecache"
)

var _ Store = (*FreecacheStore)(nil)

// FreecacheStore is a capacity-bounded in-memory Store. Like the browser
// storage it stands in for, it may drop entries under memory pressure;
// the Cache treats an evicted entry as a plain miss.
type FreecacheStore struct {
	cache *freecache.Cache
}

func NewFreecacheStore(sizeBytes int) *FreecacheStore {
	return &FreecacheStore{
		cache: freecache.NewCache(sizeBytes),
	}
}

func (s *FreecacheStore) Get(key string) (string, bool, error) {
	value, err := s.cache.Get([]byte(key))
	if err != nil {
		// freecache reports both absence and expiry as ErrNotFound
		return "", false, nil
	}
	return string(value), true, nil
}

func (s *FreecacheStore) Set(key, value string) error {
	// expiry is tracked in the encoded envelope, not delegated to freecache
	return s.cache.Set([]byte(key), []byte(value), 0)
}

func (s *FreecacheStore) Delete(key string) error {
	s.cache.Del([]byte(key))
	return nil
}

func (s *FreecacheStore) Keys(prefix string) ([]string, error) {
	var keys []string
	it := s.cache.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		key := string(entry.Key)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
