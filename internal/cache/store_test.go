package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	c := New(store)
	c.Set("weight_records", []float64{82.1, 81.7})

	// a fresh store over the same file sees the entry
	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	var dst []float64
	require.True(t, New(reopened).Get("weight_records", &dst))
	assert.Equal(t, []float64{82.1, 81.7}, dst)
}

func TestFileStore_CorruptedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("][ not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	keys, err := store.Keys("")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_DeleteAndKeys(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "cache.json"))
	require.NoError(t, err)

	require.NoError(t, store.Set("fitlife_secure_a", "1"))
	require.NoError(t, store.Set("fitlife_secure_b", "2"))
	require.NoError(t, store.Set("other", "3"))

	keys, err := store.Keys("fitlife_secure_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fitlife_secure_a", "fitlife_secure_b"}, keys)

	require.NoError(t, store.Delete("fitlife_secure_a"))
	require.NoError(t, store.Delete("fitlife_secure_a")) // idempotent

	_, found, err := store.Get("fitlife_secure_a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFreecacheStore(t *testing.T) {
	store := NewFreecacheStore(1024 * 1024)
	c := New(store)

	c.Set("summary", map[string]int{"totalRecords": 12})

	var dst map[string]int
	require.True(t, c.Get("summary", &dst))
	assert.Equal(t, 12, dst["totalRecords"])

	c.Remove("summary")
	dst = nil
	assert.False(t, c.Get("summary", &dst))
}

func TestRedisStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)
	c := New(store)

	encoded, err := encode("cached-value", 0)
	require.NoError(t, err)

	key := KeyPrefix + "profile"

	mock.ExpectSet(key, encoded, 0).SetVal("OK")
	c.Set("profile", "cached-value")

	mock.ExpectGet(key).SetVal(encoded)
	var dst string
	require.True(t, c.Get("profile", &dst))
	assert.Equal(t, "cached-value", dst)

	mock.ExpectGet(key).RedisNil()
	dst = ""
	assert.False(t, c.Get("profile", &dst))

	mock.ExpectDel(key).SetVal(1)
	c.Remove("profile")

	mock.ExpectKeys(KeyPrefix + "*").SetVal([]string{key})
	mock.ExpectDel(key).SetVal(1)
	c.Clear()

	assert.NoError(t, mock.ExpectationsWereMet())
}
