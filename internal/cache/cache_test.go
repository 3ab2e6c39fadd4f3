package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nutritionFacts struct {
	Name     string            `json:"name"`
	Calories float64           `json:"calories"`
	Macros   map[string]string `json:"macros"`
	Tags     []string          `json:"tags"`
	Verified bool              `json:"verified"`
}

func TestCache_RoundTrip(t *testing.T) {
	c := New(NewMemoryStore())

	original := nutritionFacts{
		Name:     "Bananenbrot 🍌 — with ümläuts and 日本語",
		Calories: 356.5,
		Macros: map[string]string{
			"protein": "4.3g",
			"fat":     "12.1g",
		},
		Tags:     []string{"snack", "homemade"},
		Verified: true,
	}
	c.Set("food_analysis", original)

	var got nutritionFacts
	require.True(t, c.Get("food_analysis", &got))
	assert.Equal(t, original, got)

	// scalars and slices round-trip too
	c.Set("streak_days", 42)
	var gotInt int
	require.True(t, c.Get("streak_days", &gotInt))
	assert.Equal(t, 42, gotInt)

	c.Set("weights", []float64{81.5, 81.1, 80.7})
	var gotWeights []float64
	require.True(t, c.Get("weights", &gotWeights))
	assert.Equal(t, []float64{81.5, 81.1, 80.7}, gotWeights)
}

func TestCache_MissOnAbsentKey(t *testing.T) {
	c := New(NewMemoryStore())
	var dst string
	assert.False(t, c.Get("never-set", &dst))
}

func TestCache_TamperedEntryIsAMiss(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)

	c.Set("profile", map[string]string{"name": "Mila"})

	// overwrite the stored value with garbage directly in the store
	require.NoError(t, store.Set(KeyPrefix+"profile", "not-base64-at-all!!"))
	var dst map[string]string
	assert.False(t, c.Get("profile", &dst))

	// valid base64, but no salt marker inside (foreign data)
	require.NoError(t, store.Set(KeyPrefix+"profile", "Zm9yZWlnbi1kYXRh"))
	assert.False(t, c.Get("profile", &dst))
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := New(NewMemoryStore(), WithNowFunc(func() time.Time { return now }))

	c.SetWithTTL("records", []string{"a", "b"}, time.Minute)

	var dst []string
	require.True(t, c.Get("records", &dst))
	assert.Equal(t, []string{"a", "b"}, dst)

	// one second before expiry: still there
	now = now.Add(59 * time.Second)
	dst = nil
	require.True(t, c.Get("records", &dst))

	// past expiry: logically evicted
	now = now.Add(2 * time.Second)
	dst = nil
	assert.False(t, c.Get("records", &dst))

	// an entry without TTL never expires
	c.Set("eternal", "value")
	now = now.Add(24 * 365 * time.Hour)
	var eternal string
	require.True(t, c.Get("eternal", &eternal))
	assert.Equal(t, "value", eternal)
}

func TestCache_RemoveIsIdempotent(t *testing.T) {
	c := New(NewMemoryStore())

	c.Set("goals", 3)
	c.Remove("goals")
	c.Remove("goals") // second remove no-ops

	var dst int
	assert.False(t, c.Get("goals", &dst))
}

func TestCache_ClearLeavesForeignKeysAlone(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)

	c.Set("routines", []string{"push day"})
	c.Set("goals", []string{"10k steps"})
	require.NoError(t, store.Set("unrelated_app_data", "keep me"))

	c.Clear()

	var dst []string
	assert.False(t, c.Get("routines", &dst))
	assert.False(t, c.Get("goals", &dst))

	value, found, err := store.Get("unrelated_app_data")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "keep me", value)
}

func TestCache_EncodeFailureIsANoOp(t *testing.T) {
	c := New(NewMemoryStore())

	// channels are not JSON-serializable; Set must log and swallow
	c.Set("bad", make(chan int))

	var dst any
	assert.False(t, c.Get("bad", &dst))
}
