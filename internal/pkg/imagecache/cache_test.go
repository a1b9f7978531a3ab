package imagecache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	cache := New(4, time.Hour, nil)
	cache.Put("k1", "url1")

	got, ok := cache.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "url1", got)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestCacheOverwriteSameKey(t *testing.T) {
	cache := New(4, time.Hour, nil)
	cache.Put("k1", "old")
	cache.Put("k1", "new")

	got, ok := cache.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheExpiresEntries(t *testing.T) {
	cache := New(4, time.Minute, nil)
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Put("k1", "url1")

	current = current.Add(30 * time.Second)
	_, ok := cache.Get("k1")
	assert.True(t, ok)

	current = current.Add(31 * time.Second)
	_, ok = cache.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len(), "expired entry is dropped on access")
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	cache := New(4, 0, nil)
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Put("k1", "url1")
	current = current.Add(1000 * time.Hour)

	_, ok := cache.Get("k1")
	assert.True(t, ok)
}

func TestCacheFIFOEviction(t *testing.T) {
	cache := New(2, time.Hour, NewFIFO())
	cache.Put("a", "1")
	cache.Put("b", "2")

	// Access does not refresh FIFO order.
	_, _ = cache.Get("a")
	cache.Put("c", "3")

	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest insert is evicted regardless of access")
	_, ok = cache.Get("b")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestCacheLRUEviction(t *testing.T) {
	cache := New(2, time.Hour, NewLRU())
	cache.Put("a", "1")
	cache.Put("b", "2")

	// Access refreshes recency, so b becomes the victim.
	_, _ = cache.Get("a")
	cache.Put("c", "3")

	_, ok := cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestCacheCapacityFloor(t *testing.T) {
	cache := New(0, time.Hour, nil)
	cache.Put("a", "1")
	cache.Put("b", "2")
	assert.Equal(t, 1, cache.Len())
}
