package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, ok := store.Get("lessons")
	assert.False(t, ok)

	store.Set("lessons", []byte(`{"lessons":[]}`), time.Minute)
	got, ok := store.Get("lessons")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"lessons":[]}`), got)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	store.Set("lessons", []byte("x"), time.Minute)

	store.Delete("lessons")
	_, ok := store.Get("lessons")
	assert.False(t, ok)

	// deleting a missing key is a no-op
	store.Delete("lessons")
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	store.Set("lessons", []byte("x"), 20*time.Millisecond)

	_, ok := store.Get("lessons")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok = store.Get("lessons")
	assert.False(t, ok)
}

func TestMemoryStoreDefaultTTL(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	store.Set("lessons", []byte("x"), 0)

	time.Sleep(50 * time.Millisecond)
	_, ok := store.Get("lessons")
	assert.False(t, ok)
}
