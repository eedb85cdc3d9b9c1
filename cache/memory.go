package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns an in-process Store backed by go-cache.
// defaultTTL applies when Set is called with ttl <= 0.
func NewMemoryStore(defaultTTL time.Duration) Store {
	return &memoryStore{
		c: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (s *memoryStore) Get(key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (s *memoryStore) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	s.c.Set(key, value, ttl)
}

func (s *memoryStore) Delete(key string) {
	s.c.Delete(key)
}
