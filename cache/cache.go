package cache

import "time"

// Store is a process-wide key/value cache with per-entry TTL. It is a
// pure optimization: implementations never fail a read path, a broken
// or absent cache just means every lookup misses.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
