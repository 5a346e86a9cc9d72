package localstore

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an ephemeral Store used by tests and the --ephemeral
// client mode. Entries never expire.
type MemoryStore struct {
	store *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	v, ok := s.store.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.store.Set(key, value, gocache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.store.Delete(key)
	return nil
}

func (s *MemoryStore) Flush() error {
	s.store.Flush()
	return nil
}
