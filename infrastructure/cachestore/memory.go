package cachestore

import (
	"sync"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

// MemoryStore guarda o cache apenas em memória. Útil em testes e como
// modo degradado quando não há onde persistir.
type MemoryStore struct {
	mu    sync.Mutex
	cache *domain.SalesCache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (*domain.SalesCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		return nil, nil
	}

	return &domain.SalesCache{
		LastUpdateDateKey: s.cache.LastUpdateDateKey,
		Buckets:           s.cache.Buckets.Clone(),
	}, nil
}

func (s *MemoryStore) Set(cache *domain.SalesCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = &domain.SalesCache{
		LastUpdateDateKey: cache.LastUpdateDateKey,
		Buckets:           cache.Buckets.Clone(),
	}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = nil
	return nil
}
