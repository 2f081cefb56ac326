package storage

import (
	"sync"
	"time"
)

// MemoryStorage - universal in-memory object storage with last-access
// tracking, so idle entries (viewer sessions mostly) can be reaped.
// K - key type, V - stored object type
type MemoryStorage[K comparable, V any] struct {
	data       map[K]V
	mutex      sync.RWMutex
	lastAccess map[K]time.Time
}

// NewMemoryStorage creates a new storage
func NewMemoryStorage[K comparable, V any]() *MemoryStorage[K, V] {
	return &MemoryStorage[K, V]{
		data:       make(map[K]V),
		lastAccess: make(map[K]time.Time),
	}
}

// Set adds or updates an object
func (s *MemoryStorage[K, V]) Set(key K, value V) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = value
	s.lastAccess[key] = time.Now()
}

// Get returns an object by key and refreshes its last-access time
func (s *MemoryStorage[K, V]) Get(key K) (V, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	value, exists := s.data[key]
	if exists {
		s.lastAccess[key] = time.Now()
	}
	return value, exists
}

// Touch refreshes the last-access time without reading the value
func (s *MemoryStorage[K, V]) Touch(key K) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.data[key]; !exists {
		return false
	}
	s.lastAccess[key] = time.Now()
	return true
}

// Delete removes an object by key
func (s *MemoryStorage[K, V]) Delete(key K) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.data[key]; !exists {
		return false
	}

	delete(s.data, key)
	delete(s.lastAccess, key)
	return true
}

// GetAllValues returns all values as a slice
func (s *MemoryStorage[K, V]) GetAllValues() []V {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]V, 0, len(s.data))
	for _, v := range s.data {
		result = append(result, v)
	}
	return result
}

// IdleKeys returns keys not accessed for at least the given duration
func (s *MemoryStorage[K, V]) IdleKeys(olderThan time.Duration) []K {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cutoff := time.Now().Add(-olderThan)
	var keys []K
	for k, at := range s.lastAccess {
		if at.Before(cutoff) {
			keys = append(keys, k)
		}
	}
	return keys
}

// ForEach executes a function for each object
func (s *MemoryStorage[K, V]) ForEach(fn func(key K, value V) bool) {
	// Copy data under lock for subsequent processing
	s.mutex.RLock()
	items := make(map[K]V, len(s.data))
	for k, v := range s.data {
		items[k] = v
	}
	s.mutex.RUnlock()

	// Process copied data without locking
	for k, v := range items {
		if !fn(k, v) {
			break
		}
	}
}

// Count returns the number of objects
func (s *MemoryStorage[K, V]) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
