package storage

import "time"

// Storage defines interface for any object storage
type Storage[K comparable, V any] interface {
	Set(key K, value V)
	Get(key K) (V, bool)
	Touch(key K) bool
	Delete(key K) bool
	GetAllValues() []V
	IdleKeys(olderThan time.Duration) []K
	ForEach(fn func(key K, value V) bool)
	Count() int
}
