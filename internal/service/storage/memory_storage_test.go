package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestIdleKeys(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("old", 1)
	s.Set("fresh", 2)

	time.Sleep(20 * time.Millisecond)
	require.True(t, s.Touch("fresh"))
	assert.False(t, s.Touch("missing"))

	idle := s.IdleKeys(10 * time.Millisecond)
	assert.Equal(t, []string{"old"}, idle)
}

func TestGetRefreshesAccess(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	s.Get("a")
	assert.Empty(t, s.IdleKeys(10*time.Millisecond))
}

func TestForEachAndCount(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	assert.Equal(t, 2, s.Count())
	assert.Len(t, s.GetAllValues(), 2)

	seen := 0
	s.ForEach(func(_ string, _ int) bool {
		seen++
		return true
	})
	assert.Equal(t, 2, seen)
}
