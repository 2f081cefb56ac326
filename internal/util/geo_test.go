package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	d := HaversineDistance(51.0, -114.0, 52.0, -114.0)
	assert.InDelta(t, 111195, d, 500)

	assert.InDelta(t, 0, HaversineDistance(51.046, -114.071, 51.046, -114.071), 1e-6)
}

func TestWithinRadius(t *testing.T) {
	// ~540 m between these two downtown Calgary corners.
	assert.True(t, WithinRadius(51.046, -114.071, 51.049, -114.065, 1000))
	assert.False(t, WithinRadius(51.046, -114.071, 51.049, -114.065, 500))
}

func TestShortUUID(t *testing.T) {
	a := ShortUUID()
	b := ShortUUID()
	assert.Len(t, a, 22)
	assert.NotEqual(t, a, b)
}
