package geoproj

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectOriginIsZero(t *testing.T) {
	origin := orb.Point{-114.071, 51.046}
	p, err := New(origin)
	require.NoError(t, err)

	got, err := p.Project(origin)
	require.NoError(t, err)
	assert.InDelta(t, 0, got[0], 1e-9)
	assert.InDelta(t, 0, got[1], 1e-9)
}

func TestProjectKnownOffsets(t *testing.T) {
	// Anchored at the equator/prime meridian the relative projection equals
	// the absolute Mercator forward projection.
	p, err := New(orb.Point{0, 0})
	require.NoError(t, err)

	got, err := p.Project(orb.Point{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, EarthRadius*math.Pi/180, got[0], 1e-6)
	assert.InDelta(t, 0, got[1], 1e-6)

	got, err = p.Project(orb.Point{0, 1})
	require.NoError(t, err)
	wantY := EarthRadius * math.Log(math.Tan(math.Pi/4+(math.Pi/180)/2))
	assert.InDelta(t, wantY, got[1], 1e-6)
}

func TestProjectEastAndNorthArePositive(t *testing.T) {
	p, err := New(orb.Point{-114.071, 51.046})
	require.NoError(t, err)

	got, err := p.Project(orb.Point{-114.065, 51.049})
	require.NoError(t, err)
	assert.Greater(t, got[0], 0.0)
	assert.Greater(t, got[1], 0.0)
}

func TestProjectInvalidCoordinate(t *testing.T) {
	p, err := New(orb.Point{0, 0})
	require.NoError(t, err)

	for _, pt := range []orb.Point{
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
		{0, 90}, // pole
	} {
		_, err := p.Project(pt)
		assert.ErrorIs(t, err, ErrInvalidCoordinate, "point %v", pt)
	}
}

func TestNewRejectsInvalidOrigin(t *testing.T) {
	_, err := New(orb.Point{math.NaN(), 0})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestProjectRingFailsAsUnit(t *testing.T) {
	p, err := New(orb.Point{0, 0})
	require.NoError(t, err)

	_, err = p.ProjectRing(orb.Ring{{0, 0}, {1, 0}, {math.NaN(), 1}})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	out, err := p.ProjectRing(orb.Ring{{0, 0}, {0.001, 0}, {0.001, 0.001}})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
