package pick

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyline/internal/engine/camera"
	"skyline/internal/engine/extrude"
	"skyline/internal/engine/scene"
	"skyline/internal/model"
)

func volumeAt(id string, x, y, size, height float64) *extrude.Volume {
	ring := orb.Ring{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}}
	return extrude.Build(&model.BuildingRecord{ID: id}, ring, height)
}

// overheadCamera looks straight down at (x, y) from the given altitude.
func overheadCamera(x, y, altitude float64) *camera.Camera {
	c := camera.New(800, 600)
	c.Eye = mgl64.Vec3{x, y, altitude}
	c.Target = mgl64.Vec3{x, y, 0}
	c.Up = mgl64.Vec3{0, 1, 0}
	c.Near = 0.1
	c.Far = 10 * altitude
	return c
}

func TestPickHitsRoofUnderCursor(t *testing.T) {
	s := scene.Assemble([]*extrude.Volume{volumeAt("b1", 0, 0, 10, 20)})
	p := New(s)

	cam := overheadCamera(5, 5, 100)
	hit, ok := p.Pick(cam, 400, 300)
	require.True(t, ok)
	assert.Equal(t, "b1", hit.Volume.ID)
	// The ray origin sits on the near plane, so the distance is offset by
	// Near from the eye.
	assert.InDelta(t, 80, hit.Distance, cam.Near+1e-6)
	assert.InDelta(t, 20, hit.Point.Z(), 1e-6)
}

func TestPickMiss(t *testing.T) {
	s := scene.Assemble([]*extrude.Volume{volumeAt("b1", 0, 0, 10, 20)})
	p := New(s)

	// Overhead of empty ground well away from the building: the ground
	// plane is not a candidate, so this is a clean miss.
	cam := overheadCamera(500, 500, 100)
	_, ok := p.Pick(cam, 400, 300)
	assert.False(t, ok)
}

func TestPickReturnsNearestOfTwo(t *testing.T) {
	near := volumeAt("near", 0, 0, 10, 60)
	farV := volumeAt("far", 20, 0, 10, 60)
	s := scene.Assemble([]*extrude.Volume{farV, near})
	p := New(s)

	// Horizontal ray along +x at z=30 passes through both buildings.
	cam := camera.New(800, 600)
	cam.Eye = mgl64.Vec3{-50, 5, 30}
	cam.Target = mgl64.Vec3{5, 5, 30}
	cam.Up = mgl64.Vec3{0, 0, 1}
	cam.Near = 0.1
	cam.Far = 1000

	hit, ok := p.Pick(cam, 400, 300)
	require.True(t, ok)
	assert.Equal(t, "near", hit.Volume.ID)
	assert.InDelta(t, 50, hit.Distance, cam.Near+1e-6)
	assert.InDelta(t, 0, hit.Point.X(), 1e-6)
}

func TestPickChoosesVolumeUnderOffCenterCursor(t *testing.T) {
	left := volumeAt("left", 0, 0, 10, 20)
	right := volumeAt("right", 40, 0, 10, 20)
	s := scene.Assemble([]*extrude.Volume{left, right})
	p := New(s)

	cam := overheadCamera(5, 5, 100)
	hit, ok := p.Pick(cam, 400, 300)
	require.True(t, ok)
	assert.Equal(t, "left", hit.Volume.ID)

	cam = overheadCamera(45, 5, 100)
	hit, ok = p.Pick(cam, 400, 300)
	require.True(t, ok)
	assert.Equal(t, "right", hit.Volume.ID)
}

func TestPickEmptyScene(t *testing.T) {
	p := New(scene.Assemble(nil))
	_, ok := p.Pick(overheadCamera(0, 0, 100), 400, 300)
	assert.False(t, ok)
}

func TestRayIntersectsBox(t *testing.T) {
	box := extrude.Box{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 10, 10}}

	assert.True(t, rayIntersectsBox(mgl64.Vec3{5, 5, 100}, mgl64.Vec3{0, 0, -1}, box))
	assert.False(t, rayIntersectsBox(mgl64.Vec3{50, 5, 100}, mgl64.Vec3{0, 0, -1}, box))
	// Ray pointing away from the box.
	assert.False(t, rayIntersectsBox(mgl64.Vec3{5, 5, 100}, mgl64.Vec3{0, 0, 1}, box))
}

func TestRayTriangle(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{10, 0, 0}
	c := mgl64.Vec3{0, 10, 0}

	d, ok := rayTriangle(mgl64.Vec3{2, 2, 5}, mgl64.Vec3{0, 0, -1}, a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 5, d, 1e-9)

	_, ok = rayTriangle(mgl64.Vec3{20, 20, 5}, mgl64.Vec3{0, 0, -1}, a, b, c)
	assert.False(t, ok)

	// Ray parallel to the triangle plane.
	_, ok = rayTriangle(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{1, 0, 0}, a, b, c)
	assert.False(t, ok)
}
