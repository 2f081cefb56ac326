package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameTargetsCenter(t *testing.T) {
	c := New(800, 600)
	center := mgl64.Vec3{50, 50, 20}
	c.Frame(center, 100)

	assert.Equal(t, center, c.Target)
	assert.InDelta(t, FrameFactor*100, c.Eye.Sub(center).Len(), 1e-9)
	// Diagonal-elevated vantage: eye is above and offset from the target.
	assert.Greater(t, c.Eye.Z(), center.Z())
}

func TestFrameClipPlanesProportionalToExtent(t *testing.T) {
	c := New(800, 600)

	c.Frame(mgl64.Vec3{}, 10)
	smallNear, smallFar := c.Near, c.Far

	c.Frame(mgl64.Vec3{}, 100000)
	assert.Greater(t, c.Near, smallNear)
	assert.Greater(t, c.Far, smallFar)
	assert.Less(t, c.Near, c.Far)
}

func TestFrameEmptyExtentFallsBack(t *testing.T) {
	c := New(800, 600)
	for _, extent := range []float64{0, -5} {
		c.Frame(mgl64.Vec3{}, extent)
		assert.InDelta(t, FrameFactor*DefaultExtent, c.Eye.Sub(c.Target).Len(), 1e-9, "extent %v", extent)
	}
}

func TestFocusRetargetsAtFixedDistance(t *testing.T) {
	c := New(800, 600)
	c.Frame(mgl64.Vec3{50, 50, 0}, 500)
	dirBefore := c.Target.Sub(c.Eye).Normalize()

	centroid := mgl64.Vec3{10, 20, 15}
	c.Focus(centroid)

	assert.Equal(t, centroid, c.Target)
	assert.InDelta(t, FocusDistance, c.Eye.Sub(centroid).Len(), 1e-9)
	dirAfter := c.Target.Sub(c.Eye).Normalize()
	assert.InDelta(t, 1, dirBefore.Dot(dirAfter), 1e-9)
}

func TestResizeIdempotent(t *testing.T) {
	c := New(800, 600)
	c.Resize(1024, 768)
	c.Resize(1024, 768)
	assert.Equal(t, 1024, c.Width)
	assert.Equal(t, 768, c.Height)

	// Zero dimensions are ignored rather than corrupting the aspect ratio.
	c.Resize(0, 0)
	assert.Equal(t, 1024, c.Width)
	assert.Equal(t, 768, c.Height)
}

func TestScreenRayThroughCenterHitsTarget(t *testing.T) {
	c := New(800, 600)
	target := mgl64.Vec3{25, 25, 10}
	c.Frame(target, 60)

	origin, dir := c.ScreenRay(400, 300)
	require.InDelta(t, 1, dir.Len(), 1e-9)

	// The center ray passes through the orbit target: the closest point on
	// the ray to the target must coincide with it.
	toTarget := target.Sub(origin)
	closest := origin.Add(dir.Mul(toTarget.Dot(dir)))
	assert.InDelta(t, 0, closest.Sub(target).Len(), 1e-6)
}

func TestScreenRayCornersDiverge(t *testing.T) {
	c := New(800, 600)
	c.Frame(mgl64.Vec3{}, 100)

	_, d1 := c.ScreenRay(0, 0)
	_, d2 := c.ScreenRay(800, 600)
	assert.Less(t, d1.Dot(d2), 1.0)
}
