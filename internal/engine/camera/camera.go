// Package camera frames the viewpoint around the current dataset and maps
// screen points to world rays for picking. z is up, ground at z = 0.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// FOVDegrees is the vertical field of view.
	FOVDegrees = 60.0

	// DefaultExtent stands in when the scene bounds are empty or invalid.
	DefaultExtent = 200.0

	// FrameFactor scales the dataset extent into the eye distance for the
	// whole-dataset vantage.
	FrameFactor = 1.4

	// FocusDistance is the fixed eye distance when framing one building.
	FocusDistance = 80.0
)

// viewOffset is the diagonal-elevated vantage direction (unit length):
// south-west of the target and up.
var viewOffset = mgl64.Vec3{1, -1, 1}.Normalize()

// Camera is a perspective camera with an orbit target. It is owned by the
// viewport and reframed whenever the dataset bounds change.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3

	Near, Far float64

	Width, Height int
}

// New creates a camera for the given viewport size, framed on nothing yet.
func New(width, height int) *Camera {
	c := &Camera{Up: mgl64.Vec3{0, 0, 1}, Width: width, Height: height}
	c.Frame(mgl64.Vec3{}, 0)
	return c
}

// Frame places the eye at the diagonal-elevated vantage so the whole
// bounding box (center + max extent) is visible, and sets near/far
// proportional to the extent. Empty or non-finite extents fall back to
// DefaultExtent instead of failing.
func (c *Camera) Frame(center mgl64.Vec3, extent float64) {
	if extent <= 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		extent = DefaultExtent
	}
	dist := FrameFactor * extent
	c.Target = center
	c.Eye = center.Add(viewOffset.Mul(dist))
	c.setClipPlanes(dist)
}

// Focus retargets the camera onto a single building centroid at a fixed,
// closer distance, keeping the current view direction.
func (c *Camera) Focus(centroid mgl64.Vec3) {
	dir := c.Target.Sub(c.Eye)
	if dir.Len() < 1e-9 {
		dir = viewOffset.Mul(-1)
	}
	dir = dir.Normalize()
	c.Target = centroid
	c.Eye = centroid.Sub(dir.Mul(FocusDistance))
	c.setClipPlanes(FocusDistance)
}

// Resize records new viewport pixel dimensions. Resizes are idempotent and
// safe to coalesce.
func (c *Camera) Resize(width, height int) {
	if width > 0 {
		c.Width = width
	}
	if height > 0 {
		c.Height = height
	}
}

func (c *Camera) setClipPlanes(dist float64) {
	c.Near = dist / 100
	if c.Near < 0.1 {
		c.Near = 0.1
	}
	c.Far = dist * 20
}

func (c *Camera) aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// View returns the look-at view matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(FOVDegrees), c.aspect(), c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// ScreenRay casts a world-space ray through the given screen pixel by
// unprojecting the point on the near and far clip planes.
func (c *Camera) ScreenRay(sx, sy float64) (origin, dir mgl64.Vec3) {
	ndcX := (sx/float64(c.Width))*2 - 1
	ndcY := 1 - (sy/float64(c.Height))*2

	inv := c.ViewProjection().Inv()
	near := unproject(inv, mgl64.Vec3{ndcX, ndcY, -1})
	far := unproject(inv, mgl64.Vec3{ndcX, ndcY, 1})

	return near, far.Sub(near).Normalize()
}

func unproject(inv mgl64.Mat4, ndc mgl64.Vec3) mgl64.Vec3 {
	v := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), ndc.Z(), 1})
	w := v.W()
	if w == 0 {
		w = 1
	}
	return mgl64.Vec3{v.X() / w, v.Y() / w, v.Z() / w}
}
