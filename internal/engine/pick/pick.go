// Package pick resolves screen-space pointer events to the struck volume by
// casting a camera ray against the scene's volumes. Outlines and the ground
// plane are never candidates; a miss is an empty result, not an error.
package pick

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"

	"skyline/internal/engine/camera"
	"skyline/internal/engine/extrude"
	"skyline/internal/engine/scene"
)

// Hit is the nearest volume struck by a pick ray.
type Hit struct {
	Volume   *extrude.Volume
	Distance float64
	Point    mgl64.Vec3
}

// volumeSpatial adapts a volume's footprint bounds to the R-tree.
type volumeSpatial struct {
	volume *extrude.Volume
}

// Bounds implements the rtreego.Spatial interface over the volume's planar
// bounding rectangle.
func (v *volumeSpatial) Bounds() rtreego.Rect {
	minX, minY := v.volume.Bounds.Min.X(), v.volume.Bounds.Min.Y()
	maxX, maxY := v.volume.Bounds.Max.X(), v.volume.Bounds.Max.Y()

	rect, err := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{nonZero(maxX - minX), nonZero(maxY - minY)},
	)
	if err != nil {
		rect, _ = rtreego.NewRect(rtreego.Point{minX, minY}, []float64{1, 1})
	}
	return rect
}

// Picker indexes the current scene's volumes for ray intersection. It is
// rebuilt together with the scene on every dataset change.
type Picker struct {
	tree    *rtreego.Rtree
	volumes []*extrude.Volume
}

// New builds a picker over the assembled scene.
func New(s *scene.Scene) *Picker {
	p := &Picker{
		tree:    rtreego.NewTree(2, 25, 50),
		volumes: s.Volumes,
	}
	for _, v := range s.Volumes {
		p.tree.Insert(&volumeSpatial{volume: v})
	}
	return p
}

// Pick casts a ray from the camera through the screen point and returns the
// nearest struck volume, or false on a miss.
func (p *Picker) Pick(cam *camera.Camera, sx, sy float64) (Hit, bool) {
	if len(p.volumes) == 0 {
		return Hit{}, false
	}
	origin, dir := cam.ScreenRay(sx, sy)

	best := Hit{Distance: math.Inf(1)}
	for _, v := range p.candidates(origin, dir, cam.Far) {
		if !rayIntersectsBox(origin, dir, v.Bounds) {
			continue
		}
		if t, ok := rayMeshDistance(origin, dir, v.Mesh); ok && t < best.Distance {
			best = Hit{Volume: v, Distance: t, Point: origin.Add(dir.Mul(t))}
		}
	}
	if best.Volume == nil {
		return Hit{}, false
	}
	return best, true
}

// candidates prunes via the R-tree using the bounding rectangle of the
// ray's ground-projected swath: from the ray origin to where it crosses
// z = 0 (or its far end when pointing up).
func (p *Picker) candidates(origin, dir mgl64.Vec3, far float64) []*extrude.Volume {
	end := origin.Add(dir.Mul(far))
	if dir.Z() < -1e-12 {
		t := -origin.Z() / dir.Z()
		end = origin.Add(dir.Mul(t))
	}

	minX, maxX := math.Min(origin.X(), end.X()), math.Max(origin.X(), end.X())
	minY, maxY := math.Min(origin.Y(), end.Y()), math.Max(origin.Y(), end.Y())

	rect, err := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{nonZero(maxX - minX), nonZero(maxY - minY)},
	)
	if err != nil {
		return p.volumes
	}

	found := p.tree.SearchIntersect(rect)
	out := make([]*extrude.Volume, 0, len(found))
	for _, sp := range found {
		out = append(out, sp.(*volumeSpatial).volume)
	}
	return out
}

// rayIntersectsBox is the slab test against a volume's AABB.
func rayIntersectsBox(origin, dir mgl64.Vec3, box extrude.Box) bool {
	tMin, tMax := 0.0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < box.Min[i] || origin[i] > box.Max[i] {
				return false
			}
			continue
		}
		t1 := (box.Min[i] - origin[i]) / dir[i]
		t2 := (box.Max[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// rayMeshDistance returns the smallest positive ray parameter hitting any
// triangle of the mesh.
func rayMeshDistance(origin, dir mgl64.Vec3, mesh extrude.Mesh) (float64, bool) {
	best := math.Inf(1)
	for _, tri := range mesh.Triangles {
		a := mesh.Vertices[tri[0]]
		b := mesh.Vertices[tri[1]]
		c := mesh.Vertices[tri[2]]
		if t, ok := rayTriangle(origin, dir, a, b, c); ok && t < best {
			best = t
		}
	}
	return best, !math.IsInf(best, 1)
}

// rayTriangle is the Moller-Trumbore intersection. Back faces count too, so
// winding slips in source data cannot swallow clicks.
func rayTriangle(origin, dir, a, b, c mgl64.Vec3) (float64, bool) {
	const eps = 1e-12

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	pv := dir.Cross(e2)
	det := e1.Dot(pv)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det

	tv := origin.Sub(a)
	u := tv.Dot(pv) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	qv := tv.Cross(e1)
	v := dir.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(qv) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}

func nonZero(v float64) float64 {
	if v < 1e-9 {
		return 1e-9
	}
	return v
}
