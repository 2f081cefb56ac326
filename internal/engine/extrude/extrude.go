// Package extrude turns normalized footprint rings into renderable 3D
// volumes: a triangle mesh (walls + roof cap) plus a silhouette outline.
// The planar frame is x/y on the ground, z up, ground at z = 0.
package extrude

import (
	"github.com/go-gl/mathgl/mgl64"
	earcut "github.com/mmp/earcut-go"
	"github.com/paulmach/orb"

	"skyline/internal/engine/footprint"
	"skyline/internal/model"
)

// MinHeight is the extrusion floor in meters: zero or missing heights still
// render as visible masses instead of degenerate slabs.
const MinHeight = 10.0

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices  []mgl64.Vec3
	Triangles [][3]int
}

// Segment is one outline edge. Outlines are for silhouette rendering only
// and never participate in ray intersection.
type Segment struct {
	A, B mgl64.Vec3
}

// Box is a 3D axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// Volume is the renderable solid for one building record. Volumes are owned
// by the scene assembler and rebuilt wholesale on dataset change; Slot is
// the volume's index in the assembled scene.
type Volume struct {
	ID       string
	Record   *model.BuildingRecord
	Ring     orb.Ring // normalized planar footprint
	Height   float64  // effective extrusion height, after the floor
	Mesh     Mesh
	Outline  []Segment
	Bounds   Box
	Centroid mgl64.Vec3
	Slot     int
}

// Build extrudes a normalized CCW ring to the given height. Heights at or
// below zero (and below the floor) extrude to MinHeight.
func Build(rec *model.BuildingRecord, ring orb.Ring, height float64) *Volume {
	h := height
	if h < MinHeight {
		h = MinHeight
	}

	n := len(ring)
	mesh := Mesh{Vertices: make([]mgl64.Vec3, 0, 2*n)}
	for _, pt := range ring {
		mesh.Vertices = append(mesh.Vertices, mgl64.Vec3{pt[0], pt[1], 0})
	}
	for _, pt := range ring {
		mesh.Vertices = append(mesh.Vertices, mgl64.Vec3{pt[0], pt[1], h})
	}

	// Walls: two triangles per footprint edge, outward-facing for a CCW ring.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		mesh.Triangles = append(mesh.Triangles,
			[3]int{i, j, n + j},
			[3]int{i, n + j, n + i},
		)
	}

	// Roof cap. The bottom face sits on the ground plane and is never
	// visible nor pickable from above, so it is not emitted.
	mesh.Triangles = append(mesh.Triangles, capTriangles(ring, n)...)

	outline := buildOutline(ring, h)

	c := footprint.Centroid(ring)
	v := &Volume{
		ID:       rec.ID,
		Record:   rec,
		Ring:     ring,
		Height:   h,
		Mesh:     mesh,
		Outline:  outline,
		Centroid: mgl64.Vec3{c[0], c[1], h / 2},
		Slot:     -1,
	}
	v.Bounds = boundsOf(mesh.Vertices)
	return v
}

// Release drops the mesh and outline buffers. The scene assembler calls it
// before rebuilding so repeated dataset reloads do not accumulate buffers.
func (v *Volume) Release() {
	v.Mesh = Mesh{}
	v.Outline = nil
}

// capTriangles triangulates the roof polygon and maps the ear-cut output
// back onto the top-ring vertex indices (offset..offset+n-1).
func capTriangles(ring orb.Ring, offset int) [][3]int {
	verts := make([]earcut.Vertex, len(ring))
	index := make(map[[2]float64]int, len(ring))
	for i, pt := range ring {
		verts[i].P = [2]float64{pt[0], pt[1]}
		index[verts[i].P] = offset + i
	}

	var tris [][3]int
	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{verts}}) {
		var t [3]int
		ok := true
		for i, v := range tri.Vertices {
			idx, found := index[v.P]
			if !found {
				ok = false
				break
			}
			t[i] = idx
		}
		if ok {
			tris = append(tris, t)
		}
	}
	return tris
}

// buildOutline emits the roof-edge loop plus one vertical edge per corner.
func buildOutline(ring orb.Ring, h float64) []Segment {
	n := len(ring)
	out := make([]Segment, 0, 2*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		top1 := mgl64.Vec3{ring[i][0], ring[i][1], h}
		top2 := mgl64.Vec3{ring[j][0], ring[j][1], h}
		base := mgl64.Vec3{ring[i][0], ring[i][1], 0}
		out = append(out, Segment{A: top1, B: top2}, Segment{A: base, B: top1})
	}
	return out
}

func boundsOf(verts []mgl64.Vec3) Box {
	if len(verts) == 0 {
		return Box{}
	}
	b := Box{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		b = b.ExtendPoint(v)
	}
	return b
}

// ExtendPoint grows the box to contain p.
func (b Box) ExtendPoint(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return b.ExtendPoint(o.Min).ExtendPoint(o.Max)
}

// Center returns the box center.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the largest side length.
func (b Box) Extent() float64 {
	d := b.Max.Sub(b.Min)
	e := d[0]
	if d[1] > e {
		e = d[1]
	}
	if d[2] > e {
		e = d[2]
	}
	return e
}
