// Package scene places extruded volumes into one renderable scene with a
// ground reference plane and the dataset bounds the camera framer needs.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"skyline/internal/engine/extrude"
)

const (
	// GroundScale multiplies the larger of the dataset's width/depth to
	// size the ground plane.
	GroundScale = 3.0

	// MinGroundSize keeps the ground visible for empty or tiny datasets.
	MinGroundSize = 100.0
)

// Ground is the reference plane under the dataset, a quad at z = 0.
// It is never a picking candidate.
type Ground struct {
	Size   float64
	Center mgl64.Vec3
	Mesh   extrude.Mesh
}

// Scene owns the volumes of the current dataset. It is rebuilt wholesale on
// every dataset change; Clear must run on the old scene first so mesh
// buffers are not leaked across reloads.
type Scene struct {
	Volumes []*extrude.Volume
	ByID    map[string]*extrude.Volume
	Ground  Ground
	Bounds  extrude.Box
	Center  mgl64.Vec3
	Extent  float64
}

// Assemble builds a scene from the given volumes. An empty volume list is
// valid and yields a default-sized ground plane with no volumes.
func Assemble(volumes []*extrude.Volume) *Scene {
	s := &Scene{
		Volumes: volumes,
		ByID:    make(map[string]*extrude.Volume, len(volumes)),
	}

	for i, v := range volumes {
		v.Slot = i
		s.ByID[v.ID] = v
		if i == 0 {
			s.Bounds = v.Bounds
		} else {
			s.Bounds = s.Bounds.Union(v.Bounds)
		}
	}

	if len(volumes) > 0 {
		s.Center = s.Bounds.Center()
		s.Extent = s.Bounds.Extent()
	}

	s.Ground = buildGround(s)
	return s
}

// Clear releases every volume's render buffers. The scene must not be used
// afterwards; assemble a fresh one.
func (s *Scene) Clear() {
	for _, v := range s.Volumes {
		v.Release()
	}
	s.Volumes = nil
	s.ByID = nil
	s.Ground = Ground{}
}

// IDs returns the volume identifiers in slot order.
func (s *Scene) IDs() []string {
	ids := make([]string, len(s.Volumes))
	for i, v := range s.Volumes {
		ids[i] = v.ID
	}
	return ids
}

func buildGround(s *Scene) Ground {
	size := MinGroundSize
	center := mgl64.Vec3{}
	if len(s.Volumes) > 0 {
		d := s.Bounds.Max.Sub(s.Bounds.Min)
		w := d[0]
		if d[1] > w {
			w = d[1]
		}
		if got := GroundScale * w; got > size {
			size = got
		}
		center = mgl64.Vec3{s.Center.X(), s.Center.Y(), 0}
	}

	half := size / 2
	mesh := extrude.Mesh{
		Vertices: []mgl64.Vec3{
			{center.X() - half, center.Y() - half, 0},
			{center.X() + half, center.Y() - half, 0},
			{center.X() + half, center.Y() + half, 0},
			{center.X() - half, center.Y() + half, 0},
		},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
	return Ground{Size: size, Center: center, Mesh: mesh}
}
