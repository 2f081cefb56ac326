// Package footprint repairs raw planar coordinate rings into simple,
// consistently wound polygons ready for extrusion.
package footprint

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Epsilon is the planar distance (meters) under which two vertices count
// as the same point.
const Epsilon = 1e-6

// ErrDegenerateFootprint marks rings with fewer than 3 usable vertices
// after cleanup. Per-record recoverable: skip the record, keep the pass.
var ErrDegenerateFootprint = errors.New("degenerate footprint")

// Normalize turns a raw planar ring into the canonical open-ring,
// counter-clockwise form required by the extruder:
//   - a closing vertex within Epsilon of the first is dropped,
//   - consecutive duplicate vertices are collapsed,
//   - clockwise rings are reversed.
//
// Normalizing an already-normalized ring returns an equal ring.
func Normalize(ring orb.Ring) (orb.Ring, error) {
	out := make(orb.Ring, 0, len(ring))
	for _, pt := range ring {
		if len(out) > 0 && samePoint(out[len(out)-1], pt) {
			continue
		}
		out = append(out, pt)
	}

	// Closed-ring convention: last repeats first.
	if len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}

	if len(out) < 3 {
		return nil, ErrDegenerateFootprint
	}

	if SignedArea(out) < 0 {
		reverse(out)
	}
	if SignedArea(out) == 0 {
		// Collinear vertices enclose no area; nothing to extrude.
		return nil, ErrDegenerateFootprint
	}
	return out, nil
}

// SignedArea returns the planar area of an open ring: positive for
// counter-clockwise winding, negative for clockwise.
func SignedArea(ring orb.Ring) float64 {
	return planar.Area(ring)
}

// Centroid returns the area-weighted centroid of an open ring. Rings
// enclosing no area fall back to the vertex average.
func Centroid(ring orb.Ring) orb.Point {
	if planar.Area(ring) == 0 {
		return averagePoint(ring)
	}
	center, _ := planar.CentroidArea(ring)
	return center
}

func averagePoint(ring orb.Ring) orb.Point {
	var x, y float64
	for _, pt := range ring {
		x += pt[0]
		y += pt[1]
	}
	n := float64(len(ring))
	if n == 0 {
		return orb.Point{}
	}
	return orb.Point{x / n, y / n}
}

func samePoint(a, b orb.Point) bool {
	return math.Hypot(a[0]-b[0], a[1]-b[1]) < Epsilon
}

func reverse(ring orb.Ring) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}
