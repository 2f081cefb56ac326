// Package geoproj converts geographic coordinates into planar metric
// coordinates anchored at a per-dataset origin, so all volumes of one
// rendering pass share a numerically stable local frame.
package geoproj

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// EarthRadius is the spherical Web-Mercator radius in meters.
const EarthRadius = 6378137.0

// ErrInvalidCoordinate marks non-finite or out-of-range geographic input.
// It is per-record recoverable: the caller skips the record and keeps going.
var ErrInvalidCoordinate = errors.New("invalid geographic coordinate")

// Projector performs a spherical Web-Mercator forward projection relative
// to a fixed origin. The origin is derived once per dataset and must not
// change for the lifetime of a rendering pass.
type Projector struct {
	origin orb.Point // projected origin, meters
}

// New creates a Projector anchored at the given geographic origin
// (lon/lat degrees).
func New(geoOrigin orb.Point) (*Projector, error) {
	if !validLonLat(geoOrigin) {
		return nil, ErrInvalidCoordinate
	}
	return &Projector{origin: forward(geoOrigin)}, nil
}

// Project converts a geographic point (lon/lat degrees) to planar meters
// relative to the projector's origin.
func (p *Projector) Project(pt orb.Point) (orb.Point, error) {
	if !validLonLat(pt) {
		return orb.Point{}, ErrInvalidCoordinate
	}
	m := forward(pt)
	return orb.Point{m[0] - p.origin[0], m[1] - p.origin[1]}, nil
}

// ProjectRing converts a whole geographic ring. Any invalid vertex fails
// the ring as a unit; partial footprints are worse than skipped ones.
func (p *Projector) ProjectRing(ring orb.Ring) (orb.Ring, error) {
	out := make(orb.Ring, len(ring))
	for i, pt := range ring {
		m, err := p.Project(pt)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// forward is the spherical Web-Mercator forward projection:
// x = R*lambda, y = R*ln(tan(pi/4 + phi/2)).
func forward(pt orb.Point) orb.Point {
	lambda := pt[0] * math.Pi / 180
	phi := pt[1] * math.Pi / 180
	return orb.Point{
		EarthRadius * lambda,
		EarthRadius * math.Log(math.Tan(math.Pi/4+phi/2)),
	}
}

func validLonLat(pt orb.Point) bool {
	lon, lat := pt[0], pt[1]
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return false
	}
	// Latitudes at the poles blow up the Mercator forward projection.
	return lat > -89.9 && lat < 89.9
}
