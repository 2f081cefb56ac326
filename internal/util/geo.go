package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance in meters between
// two lat/lng points given in degrees.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert coordinates from degrees to S2 points
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	// Calculate angle between points
	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	return angle.Radians() * earthRadiusMeters
}

// WithinRadius reports whether a point lies within radiusMeters of a
// center, both in lat/lng degrees. Used by the OSM importer to clip
// extracts to a neighborhood.
func WithinRadius(centerLat, centerLng, lat, lng, radiusMeters float64) bool {
	return HaversineDistance(centerLat, centerLng, lat, lng) <= radiusMeters
}
