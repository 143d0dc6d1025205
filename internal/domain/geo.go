package domain

import (
	"fmt"
	"math"
)

// Point is a WGS84 geographic coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// NewPoint builds a Point from GeoJSON-ordered coordinates [longitude, latitude].
func NewPoint(longitude, latitude float64) Point {
	return Point{Latitude: latitude, Longitude: longitude}
}

// WKT renders the point as well-known text, longitude first.
func (p Point) WKT() string {
	return fmt.Sprintf("POINT(%g %g)", p.Longitude, p.Latitude)
}

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points.
func (p Point) DistanceKm(q Point) float64 {
	lat1 := p.Latitude * math.Pi / 180
	lat2 := q.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (q.Longitude - p.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
