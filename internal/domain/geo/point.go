package geo

import "fmt"

// Point is a WGS84 coordinate (immutable value object).
type Point struct {
	lat float64
	lng float64
}

// New validates and creates a Point.
func New(lat, lng float64) (Point, error) {
	if lat < -90 || lat > 90 {
		return Point{}, fmt.Errorf("latitude must be between -90 and 90, got %f", lat)
	}
	if lng < -180 || lng > 180 {
		return Point{}, fmt.Errorf("longitude must be between -180 and 180, got %f", lng)
	}
	return Point{lat: lat, lng: lng}, nil
}

// Reconstruct creates a Point without validation (storage hydration).
func Reconstruct(lat, lng float64) Point {
	return Point{lat: lat, lng: lng}
}

// Lat returns the latitude in degrees.
func (p Point) Lat() float64 { return p.lat }

// Lng returns the longitude in degrees.
func (p Point) Lng() float64 { return p.lng }
