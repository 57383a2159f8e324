package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKM = 6371.0

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both components are finite numbers.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// ParseGeocode parses a provider geocode string of the form "lat,lng".
// Anything that is not exactly two finite comma-separated numbers is an error.
func ParseGeocode(input string) (Coordinate, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("invalid geocode %q", input)
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return Coordinate{}, fmt.Errorf("invalid geocode lat/lng in %q", input)
	}

	c := Coordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("non-finite geocode %q", input)
	}
	return c, nil
}

// Bounds is a rectangular region used for map framing.
type Bounds struct {
	NorthEast Coordinate `json:"northeast"`
	SouthWest Coordinate `json:"southwest"`

	set bool
}

// Extend grows the bounds to include c. The first point initializes the region.
func (b *Bounds) Extend(c Coordinate) {
	if !b.set {
		b.NorthEast = c
		b.SouthWest = c
		b.set = true
		return
	}
	b.NorthEast.Lat = math.Max(b.NorthEast.Lat, c.Lat)
	b.NorthEast.Lng = math.Max(b.NorthEast.Lng, c.Lng)
	b.SouthWest.Lat = math.Min(b.SouthWest.Lat, c.Lat)
	b.SouthWest.Lng = math.Min(b.SouthWest.Lng, c.Lng)
}

// IsZero reports whether Extend has never been called.
func (b *Bounds) IsZero() bool { return !b.set }

// Center returns the midpoint of the region.
func (b *Bounds) Center() Coordinate {
	return Coordinate{
		Lat: (b.NorthEast.Lat + b.SouthWest.Lat) / 2,
		Lng: (b.NorthEast.Lng + b.SouthWest.Lng) / 2,
	}
}

// BoundsOf accumulates a region over all given points.
func BoundsOf(points []Coordinate) Bounds {
	var b Bounds
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Centroid returns the arithmetic mean of the points. Zero points yield the
// zero coordinate.
func Centroid(points []Coordinate) Coordinate {
	if len(points) == 0 {
		return Coordinate{}
	}
	var lat, lng float64
	for _, p := range points {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(points))
	return Coordinate{Lat: lat / n, Lng: lng / n}
}

// HaversineKM returns the great-circle distance between two points in kilometers.
func HaversineKM(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
