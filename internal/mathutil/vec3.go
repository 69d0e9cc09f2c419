package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

// FromLatLon returns the unit vector for a latitude/longitude pair in radians.
// X points at (0, 0), Z at the north pole.
func FromLatLon(lat, lon float64) Vec3 {
	cl := math.Cos(lat)
	return Vec3{cl * math.Cos(lon), cl * math.Sin(lon), math.Sin(lat)}
}

// LatLon is the inverse of FromLatLon for unit vectors. Z is clamped so that
// rounding never pushes asin out of its domain.
func (v Vec3) LatLon() (lat, lon float64) {
	z := v[2]
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	return math.Asin(z), math.Atan2(v[1], v[0])
}
