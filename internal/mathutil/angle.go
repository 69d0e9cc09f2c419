package mathutil

import "math"

const TwoPi = 2 * math.Pi

// NormalizeLon brings a longitude that is at most one turn out of range back
// into [-π, π]. Exactly ±π is left alone.
func NormalizeLon(lon float64) float64 {
	if lon > math.Pi {
		return lon - TwoPi
	} else if lon < -math.Pi {
		return lon + TwoPi
	}
	return lon
}

// WrapLon reduces any longitude into [-π, π).
func WrapLon(lon float64) float64 {
	lon = math.Mod(lon+math.Pi, TwoPi)
	if lon < 0 {
		lon += TwoPi
	}
	return lon - math.Pi
}

// AngleDist returns the shortest angular distance between two angles in radians (0..π).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, TwoPi)
	if d < 0 {
		d += TwoPi
	}
	if d > math.Pi {
		return TwoPi - d
	}
	return d
}
