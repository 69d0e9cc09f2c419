package projection

import "math"

// EqualArea is the Lambert azimuthal equal-area projection. It is computed
// as a polar aspect in a frame turned 90° so the pole sits at the center.
type EqualArea struct {
	base
	iside float64
}

func NewEqualArea(opts Options) *EqualArea {
	e := &EqualArea{base: newBase(opts, false)}
	e.radius = math.Sqrt(2 * e.radius)
	e.iside = float64(int(e.radius * float64(e.height)))
	return e
}

// swapPolar exchanges the X and Z axes and negates Y. It is its own inverse.
func swapPolar(lat, lon float64) (float64, float64) {
	x := math.Cos(lat) * math.Cos(lon)
	y := math.Sin(lat)
	r2 := math.Sqrt(1 - x*x)

	var coslon float64
	if math.Abs(y) < r2 {
		coslon = y / r2
	} else if y < 0 {
		coslon = -1
	} else {
		coslon = 1
	}

	newLat := math.Asin(x)
	if math.Sin(lon) < 0 {
		return newLat, math.Acos(coslon)
	}
	return newLat, -math.Acos(coslon)
}

func (e *EqualArea) PixelToSpherical(x, y float64) (Surface, bool) {
	X := 2 * (x - e.centerX) / e.iside
	Y := -2 * (y - e.centerY) / e.iside

	r := math.Hypot(X, Y)
	if r > 1 {
		return Surface{}, false
	}

	lat := math.Pi/2 - 2*math.Asin(r)
	lon := math.Atan2(-X, Y)
	lat, lon = swapPolar(lat, lon)
	return e.surface(lat, lon, 1)
}

func (e *EqualArea) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = e.viewFromBody(lat, lon)
	lat, lon = swapPolar(lat, lon)

	r := math.Sin((math.Pi/2 - lat) / 2)
	X := -math.Sin(lon) * r
	Y := math.Cos(lon) * r

	x := e.centerX + X*e.iside/2
	y := e.centerY - Y*e.iside/2
	return x, y, e.inImage(x, y)
}
