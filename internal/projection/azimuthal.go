package projection

import "math"

// Azimuthal is the azimuthal equidistant projection centered on the
// sub-observer point. The whole sphere fits in a disk; the antipode is the rim.
type Azimuthal struct {
	base
	iside float64
}

func NewAzimuthal(opts Options) *Azimuthal {
	a := &Azimuthal{base: newBase(opts, false)}
	a.radius = math.Sqrt(2 * a.radius)
	a.iside = float64(int(a.radius * float64(a.height)))
	return a
}

func (a *Azimuthal) PixelToSpherical(x, y float64) (Surface, bool) {
	X := 2 * (x - a.centerX) / a.iside
	Y := -2 * (y - a.centerY) / a.iside

	rho := math.Hypot(X, Y)
	if rho > a.radius {
		return Surface{}, false
	}
	if rho == 0 {
		return a.surface(0, 0, 1)
	}

	c := math.Pi * rho / a.radius
	sinc, cosc := math.Sincos(c)
	lat := math.Asin(Y * sinc / rho)
	lon := math.Atan2(X*sinc, rho*cosc)
	return a.surface(lat, lon, 1)
}

func (a *Azimuthal) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = a.viewFromBody(lat, lon)

	c := math.Acos(math.Cos(lat) * math.Cos(lon))
	if c == math.Pi {
		return 0, 0, false
	}

	k := a.radius / math.Pi
	if c != 0 {
		k *= c / math.Sin(c)
	}
	X := k * math.Cos(lat) * math.Sin(lon)
	Y := k * math.Sin(lat)

	x := a.centerX + X*a.iside/2
	y := a.centerY - Y*a.iside/2
	return x, y, a.inImage(x, y)
}
