package projection

import "math"

// Ancient draws the two hemispheres side by side as azimuthal equidistant
// disks, in the style of old world maps.
type Ancient struct {
	base
	dispScale float64
}

func NewAncient(opts Options) *Ancient {
	a := &Ancient{base: newBase(opts, false)}
	if a.width/2 < a.height {
		a.dispScale = float64(a.width / 2)
	} else {
		a.dispScale = float64(a.height)
	}
	return a
}

func (a *Ancient) PixelToSpherical(x, y float64) (Surface, bool) {
	X := (x - a.centerX) / a.dispScale
	Y := -(y - a.centerY) / a.dispScale

	// Each disk is centered a radius to the side of the image center; the
	// western one faces lon -π/2 and the eastern one lon +π/2.
	shift := math.Pi / 2
	if X < 0 {
		X += a.radius
		shift = -shift
	} else {
		X -= a.radius
	}

	rho := math.Hypot(X, Y)
	if rho > a.radius*(1+rimTolerance) {
		return Surface{}, false
	}

	lat, lon := 0.0, shift
	if rho != 0 {
		c := math.Pi / 2 * rho / a.radius
		sinc, cosc := math.Sincos(c)
		arg, _ := unitArg(Y * sinc / rho)
		lat = math.Asin(arg)
		lon = math.Atan2(X*sinc, rho*cosc) + shift
	}
	lon -= math.Pi / 2
	return a.surface(lat, lon, 1)
}

func (a *Ancient) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = a.viewFromBody(lat, lon)

	lon += math.Pi / 2
	if lon > math.Pi {
		lon -= 2 * math.Pi
	}

	center := a.radius
	if lon < 0 {
		lon += math.Pi / 2
		center = -a.radius
	} else {
		lon -= math.Pi / 2
	}

	k := 2 * a.radius / math.Pi
	c := math.Acos(math.Cos(lat) * math.Cos(lon))
	if c != 0 {
		k *= c / math.Sin(c)
	}
	X := center + k*math.Cos(lat)*math.Sin(lon)
	Y := k * math.Sin(lat)

	x := a.centerX + a.dispScale*X
	y := a.centerY - a.dispScale*Y
	return x, y, a.inImage(x, y)
}
