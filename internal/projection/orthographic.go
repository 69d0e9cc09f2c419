package projection

import "math"

// Orthographic shows the globe as seen from Range body radii away. With the
// default range it is indistinguishable from a true orthographic view.
type Orthographic struct {
	base
	dispScale float64

	p, pp1, pm1 float64
	ppm1, pm1sq float64

	photo *photoTable
}

func NewOrthographic(opts Options) *Orthographic {
	o := &Orthographic{base: newBase(opts, false)}

	p := opts.Range
	if p <= 1 {
		p = DefaultRange
	}
	o.p = p
	o.pp1 = p + 1
	o.pm1 = p - 1
	o.ppm1 = p * o.pm1
	o.pm1sq = o.pm1 * o.pm1

	// Scale so the visible limb, not the equator, touches the disk radius.
	o.dispScale = o.radius * float64(o.height) * math.Sqrt(o.pp1/o.pm1)
	o.photo = newPhotoTable()
	return o
}

func (o *Orthographic) PixelToSpherical(x, y float64) (Surface, bool) {
	X := (x - o.centerX) / o.dispScale
	Y := (o.centerY - y) / o.dispScale

	rho2 := X*X + Y*Y
	if rho2 > 1 {
		return Surface{}, false
	}

	rho := math.Sqrt(rho2)
	if rho == 0 {
		return o.surface(0, 0, o.darkening(0, 0))
	}

	arg := o.pm1 * (o.pm1 - rho2*o.pp1)
	if arg < 0 {
		return Surface{}, false
	}

	N := rho * (o.ppm1 - math.Sqrt(arg))
	D := o.pm1sq + rho2
	sinc := N / D
	cosc := math.Sqrt(1 - sinc*sinc)

	arg = Y * sinc / rho
	if math.Abs(arg) > 1 {
		return Surface{}, false
	}
	lat := math.Asin(arg)
	lon := math.Atan2(X*sinc, rho*cosc)

	return o.surface(lat, lon, o.darkening(lat, lon))
}

// darkening evaluates the limb-darkening table for the angle between the
// surface normal at (lat, lon) and the line of sight to the observer.
func (o *Orthographic) darkening(lat, lon float64) float64 {
	cosa := math.Cos(lat) * math.Cos(lon)
	sina2 := 1 - cosa*cosa
	dist2 := o.p*o.p - 2*o.p*cosa + 1
	sinb2 := o.p * o.p / dist2 * sina2
	if sinb2 > 1 {
		sinb2 = 1
	}
	cosb := math.Sqrt(1 - sinb2)
	return o.photo.Lookup(math.Abs(cosb))
}

func (o *Orthographic) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = o.viewFromBody(lat, lon)

	cosc := math.Cos(lat) * math.Cos(lon)
	if cosc < 0 {
		return 0, 0, false
	}

	k := (o.p - 1) / (o.p - cosc)
	X := k * math.Cos(lat) * math.Sin(lon)
	Y := k * math.Sin(lat)

	x := X*o.dispScale + o.centerX
	y := o.centerY - Y*o.dispScale
	if !o.inImage(x, y) {
		return x, y, false
	}

	// Between the geometric horizon and the observer's limb: hidden by the
	// disk in front of it.
	if o.p*cosc < 1 && math.Hypot(x-o.centerX, y-o.centerY) < o.dispScale {
		return x, y, false
	}
	return x, y, true
}
