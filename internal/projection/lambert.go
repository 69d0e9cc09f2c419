package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Lambert is the Lambert cylindrical equal-area projection.
type Lambert struct {
	base
}

func NewLambert(opts Options) *Lambert {
	return &Lambert{base: newBase(opts, true)}
}

func (l *Lambert) PixelToSpherical(x, y float64) (Surface, bool) {
	X := (x - l.halfW()) * mathutil.TwoPi / float64(l.width)
	Y := 1 - 2*y/float64(l.height)
	if math.Abs(Y) > 1 {
		return Surface{}, false
	}
	return l.surface(math.Asin(Y), X, 1)
}

func (l *Lambert) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = l.viewFromBody(lat, lon)

	X := mathutil.WrapLon(lon)
	x := float64(l.width)*X/mathutil.TwoPi + l.halfW()
	y := (1 - math.Sin(lat)) * float64(l.height) / 2
	return x, y, l.inImage(x, y)
}
