package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Peters is the Gall-Peters cylindrical equal-area projection.
type Peters struct {
	base
	wd, ht int
}

func NewPeters(opts Options) *Peters {
	p := &Peters{base: newBase(opts, true)}
	p.wd = int(2 * float64(p.width) * p.radius)
	p.ht = p.wd / 2
	return p
}

func (p *Peters) PixelToSpherical(x, y float64) (Surface, bool) {
	X := (x - p.halfW()) * mathutil.TwoPi / float64(p.wd)
	Y := (float64(p.height) - 2*y) / float64(p.ht)
	if math.Abs(Y) > 1 {
		return Surface{}, false
	}
	return p.surface(math.Asin(Y), X, 1)
}

func (p *Peters) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = p.viewFromBody(lat, lon)

	X := mathutil.WrapLon(lon)
	Y := math.Sin(lat)

	x := float64(p.wd)*X/mathutil.TwoPi + p.halfW()
	y := p.halfH() - Y*float64(p.ht)/2
	return x, y, p.inImage(x, y)
}
