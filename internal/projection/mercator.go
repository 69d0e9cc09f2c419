package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Mercator is the conformal cylindrical projection, cut off at a standard
// latitude that fills the image height.
type Mercator struct {
	base
	yScale float64
}

// NewMercator reads the cut-off latitude from Params[0] (default 80°).
func NewMercator(opts Options) *Mercator {
	m := &Mercator{base: newBase(opts, true)}
	lat1 := standardLatitude(opts, m.log, mathutil.Deg2Rad(80), "Mercator", false)
	m.yScale = math.Log(math.Tan(math.Pi/4+lat1/2)) / (math.Pi / 2)
	return m
}

func (m *Mercator) PixelToSpherical(x, y float64) (Surface, bool) {
	X := (x - m.halfW()) * mathutil.TwoPi / float64(m.width)
	Y := (m.halfH() - y) * m.yScale * math.Pi / float64(m.height)

	lat := math.Atan(math.Sinh(Y))
	return m.surface(lat, X, 1)
}

func (m *Mercator) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = m.viewFromBody(lat, lon)

	X := mathutil.WrapLon(lon)
	Y := math.Log(math.Tan(math.Pi/4 + lat/2))

	x := float64(m.width)*X/mathutil.TwoPi + m.halfW()
	y := m.halfH() - float64(m.height)*Y/(m.yScale*math.Pi)
	return x, y, m.inImage(x, y)
}
