package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Mollweide is the Mollweide elliptical equal-area projection. The radius
// is √2·R in the usual formulation.
type Mollweide struct {
	base
}

func NewMollweide(opts Options) *Mollweide {
	return &Mollweide{base: newBase(opts, false)}
}

func (m *Mollweide) PixelToSpherical(x, y float64) (Surface, bool) {
	X := 2*(x+m.halfW()-m.centerX)/float64(m.width) - 1
	Y := 1 - 2*(y+m.halfH()-m.centerY)/float64(m.height)

	arg := Y / m.radius
	if math.Abs(arg) > 1 {
		return Surface{}, false
	}
	theta := math.Asin(arg)

	arg = (2*theta + math.Sin(2*theta)) / math.Pi
	if math.Abs(arg) > 1 {
		return Surface{}, false
	}
	lat := math.Asin(arg)

	var lon float64
	if c := math.Cos(theta); c != 0 {
		lon = math.Pi * X / (2 * m.radius * c)
		if math.Abs(lon) > math.Pi {
			return Surface{}, false
		}
	}
	return m.surface(lat, lon, 1)
}

// auxiliaryAngle solves 2θ + sin 2θ = π sin(lat) and returns θ.
func auxiliaryAngle(lat float64) float64 {
	target := math.Pi * math.Sin(lat)
	if math.Abs(target) >= math.Pi {
		return math.Copysign(math.Pi/2, lat)
	}
	f := func(t float64) float64 { return t + math.Sin(t) - target }
	df := func(t float64) float64 { return 1 + math.Cos(t) }

	t, _ := newton(f, df, lat, solverTolerance, math.Pi, solverMaxIter)
	return t / 2
}

func (m *Mollweide) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = m.viewFromBody(lat, lon)

	theta := auxiliaryAngle(lat)
	lon = mathutil.WrapLon(lon)

	X := (2 * m.radius / math.Pi) * lon * math.Cos(theta)
	Y := m.radius * math.Sin(theta)

	x := (X+1)*float64(m.width)/2 + m.centerX - m.halfW()
	y := m.halfH()*(1-Y) + m.centerY - m.halfH()
	return x, y, m.inImage(x, y)
}
