package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Polyconic is the American polyconic projection. Its inverse has no closed
// form and is solved per pixel with Newton's method.
type Polyconic struct {
	base
	scale float64
}

func NewPolyconic(opts Options) *Polyconic {
	p := &Polyconic{base: newBase(opts, false)}

	h := float64(p.height)
	// Highest point of the outline, reached along the antimeridian.
	top, _ := scanLatitudes(p.height, 0, 0, func(lat float64) (float64, bool) {
		if lat == 0 {
			return 0, false
		}
		E := math.Pi * math.Sin(lat)
		Y := lat + (1-math.Cos(E))/math.Tan(lat)
		return h * (0.5 - Y/math.Pi), true
	})
	p.scale = h / (h - 2*top) * 2 * p.radius
	return p
}

// polyconicLat solves X² + (Y-θ)((Y-θ) - 2/tan θ) = 0 for the latitude θ
// on the hemisphere of Y.
func polyconicLat(X, Y float64) float64 {
	const delta = 0.001
	if math.Abs(Y) < delta {
		return 0
	}

	f := func(theta float64) float64 {
		ymt := Y - theta
		return X*X + ymt*(ymt-2/math.Tan(theta))
	}
	df := func(theta float64) float64 {
		t := math.Tan(theta)
		return 2 * (1 + (Y-theta)/t) / t
	}

	start, ok := bracketStart(f, delta, math.Pi/2)
	if !ok {
		return 0
	}
	lat, _ := newton(f, df, start, solverTolerance, math.Pi/2, solverMaxIter)
	return lat
}

func (p *Polyconic) PixelToSpherical(x, y float64) (Surface, bool) {
	offX := x + p.halfW() - p.centerX
	offY := y + p.halfH() - p.centerY
	X := mathutil.TwoPi * (offX/float64(p.width) - 0.5) / p.scale
	Y := math.Pi * (0.5 - offY/float64(p.height)) / p.scale

	lat := polyconicLat(X, Y)
	if math.Abs(lat) > math.Pi/2 {
		return Surface{}, false
	}

	var lon float64
	if math.Sin(lat) == 0 {
		lon = X
	} else {
		tanLat := math.Tan(lat)
		lon = math.Atan2(X*tanLat, 1-(Y-lat)*tanLat) / math.Sin(lat)
	}
	if math.Abs(lon) > math.Pi {
		return Surface{}, false
	}
	return p.surface(lat, lon, 1)
}

func (p *Polyconic) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = p.viewFromBody(lat, lon)

	var X, Y float64
	tanLat := math.Tan(lat)
	if tanLat == 0 {
		X = lon
	} else {
		E := lon * math.Sin(lat)
		X = math.Sin(E) / tanLat
		Y = lat + (1-math.Cos(E))/tanLat
	}

	x := float64(p.width)*(X*p.scale/mathutil.TwoPi+0.5) + p.centerX - p.halfW()
	y := float64(p.height)*(0.5-Y*p.scale/math.Pi) + p.centerY - p.halfH()
	return x, y, p.inImage(x, y)
}
