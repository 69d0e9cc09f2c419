package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Gnomonic projects from the body center onto a tangent plane. Only the
// near hemisphere is representable.
type Gnomonic struct {
	base
	scale float64
}

// NewGnomonic reads the latitude imaged at the top edge from Params[0]
// (default 45°).
func NewGnomonic(opts Options) *Gnomonic {
	g := &Gnomonic{base: newBase(opts, false)}
	lat1 := standardLatitude(opts, g.log, mathutil.Deg2Rad(45), "Gnomonic", true)
	g.scale = 1 / math.Tan(lat1)
	return g
}

func (g *Gnomonic) PixelToSpherical(x, y float64) (Surface, bool) {
	offX := x + g.halfW() - g.centerX
	offY := y + g.halfH() - g.centerY
	X := offX/float64(g.width) - 0.5
	Y := 0.5 - offY/float64(g.height)

	lon := math.Atan(2 * X / g.scale)
	lat := math.Atan(2 * Y / g.scale * math.Cos(lon))
	if math.Abs(lon) > math.Pi {
		return Surface{}, false
	}
	return g.surface(lat, lon, 1)
}

func (g *Gnomonic) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = g.viewFromBody(lat, lon)
	x, y, ok := g.forward(lat, lon)
	if !ok {
		return x, y, false
	}
	return x, y, g.inImage(x, y)
}

// forward is the unchecked tangent-plane mapping. It fails only for the far
// hemisphere.
func (g *Gnomonic) forward(lat, lon float64) (float64, float64, bool) {
	if math.Abs(lon) > math.Pi/2 {
		return 0, 0, false
	}
	X := 0.5 * g.scale * math.Tan(lon)
	Y := 0.5 * g.scale * math.Tan(lat) / math.Cos(lon)

	x := float64(g.width)*(X+0.5) + g.centerX - g.halfW()
	y := float64(g.height)*(0.5-Y) + g.centerY - g.halfH()
	return x, y, true
}
