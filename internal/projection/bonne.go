package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Bonne is the Bonne pseudo-conic equal-area projection. A standard
// parallel of zero degenerates to Sanson-Flamsteed (sinusoidal).
type Bonne struct {
	base
	sfl     bool
	y0      float64
	sign    float64
	scale   float64
	yOffset float64
}

// NewBonne reads the standard parallel from Params[0] (default 50°) and fits
// the projected outline into the image height.
func NewBonne(opts Options) *Bonne {
	b := &Bonne{base: newBase(opts, false)}

	lat1 := mathutil.Deg2Rad(50)
	if p, ok := opts.param(0); ok {
		if math.Abs(p) < math.Pi/2 {
			lat1 = p
		} else {
			b.log.Warn("Projection latitude of %.1f degrees is out of range for Bonne projection. Using %.1f degrees.",
				mathutil.Rad2Deg(p), mathutil.Rad2Deg(lat1))
		}
	}

	b.sfl = math.Tan(lat1) == 0
	if b.sfl {
		b.scale = 1
	} else {
		b.y0 = 1/math.Tan(lat1) + lat1
		b.sign = lat1 / math.Abs(lat1)

		h := float64(b.height)
		// Outline along the antimeridian, one sample per image row.
		top, bottom := scanLatitudes(b.height, 0, h, func(lat float64) (float64, bool) {
			R := b.y0 - lat
			A := math.Pi * math.Cos(lat) / R
			return h * (0.5 - (b.y0-R*math.Cos(A))/math.Pi), true
		})
		b.scale = h / (bottom - top)
		b.yOffset = 0.5 * (b.scale * (h - bottom - top))
	}
	b.scale *= 2 * b.radius
	return b
}

func (b *Bonne) PixelToSpherical(x, y float64) (Surface, bool) {
	offX := x + b.halfW() - b.centerX
	offY := y + b.halfH() - b.centerY - b.yOffset
	X := mathutil.TwoPi * (offX/float64(b.width) - 0.5) / b.scale
	Y := b.y0 - math.Pi*(0.5-offY/float64(b.height))/b.scale

	var lat, lon float64
	if b.sfl {
		if math.Abs(Y) > math.Pi/2 {
			return Surface{}, false
		}
		lat = -Y
		if math.Cos(lat) != 0 {
			lon = X / math.Cos(lat)
		}
	} else {
		rTheta := b.sign * math.Hypot(X, Y)
		lat = b.y0 - rTheta
		if math.Abs(lat) > math.Pi/2 {
			return Surface{}, false
		}
		aPhi := math.Atan2(X/rTheta, Y/rTheta)
		if math.Cos(lat) != 0 {
			lon = aPhi * rTheta / math.Cos(lat)
		}
	}
	if math.Abs(lon) > math.Pi {
		return Surface{}, false
	}
	return b.surface(lat, lon, 1)
}

func (b *Bonne) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = b.viewFromBody(lat, lon)

	var X, Y float64
	if b.sfl {
		X = lon * math.Cos(lat)
		Y = lat
	} else {
		rTheta := b.y0 - lat
		aPhi := lon * math.Cos(lat) / rTheta
		X = rTheta * math.Sin(aPhi)
		Y = b.y0 - rTheta*math.Cos(aPhi)
	}

	x := float64(b.width)*(X*b.scale/mathutil.TwoPi+0.5) + b.centerX - b.halfW()
	y := float64(b.height)*(0.5-Y*b.scale/math.Pi) + b.yOffset + b.centerY - b.halfH()
	return x, y, b.inImage(x, y)
}
