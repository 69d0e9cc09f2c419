package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Rectangular is the equirectangular (plate carrée) projection.
type Rectangular struct {
	base
	startLat, startLon float64
	delLat, delLon     float64
	// bounded maps a fixed lat/lon window: no wrap, no view rotation.
	bounded bool
}

// NewRectangular covers the whole sphere, longitude -π at the left edge.
func NewRectangular(opts Options) *Rectangular {
	return &Rectangular{
		base:     newBase(opts, true),
		startLat: math.Pi / 2,
		startLon: -math.Pi,
		delLat:   math.Pi / float64(opts.Height),
		delLon:   mathutil.TwoPi / float64(opts.Width),
	}
}

// NewRectangularBounds maps the window whose upper-left corner is
// (startLat, startLon) and which spans mapHeight × mapWidth radians.
func NewRectangularBounds(opts Options, startLat, startLon, mapHeight, mapWidth float64) *Rectangular {
	opts.Latitude, opts.Longitude, opts.Rotate = 0, 0, 0
	r := &Rectangular{
		base:     newBase(opts, false),
		startLat: startLat,
		bounded:  true,
	}
	r.startLon = startLon * r.flipped
	r.delLat = mapHeight / float64(opts.Height)
	r.delLon = mapWidth / float64(opts.Width) * r.flipped
	return r
}

func (r *Rectangular) PixelToSpherical(x, y float64) (Surface, bool) {
	lon := x*r.delLon + r.startLon
	lat := r.startLat - y*r.delLat
	return r.surface(lat, lon, 1)
}

func (r *Rectangular) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = r.viewFromBody(lat, lon)
	lon = mathutil.NormalizeLon(lon)

	x := (lon - r.startLon) / r.delLon
	y := (r.startLat - lat) / r.delLat
	if r.bounded {
		return x, y, r.inImage(x, y)
	}

	w := float64(r.width)
	if x >= w {
		x -= w
	} else if x < 0 {
		x += w
	}
	if y >= float64(r.height) {
		y = float64(r.height) - 1
	}
	return x, y, true
}
