package raster

import (
	"image"
	"image/color"
	"math"

	"planet-renderer/internal/mathutil"
)

// Map is an equirectangular surface map. By default it spans the whole
// sphere with longitude -π at the left edge and latitude π/2 at the top.
type Map struct {
	img      *image.NRGBA
	startLat float64
	startLon float64
	delLat   float64
	delLon   float64

	// bounded maps cover only a window; samples outside it get fill.
	bounded bool
	fill    color.NRGBA
}

// NewMap wraps a whole-sphere map image.
func NewMap(img *image.NRGBA) *Map {
	b := img.Bounds()
	return &Map{
		img:      img,
		startLat: math.Pi / 2,
		startLon: -math.Pi,
		delLat:   math.Pi / float64(b.Dy()),
		delLon:   mathutil.TwoPi / float64(b.Dx()),
	}
}

// NewBoundedMap wraps a map of the window whose upper-left corner is
// (startLat, startLon) and which spans height × width radians.
func NewBoundedMap(img *image.NRGBA, startLat, startLon, height, width float64, fill color.NRGBA) *Map {
	b := img.Bounds()
	return &Map{
		img:      img,
		startLat: startLat,
		startLon: startLon,
		delLat:   height / float64(b.Dy()),
		delLon:   width / float64(b.Dx()),
		bounded:  true,
		fill:     fill,
	}
}

// Bounded reports whether the map covers only part of the sphere.
func (m *Map) Bounded() bool { return m.bounded }

// Bounds returns the covered window as start latitude, start longitude,
// height and width in radians.
func (m *Map) Bounds() (startLat, startLon, height, width float64) {
	b := m.img.Bounds()
	return m.startLat, m.startLon, m.delLat * float64(b.Dy()), m.delLon * float64(b.Dx())
}

// Sample returns the bilinearly filtered map color at (lat, lon). Longitude
// wraps across the seam; latitude clamps at the poles.
func (m *Map) Sample(lat, lon float64) color.NRGBA {
	w := m.img.Rect.Dx()
	h := m.img.Rect.Dy()

	lon = math.Mod(lon, mathutil.TwoPi)
	if lon > math.Pi {
		lon -= mathutil.TwoPi
	}

	fx := (lon - m.startLon) / m.delLon
	fy := (m.startLat - lat) / m.delLat
	if m.bounded && (fx < 0 || fx >= float64(w) || fy < 0 || fy >= float64(h)) {
		return m.fill
	}

	fx = math.Max(-0.5, math.Min(fx, float64(w)-0.5))
	fy = math.Max(-0.5, math.Min(fy, float64(h)-0.5))

	x0 := int(math.Floor(fx))
	x1 := x0 + 1
	if x0 < 0 {
		x0 = w - 1
	}
	if x1 >= w {
		x1 = 0
	}
	y0 := int(math.Floor(fy))
	y1 := y0 + 1
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= h {
		y1 = h - 1
	}
	dx := fx - math.Floor(fx)
	dy := fy - math.Floor(fy)

	pix := m.img.Pix
	org := m.img.Rect.Min

	// Four texels
	i00 := m.img.PixOffset(org.X+x0, org.Y+y0)
	i10 := m.img.PixOffset(org.X+x1, org.Y+y0)
	i01 := m.img.PixOffset(org.X+x0, org.Y+y1)
	i11 := m.img.PixOffset(org.X+x1, org.Y+y1)

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for k := 0; k < 4; k++ {
		v := float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 + float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11
		out[k] = uint8(v + 0.5)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}
