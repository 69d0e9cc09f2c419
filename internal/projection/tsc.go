package projection

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// TSC is the tangential spherical cube: six gnomonic-like faces unfolded in
// a cross, faces 1-4 around the equator with 0 above and 5 below face 1.
type TSC struct {
	base
	xScale, yScale   float64
	trueW, trueH     int
	xOffset, yOffset int
	xPixel, yPixel   [6]float64
}

// tscFaceCenter holds the (lat, lon) at the center of each cube face.
var tscFaceCenter = [6][2]float64{
	{math.Pi / 2, 0},
	{0, 0},
	{0, math.Pi / 2},
	{0, math.Pi},
	{0, -math.Pi / 2},
	{-math.Pi / 2, 0},
}

func NewTSC(opts Options) *TSC {
	t := &TSC{
		base:   newBase(opts, false),
		xScale: 1,
		yScale: 2.0 / 3.0,
	}
	t.trueW = t.width
	t.trueH = int(0.75 * float64(t.trueW))
	t.xOffset = t.trueW / 8
	t.yOffset = (t.trueH - t.height) / 2

	for i, c := range tscFaceCenter {
		x, y := t.forward(c[0], c[1])
		t.xPixel[i] = x + float64(t.xOffset)
		t.yPixel[i] = y + float64(t.yOffset)
	}
	return t
}

// FaceCenter returns the pixel position of a face center and the face's
// half extent, for drawing the cube outline.
func (t *TSC) FaceCenter(face int) (x, y, halfW, halfH float64) {
	return t.xPixel[face] - float64(t.xOffset), t.yPixel[face] - float64(t.yOffset),
		float64(t.trueW / 8), float64(t.trueH / 6)
}

// xiEtaZeta maps body direction cosines into a face's local frame.
func xiEtaZeta(face int, l, m, n float64) (xi, eta, zeta float64) {
	switch face {
	case 0:
		return m, -l, n
	case 1:
		return m, n, l
	case 2:
		return -l, n, m
	case 3:
		return -m, n, -l
	case 4:
		return l, n, -m
	default:
		return m, l, -n
	}
}

// lmn is the inverse of xiEtaZeta.
func lmn(face int, xi, eta, zeta float64) (l, m, n float64) {
	switch face {
	case 0:
		return -eta, xi, zeta
	case 1:
		return zeta, xi, eta
	case 2:
		return -xi, zeta, eta
	case 3:
		return -zeta, -xi, eta
	case 4:
		return xi, -zeta, eta
	default:
		return eta, xi, -zeta
	}
}

// face returns the cube face whose center is nearest to the layout position
// (x, y), or -1 when the point lies outside that face.
func (t *TSC) face(x, y float64) int {
	face := -1
	dist := float64(t.trueW)
	for i := range t.xPixel {
		d := math.Hypot(x-t.xPixel[i], y-t.yPixel[i])
		if d < dist {
			dist = d
			face = i
		}
	}
	if face < 0 {
		return -1
	}
	if math.Abs(x-t.xPixel[face]) > float64(t.trueW/8) {
		return -1
	}
	if math.Abs(y-t.yPixel[face]) > float64(t.trueH/6) {
		return -1
	}
	return face
}

func (t *TSC) PixelToSpherical(x, y float64) (Surface, bool) {
	offX := x + t.halfW() - t.centerX + float64(t.xOffset)
	offY := y + t.halfH() - t.centerY + float64(t.yOffset)
	X := mathutil.TwoPi * (offX/float64(t.trueW) - 0.5) / t.xScale
	Y := math.Pi * (0.5 - offY/float64(t.trueH)) / t.yScale

	face := t.face(offX, offY)
	if face < 0 {
		return Surface{}, false
	}

	latC, lonC := tscFaceCenter[face][0], tscFaceCenter[face][1]
	chi := 4 * (X - lonC) / math.Pi
	psi := 4 * (Y - latC) / math.Pi
	zeta := 1 / math.Sqrt(1+chi*chi+psi*psi)
	l, m, n := lmn(face, chi*zeta, psi*zeta, zeta)

	lat := math.Asin(n)
	lon := math.Atan2(m, l)
	return t.surface(lat, lon, 1)
}

func (t *TSC) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = t.viewFromBody(lat, lon)
	x, y := t.forward(lat, lon)
	return x, y, t.inImage(x, y)
}

// forward maps an unrotated surface point to its pixel without bounds checks.
func (t *TSC) forward(lat, lon float64) (float64, float64) {
	l := math.Cos(lat) * math.Cos(lon)
	m := math.Cos(lat) * math.Sin(lon)
	n := math.Sin(lat)

	var face int
	al, am, an := math.Abs(l), math.Abs(m), math.Abs(n)
	switch {
	case al >= am && al >= an:
		face = 1
		if l < 0 {
			face = 3
		}
	case am >= al && am >= an:
		face = 2
		if m < 0 {
			face = 4
		}
	default:
		face = 0
		if n < 0 {
			face = 5
		}
	}

	latC, lonC := tscFaceCenter[face][0], tscFaceCenter[face][1]
	xi, eta, zeta := xiEtaZeta(face, l, m, n)
	X := lonC + xi/zeta*math.Pi/4
	Y := latC + eta/zeta*math.Pi/4

	x := float64(t.trueW)*(X*t.xScale/mathutil.TwoPi+0.5) + t.centerX - t.halfW() - float64(t.xOffset)
	y := float64(t.trueH)*(0.5-Y*t.yScale/math.Pi) + t.centerY - t.halfH() - float64(t.yOffset)
	return x, y
}
