package raster

import (
	"image/color"
	"math"

	"planet-renderer/internal/projection"
)

var black = color.NRGBA{A: 255}

func plot(fb *FrameBuffer, x, y float64, c color.NRGBA) {
	fb.Set(int(math.Floor(x)), int(math.Floor(y)), c)
}

// drawGrid dots parallels and meridians every π/2/Grid1 radians.
func drawGrid(fb *FrameBuffer, proj projection.Projection, g Grid) {
	if g.Grid1 <= 0 || g.Grid2 <= 0 {
		return
	}
	major := math.Pi / 2 / float64(g.Grid1)
	minor := major / float64(g.Grid2)
	nMajorLat := 2 * g.Grid1
	nMinorLat := 2 * g.Grid1 * g.Grid2
	nMajorLon := 4 * g.Grid1
	nMinorLon := 4 * g.Grid1 * g.Grid2

	// Parallels
	for i := 0; i <= nMajorLat; i++ {
		lat := -math.Pi/2 + float64(i)*major
		for k := 0; k <= nMinorLon; k++ {
			if x, y, ok := proj.SphericalToPixel(lat, -math.Pi+float64(k)*minor); ok {
				plot(fb, x, y, g.Color)
			}
		}
	}
	// Meridians
	for i := 0; i <= nMinorLat; i++ {
		lat := -math.Pi/2 + float64(i)*minor
		for k := 0; k <= nMajorLon; k++ {
			if x, y, ok := proj.SphericalToPixel(lat, -math.Pi+float64(k)*major); ok {
				plot(fb, x, y, g.Color)
			}
		}
	}
}

// drawMarker draws a ring around the marker position. On wrap-around
// layouts it is repeated one image width to either side.
func drawMarker(fb *FrameBuffer, proj projection.Projection, mk Marker, flipped float64, wrap bool) {
	x, y, ok := proj.SphericalToPixel(mk.Lat, mk.Lon*flipped)
	if !ok {
		return
	}
	r := mk.Radius
	if r <= 0 {
		r = 3
	}
	c := mk.Color
	if c == (color.NRGBA{}) {
		c = color.NRGBA{R: 255, A: 255}
	}
	shifts := []float64{0}
	if wrap {
		w := float64(fb.Width)
		shifts = append(shifts, -w, w)
	}
	for _, dx := range shifts {
		drawRing(fb, x+dx, y, float64(r), c)
	}
}

func drawRing(fb *FrameBuffer, cx, cy, r float64, c color.NRGBA) {
	n := int(2*math.Pi*r) + 8
	for i := 0; i < n; i++ {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		plot(fb, cx+r*co, cy+r*s, c)
	}
}

// drawLine steps along the longer axis and stamps a square brush of the
// given thickness at every step.
func drawLine(fb *FrameBuffer, x0, y0, x1, y1 float64, thickness int, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	half := thickness / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := int(math.Floor(x0 + t*dx))
		py := int(math.Floor(y0 + t*dy))
		for oy := -half; oy < thickness-half; oy++ {
			for ox := -half; ox < thickness-half; ox++ {
				fb.Set(px+ox, py+oy, c)
			}
		}
	}
}

// drawOutlines draws the face layout of the cube and icosahedron
// projections; other projections have none.
func drawOutlines(fb *FrameBuffer, proj projection.Projection) {
	switch p := proj.(type) {
	case *projection.TSC:
		drawTSCTabs(fb)
		for face := 0; face < 6; face++ {
			x, y, hw, hh := p.FaceCenter(face)
			drawLine(fb, x-hw, y-hh, x+hw, y-hh, 1, black)
			drawLine(fb, x+hw, y-hh, x+hw, y+hh, 1, black)
			drawLine(fb, x+hw, y+hh, x-hw, y+hh, 1, black)
			drawLine(fb, x-hw, y+hh, x-hw, y-hh, 1, black)
		}
	case *projection.Icosagnomonic:
		for _, f := range p.Faces() {
			for k := 0; k < 3; k++ {
				a, b := f[k], f[(k+1)%3]
				drawLine(fb, a.X, a.Y, b.X, b.Y, 1, black)
			}
		}
	}
}

// drawTSCTabs adds glue tabs along the equatorial faces so the cube
// layout can be cut out and folded.
func drawTSCTabs(fb *FrameBuffer) {
	const thickness = 3
	width, height := fb.Width, fb.Height
	block := width / 4
	hp0 := float64((height + block) / 2)
	hp1 := hp0 + float64(height/30)
	hm0 := float64((height - block) / 2)
	hm1 := hm0 - float64(height/30)
	w40 := float64(width / 40)
	w4 := float64(width / 4)
	w940 := float64(9 * width / 40)

	for i := 0; i < 4; i++ {
		if i == 1 {
			continue
		}
		x0 := float64(i * block)
		drawLine(fb, x0, hp0, x0+w40, hp1, thickness, black)
		drawLine(fb, x0+w4, hp0, x0+w940, hp1, thickness, black)
		drawLine(fb, x0+w40, hp1, x0+w940, hp1, thickness, black)
		drawLine(fb, x0, hm0, x0+w40, hm1, thickness, black)
		drawLine(fb, x0+w4, hm0, x0+w940, hm1, thickness, black)
		drawLine(fb, x0+w40, hm1, x0+w940, hm1, thickness, black)
	}
}
