package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"planet-renderer/internal/logging"
	"planet-renderer/internal/projection"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func projOptions(w, h int) projection.Options {
	opts := projection.DefaultOptions(w, h)
	opts.Logger = logging.Discard()
	return opts
}

func TestMapSample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		img.SetNRGBA(0, y, red)
		img.SetNRGBA(1, y, blue)
	}
	m := NewMap(img)
	require.False(t, m.Bounded())

	require.Equal(t, red, m.Sample(0, -math.Pi))
	require.Equal(t, blue, m.Sample(0, 0))
	require.Equal(t, m.Sample(0.3, 0), m.Sample(0.3, 2*math.Pi))

	// The seam blends the last and first columns.
	seam := m.Sample(0, math.Pi)
	require.InDelta(t, 128, int(seam.R), 1)
	require.InDelta(t, 128, int(seam.B), 1)

	// Poles clamp.
	require.Equal(t, blue, m.Sample(math.Pi/2, 0))
	require.Equal(t, blue, m.Sample(-math.Pi/2, 0))
}

func TestBoundedMapSample(t *testing.T) {
	fill := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	m := NewBoundedMap(solidImage(10, 10, white), 0.5, -0.5, 1, 1, fill)
	require.True(t, m.Bounded())
	require.Equal(t, white, m.Sample(0, 0))
	require.Equal(t, fill, m.Sample(0.9, 0))
	require.Equal(t, fill, m.Sample(0, 1))

	lat, lon, h, w := m.Bounds()
	require.Equal(t, 0.5, lat)
	require.Equal(t, -0.5, lon)
	require.InDelta(t, 1, h, 1e-12)
	require.InDelta(t, 1, w, 1e-12)
}

func TestDarken(t *testing.T) {
	require.Equal(t, white, Darken(white, 1, false))
	require.Equal(t, color.NRGBA{A: 255}, Darken(white, 0, true))
	require.Equal(t, uint8(127), Darken(white, 0.5, false).R)
	require.InDelta(t, 186, int(Darken(white, 0.5, true).R), 1)
	require.Equal(t, uint8(255), Darken(white, 0.5, true).A)
}

func TestRenderNoProjection(t *testing.T) {
	_, err := Render(nil, NewMap(solidImage(4, 2, white)), Options{Width: 8, Height: 8})
	require.ErrorIs(t, err, ErrNoProjection)

	p := projection.NewRectangular(projOptions(8, 8))
	_, err = Render(p, NewMap(solidImage(4, 2, white)), Options{})
	require.Error(t, err)
}

func TestRenderOrthographic(t *testing.T) {
	p := projection.NewOrthographic(projOptions(64, 64))
	img, err := Render(p, NewMap(solidImage(8, 4, white)), Options{
		Width: 64, Height: 64, Workers: 3, Logger: logging.Discard(),
	})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	// Off the globe stays transparent.
	require.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{}, img.NRGBAAt(63, 63))

	// Full brightness at the sub-observer point, darker toward the limb.
	require.Equal(t, white, img.NRGBAAt(32, 32))
	limb := img.NRGBAAt(60, 32)
	require.Equal(t, uint8(255), limb.A)
	require.Less(t, limb.R, uint8(200))

	flat, err := Render(p, NewMap(solidImage(8, 4, white)), Options{
		Width: 64, Height: 64, NoDarkening: true, Logger: logging.Discard(),
	})
	require.NoError(t, err)
	require.Equal(t, white, flat.NRGBAAt(60, 32))
}

func TestRenderDeterministicAcrossWorkers(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 36, 18))
	for y := 0; y < 18; y++ {
		for x := 0; x < 36; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 14), B: 90, A: 255})
		}
	}
	p := projection.NewMollweide(projOptions(120, 60))

	one, err := Render(p, NewMap(src), Options{Width: 120, Height: 60, Workers: 1, Logger: logging.Discard()})
	require.NoError(t, err)
	many, err := Render(p, NewMap(src), Options{Width: 120, Height: 60, Workers: 8, Logger: logging.Discard()})
	require.NoError(t, err)
	require.Equal(t, one.Pix, many.Pix)
}

func TestRenderFlippedMirrorsLongitudes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		img.SetNRGBA(0, y, red)
		img.SetNRGBA(1, y, green)
		img.SetNRGBA(2, y, blue)
		img.SetNRGBA(3, y, white)
	}
	p := projection.NewRectangular(projOptions(40, 20))

	normal, err := Render(p, NewMap(img), Options{Width: 40, Height: 20, Logger: logging.Discard()})
	require.NoError(t, err)
	flipped, err := Render(p, NewMap(img), Options{Width: 40, Height: 20, Flipped: -1, Logger: logging.Discard()})
	require.NoError(t, err)

	// Pixel 10 is longitude -π/2; flipped it samples +π/2.
	require.Equal(t, green, normal.NRGBAAt(10, 10))
	require.Equal(t, white, flipped.NRGBAAt(10, 10))
}

func TestRenderOverlays(t *testing.T) {
	p := projection.NewRectangular(projOptions(360, 180))
	img, err := Render(p, NewMap(solidImage(8, 4, white)), Options{
		Width:   360,
		Height:  180,
		Grid:    Grid{Enabled: true, Grid1: 6, Grid2: 15, Color: green},
		Markers: []Marker{{Name: "origin", Lat: 0, Lon: 0, Radius: 3, Color: red}},
		Logger:  logging.Discard(),
	})
	require.NoError(t, err)

	greens := 0
	for y := 0; y < 180; y++ {
		for x := 0; x < 360; x++ {
			if img.NRGBAAt(x, y) == green {
				greens++
			}
		}
	}
	require.Greater(t, greens, 360)

	found := false
	for y := 85; y <= 95 && !found; y++ {
		for x := 175; x <= 185; x++ {
			if img.NRGBAAt(x, y) == red {
				found = true
				break
			}
		}
	}
	require.True(t, found, "marker ring near the map center")
}

func TestRenderOutlines(t *testing.T) {
	for _, kind := range []projection.Kind{projection.KindTSC, projection.KindIcosagnomonic} {
		p, err := projection.New(kind, projOptions(200, 150))
		require.NoError(t, err)
		img, err := Render(p, NewMap(solidImage(8, 4, white)), Options{
			Width: 200, Height: 150, Outlines: true, Logger: logging.Discard(),
		})
		require.NoError(t, err)

		blacks := 0
		for i := 0; i < len(img.Pix); i += 4 {
			if img.Pix[i] == 0 && img.Pix[i+1] == 0 && img.Pix[i+2] == 0 && img.Pix[i+3] == 255 {
				blacks++
			}
		}
		require.Greater(t, blacks, 100, kind.String())
	}
}

func TestFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(3, 2, blue)
	require.Equal(t, blue, fb.At(2, 1))
	fb.Set(1, 1, red)
	fb.Set(-1, 0, red)
	fb.Set(3, 0, red)
	require.Equal(t, red, fb.At(1, 1))
	img := fb.Image()
	require.Equal(t, red, img.NRGBAAt(1, 1))
	require.Equal(t, blue, img.NRGBAAt(0, 0))
}
