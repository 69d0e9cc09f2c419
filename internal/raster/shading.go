package raster

import (
	"image/color"
	"math"
)

// Gamma of the map images.
const (
	SRGBGamma = 2.2
	invGamma  = 1.0 / SRGBGamma
)

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, SRGBGamma)
	}
}

// Darken scales the color channels of c by f in [0, 1]. With linear set the
// scaling happens in linear light, otherwise directly on the sRGB values.
func Darken(c color.NRGBA, f float64, linear bool) color.NRGBA {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return color.NRGBA{A: c.A}
	}
	if !linear {
		return color.NRGBA{
			R: uint8(float64(c.R) * f),
			G: uint8(float64(c.G) * f),
			B: uint8(float64(c.B) * f),
			A: c.A,
		}
	}
	return color.NRGBA{
		R: toSRGB(srgbToLinear[c.R] * f),
		G: toSRGB(srgbToLinear[c.G] * f),
		B: toSRGB(srgbToLinear[c.B] * f),
		A: c.A,
	}
}

func toSRGB(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Pow(v, invGamma)*255 + 0.5)
}
