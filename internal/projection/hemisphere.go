package projection

import "math"

// Hemisphere shows the two hemispheres side by side, each as an
// orthographic disk, with limb darkening.
type Hemisphere struct {
	base
	dispScale float64
	photo     *photoTable
}

func NewHemisphere(opts Options) *Hemisphere {
	h := &Hemisphere{base: newBase(opts, false)}
	if h.width/2 < h.height {
		h.dispScale = float64(h.width / 2)
	} else {
		h.dispScale = float64(h.height)
	}
	h.radius /= 2
	h.dispScale *= 2
	h.photo = newPhotoTable()
	return h
}

func (h *Hemisphere) PixelToSpherical(x, y float64) (Surface, bool) {
	X := (x - h.centerX) / h.dispScale
	Y := -(y - h.centerY) / h.dispScale

	arg, ok := unitArg(Y / h.radius)
	if !ok {
		return Surface{}, false
	}
	lat := math.Asin(arg)

	var lon float64
	if X < 0 {
		X += 0.25
		if arg, ok = unitArg(-X / (h.radius * math.Cos(lat))); !ok {
			return Surface{}, false
		}
		lon = math.Acos(arg) - math.Pi
	} else {
		X -= 0.25
		if arg, ok = unitArg(-X / (h.radius * math.Cos(lat))); !ok {
			return Surface{}, false
		}
		lon = math.Acos(arg)
	}
	lon -= math.Pi / 2

	darkening := h.photo.Lookup(math.Abs(math.Cos(lon) * math.Cos(lat)))
	return h.surface(lat, lon, darkening)
}

func (h *Hemisphere) SphericalToPixel(lat, lon float64) (float64, float64, bool) {
	lat, lon = h.viewFromBody(lat, lon)

	lon += math.Pi / 2
	if lon > math.Pi {
		lon -= 2 * math.Pi
	}

	Y := h.radius * math.Sin(lat)
	var X float64
	if lon < 0 {
		X = h.radius*math.Cos(lat)*math.Sin(lon-3*math.Pi/2) - 0.25
	} else {
		X = h.radius*math.Cos(lat)*math.Sin(lon-math.Pi/2) + 0.25
	}

	x := h.centerX + h.dispScale*X
	y := h.centerY - h.dispScale*Y
	return x, y, h.inImage(x, y)
}
