// Package projection maps between image pixels and planetographic
// latitude/longitude under a family of cartographic projections.
//
// All angles are radians. Pixel coordinates grow right and down. Instances
// are immutable after construction and safe for concurrent use.
package projection

import (
	"math"

	"planet-renderer/internal/logging"
	"planet-renderer/internal/mathutil"
)

// Projection is a bidirectional pixel <-> sphere mapping.
type Projection interface {
	// PixelToSpherical returns the surface point imaged at (x, y), or false
	// when no point of the body maps there.
	PixelToSpherical(x, y float64) (Surface, bool)
	// SphericalToPixel returns the pixel for a surface point, or false when
	// the point is hidden or falls outside the image.
	SphericalToPixel(lat, lon float64) (x, y float64, ok bool)
	// IsWrapAround reports whether longitude ±π is a continuous seam.
	IsWrapAround() bool
	// Radius is the effective radius factor after projection-specific scaling.
	Radius() float64
}

// Surface is the result of an inverse mapping.
type Surface struct {
	Lat float64
	Lon float64
	// Darkening is the limb-darkening factor in [0, 1]. Projections that do
	// not model a lit globe report 1.
	Darkening float64
}

// Options are the construction inputs shared by every projection.
type Options struct {
	Flipped int // +1, or -1 for retrograde longitudes

	Width   int
	Height  int
	CenterX float64
	CenterY float64

	// Radius is the body radius as a fraction of the image height.
	Radius float64
	// Range is the observer distance in body radii (Orthographic only).
	Range float64

	Latitude  float64 // sub-observer latitude
	Longitude float64 // sub-observer longitude
	Rotate    float64 // map rotation about the view axis

	// Params holds projection-specific values such as a standard latitude.
	Params []float64

	Logger *logging.Logger
}

const (
	DefaultRadius = 0.45
	DefaultRange  = 1000
)

// DefaultOptions returns options for a w×h image centered in the frame.
func DefaultOptions(w, h int) Options {
	return Options{
		Flipped: 1,
		Width:   w,
		Height:  h,
		CenterX: float64(w / 2),
		CenterY: float64(h / 2),
		Radius:  DefaultRadius,
		Range:   DefaultRange,
	}
}

func (o Options) param(i int) (float64, bool) {
	if i < len(o.Params) {
		return o.Params[i], true
	}
	return 0, false
}

// base holds the state every projection shares.
type base struct {
	width   int
	height  int
	flipped float64
	centerX float64
	centerY float64
	radius  float64
	wrap    bool

	// rotate is false when all three view angles are zero; both matrices
	// are then the identity and never applied.
	rotate     bool
	viewToBody mathutil.Mat3
	bodyToView mathutil.Mat3

	log *logging.Logger
}

func newBase(opts Options, wrap bool) base {
	b := base{
		width:   opts.Width,
		height:  opts.Height,
		flipped: 1,
		centerX: opts.CenterX,
		centerY: opts.CenterY,
		radius:  opts.Radius,
		wrap:    wrap,
		log:     opts.Logger,
	}
	if opts.Flipped < 0 {
		b.flipped = -1
	}
	if b.radius <= 0 {
		b.radius = DefaultRadius
	}
	if b.log == nil {
		b.log = logging.Default()
	}

	lat := opts.Latitude
	lon := opts.Longitude * b.flipped
	rot := opts.Rotate
	b.rotate = lat != 0 || lon != 0 || rot != 0
	b.viewToBody = mathutil.FrameXYZ(rot, lat, -lon)
	b.bodyToView = mathutil.FrameZYX(-rot, -lat, lon)
	return b
}

func (b *base) IsWrapAround() bool { return b.wrap }

func (b *base) Radius() float64 { return b.radius }

// RotationEnabled reports whether a view rotation is applied.
func (b *base) RotationEnabled() bool { return b.rotate }

// bodyFromView undoes the view rotation for an inverse result and
// renormalizes the longitude.
func (b *base) bodyFromView(lat, lon float64) (float64, float64) {
	if b.rotate {
		lat, lon = b.viewToBody.RotateLatLon(lat, lon)
	}
	return lat, mathutil.NormalizeLon(lon)
}

// viewFromBody applies the view rotation ahead of a forward transform.
func (b *base) viewFromBody(lat, lon float64) (float64, float64) {
	if b.rotate {
		lat, lon = b.bodyToView.RotateLatLon(lat, lon)
	}
	return lat, lon
}

func (b *base) surface(lat, lon, darkening float64) (Surface, bool) {
	lat, lon = b.bodyFromView(lat, lon)
	return Surface{Lat: lat, Lon: lon, Darkening: darkening}, true
}

func (b *base) inImage(x, y float64) bool {
	return x >= 0 && x < float64(b.width) && y >= 0 && y < float64(b.height)
}

// halfW and halfH reproduce the integer halving the layouts are framed on.
func (b *base) halfW() float64 { return float64(b.width / 2) }
func (b *base) halfH() float64 { return float64(b.height / 2) }

// standardLatitude validates params[0] against (0, π/2) by magnitude and
// falls back to def with a warning.
func standardLatitude(opts Options, log *logging.Logger, def float64, name string, keepSign bool) float64 {
	p, ok := opts.param(0)
	if !ok {
		return def
	}
	if math.Abs(p) > 0 && math.Abs(p) < math.Pi/2 {
		if keepSign {
			return p
		}
		return math.Abs(p)
	}
	log.Warn("Projection latitude of %.1f degrees is out of range for %s projection. Using %.1f degrees.",
		mathutil.Rad2Deg(p), name, mathutil.Rad2Deg(def))
	return def
}
