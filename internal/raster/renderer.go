package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"planet-renderer/internal/logging"
	"planet-renderer/internal/projection"
)

// ErrNoProjection is returned when Render is called without a projection.
var ErrNoProjection = errors.New("raster: no projection")

// Options control one rendering pass.
type Options struct {
	Width   int
	Height  int
	Flipped int // -1 mirrors map longitudes for retrograde bodies

	Background color.NRGBA
	// NoDarkening ignores the limb-darkening factor of lit projections.
	NoDarkening bool
	// LinearShading applies darkening in linear light.
	LinearShading bool

	Grid    Grid
	Markers []Marker
	// Outlines draws face edges for the cube and icosahedron layouts.
	Outlines bool

	Workers int
	Logger  *logging.Logger
}

// Grid is the latitude/longitude graticule. Lines are Grid1 per right
// angle, each drawn as Grid1*Grid2 dots per right angle.
type Grid struct {
	Enabled bool
	Grid1   int
	Grid2   int
	Color   color.NRGBA
}

// Marker is a point of interest drawn as a ring.
type Marker struct {
	Name   string
	Lat    float64
	Lon    float64
	Radius int
	Color  color.NRGBA
}

// Render draws the map m through proj into a new Width × Height image.
// Pixels that map to no surface point keep the background color.
func Render(proj projection.Projection, m *Map, opts Options) (*image.NRGBA, error) {
	if proj == nil {
		return nil, ErrNoProjection
	}
	if m == nil {
		return nil, errors.New("raster: no map")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", opts.Width, opts.Height)
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	flipped := 1.0
	if opts.Flipped < 0 {
		flipped = -1
	}

	start := time.Now()
	fb := NewFrameBuffer(opts.Width, opts.Height, opts.Background)

	// Row pool: each worker owns whole rows, so writes never overlap.
	rows := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				for i := 0; i < opts.Width; i++ {
					s, ok := proj.PixelToSpherical(float64(i), float64(j))
					if !ok {
						continue
					}
					c := m.Sample(s.Lat, s.Lon*flipped)
					if !opts.NoDarkening {
						c = Darken(c, s.Darkening, opts.LinearShading)
					}
					fb.Set(i, j, c)
				}
			}
		}()
	}
	for j := 0; j < opts.Height; j++ {
		rows <- j
	}
	close(rows)
	wg.Wait()

	if opts.Grid.Enabled {
		drawGrid(fb, proj, opts.Grid)
	}
	if opts.Outlines {
		drawOutlines(fb, proj)
	}
	for _, mk := range opts.Markers {
		drawMarker(fb, proj, mk, flipped, proj.IsWrapAround() && !m.Bounded())
	}

	log.Debug("rendered %dx%d in %s", opts.Width, opts.Height, time.Since(start).Round(time.Millisecond))
	return fb.Image(), nil
}
