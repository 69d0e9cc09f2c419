package batch

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/postprocess"
	"planet-renderer/internal/projection"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/texture"
)

// MapSource supplies decoded map images by name or by file path.
type MapSource interface {
	texture.Resolver
	Load(path string) *image.NRGBA
}

// LoadMap returns the map named by cfg.Map: an existing file path is read
// directly, anything else is looked up by stem.
func LoadMap(cfg config.Config, maps MapSource) (*raster.Map, error) {
	if cfg.Map == "" {
		return nil, fmt.Errorf("batch: no map configured")
	}
	var img *image.NRGBA
	if info, err := os.Stat(cfg.Map); err == nil && !info.IsDir() {
		img = maps.Load(cfg.Map)
	} else {
		img = maps.Resolve(cfg.Map)
	}
	if img == nil {
		return nil, fmt.Errorf("batch: map %q could not be loaded", cfg.Map)
	}

	if cfg.MapBounds != nil {
		fill, err := config.ParseColor(cfg.Background)
		if err != nil {
			return nil, err
		}
		lat, lon, h, w := cfg.MapBounds.Window()
		return raster.NewBoundedMap(img, lat, lon, h, w, fill), nil
	}
	return raster.NewMap(img), nil
}

// ResolveProjection rewrites cfg.Projection as the full name of the
// projection it selects. "random" is drawn here, once, so the name reported
// for a render is the projection actually used.
func ResolveProjection(cfg config.Config) (config.Config, error) {
	kind, err := projection.ParseKind(cfg.Projection)
	if err != nil {
		return cfg, err
	}
	if kind == projection.KindRandom {
		kind = projection.RandomKind(nil)
	}
	cfg.Projection = kind.String()
	return cfg, nil
}

// NewProjection builds the configured projection for a w×h image. A
// rectangular projection of a bounded map shows exactly the map window.
func NewProjection(cfg config.Config, w, h int, log *logging.Logger) (projection.Projection, error) {
	kind, err := projection.ParseKind(cfg.Projection)
	if err != nil {
		return nil, err
	}
	opts := cfg.Options(w, h)
	opts.Logger = log
	if kind == projection.KindRectangular && cfg.MapBounds != nil {
		lat, lon, mh, mw := cfg.MapBounds.Window()
		return projection.NewRectangularBounds(opts, lat, lon, mh, mw), nil
	}
	return projection.New(kind, opts)
}

// RenderOptions converts the render settings of cfg for a w×h target.
func RenderOptions(cfg config.Config, w, h, workers int, log *logging.Logger) (raster.Options, error) {
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return raster.Options{}, err
	}
	gridColor, err := config.ParseColor(cfg.Grid.Color)
	if err != nil {
		return raster.Options{}, err
	}
	if cfg.Grid.Color == "" {
		gridColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	opts := raster.Options{
		Width:         w,
		Height:        h,
		Flipped:       1,
		Background:    bg,
		NoDarkening:   cfg.NoDarkening,
		LinearShading: cfg.LinearShading,
		Outlines:      cfg.Outlines,
		Grid: raster.Grid{
			Enabled: cfg.Grid.Enabled,
			Grid1:   cfg.Grid.Grid1,
			Grid2:   cfg.Grid.Grid2,
			Color:   gridColor,
		},
		Workers: workers,
		Logger:  log,
	}
	if cfg.Retrograde {
		opts.Flipped = -1
	}
	for _, m := range cfg.Markers {
		c, err := config.ParseColor(m.Color)
		if err != nil {
			return raster.Options{}, fmt.Errorf("marker %q: %w", m.Name, err)
		}
		opts.Markers = append(opts.Markers, raster.Marker{
			Name:   m.Name,
			Lat:    mathutil.Deg2Rad(m.Lat),
			Lon:    mathutil.Deg2Rad(m.Lon),
			Radius: m.Radius,
			Color:  c,
		})
	}
	return opts, nil
}

// RenderImage renders one view of cfg at its final size. With supersampling
// the projection runs at the larger size and the result is scaled down.
func RenderImage(cfg config.Config, maps MapSource, workers int, log *logging.Logger) (*image.NRGBA, error) {
	m, err := LoadMap(cfg, maps)
	if err != nil {
		return nil, err
	}

	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := cfg.Width*ss, cfg.Height*ss

	proj, err := NewProjection(cfg, w, h, log)
	if err != nil {
		return nil, err
	}
	opts, err := RenderOptions(cfg, w, h, workers, log)
	if err != nil {
		return nil, err
	}
	img, err := raster.Render(proj, m, opts)
	if err != nil {
		return nil, err
	}

	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	return img, nil
}

// Encode writes img as WebP (lossless) or PNG.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "webp", "":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("PNG encode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("batch: unknown output format %q", format)
}

// WriteImage encodes img into path, creating parent directories.
func WriteImage(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func defaultRenderWorkers(jobWorkers int) int {
	n := runtime.NumCPU() / max(jobWorkers, 1)
	return max(n, 1)
}
