package batch

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/projection"
	"planet-renderer/internal/texture"
)

func setup(t *testing.T) (config.Config, *texture.Cache, string) {
	t.Helper()
	dir := t.TempDir()
	maps := filepath.Join(dir, "images")
	require.NoError(t, os.MkdirAll(maps, 0755))

	src := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	require.NoError(t, os.WriteFile(filepath.Join(maps, "earth.png"), buf.Bytes(), 0644))

	cfg := config.Config{BaseDir: dir, Map: "earth", Width: 64, Height: 48, Format: "png", LogLevel: "error"}
	cfg.Resolve(config.Flags{})
	cache := texture.NewCache(texture.BuildIndex(cfg.MapsDir), logging.Discard())
	return cfg, cache, filepath.Join(dir, "out")
}

func TestJobsFromConfig(t *testing.T) {
	cfg := config.Config{Projection: "mercator"}
	cfg.Resolve(config.Flags{})

	jobs := JobsFromConfig(cfg, false)
	require.Len(t, jobs, 1)
	require.Equal(t, "mercator", jobs[0].Name)

	jobs = JobsFromConfig(cfg, true)
	require.Len(t, jobs, 15)
	for _, j := range jobs {
		require.Equal(t, j.Name, j.Settings.Projection)
		require.NotEqual(t, "random", j.Name)
	}

	lat := 90.0
	cfg.Jobs = []config.Job{{Name: "pole", Projection: "azimuthal", Latitude: &lat}, {Projection: "tsc"}}
	jobs = JobsFromConfig(cfg, true)
	require.Len(t, jobs, 2)
	require.Equal(t, "pole", jobs[0].Name)
	require.Equal(t, 90.0, jobs[0].Settings.Latitude)
	require.Equal(t, "job001", jobs[1].Name)
}

func TestRunAllProjections(t *testing.T) {
	cfg, cache, out := setup(t)
	jobs := JobsFromConfig(cfg, true)

	results := Run(Config{OutputDir: out, Format: "png", Maps: cache, Workers: 4, Logger: logging.Discard()}, jobs)
	require.Len(t, results, len(jobs))
	for _, r := range results {
		require.True(t, r.Success, "%s: %s", r.Name, r.Error)

		f, err := os.Open(filepath.Join(out, r.Image))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		require.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
	}

	manifest := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(manifest, jobs, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, len(jobs))
	require.Equal(t, "ancient", entries[0].Name)
	require.Equal(t, "ancient.png", entries[0].Image)
	require.Equal(t, 64, entries[0].Width)

	require.Error(t, WriteManifest(manifest, jobs, results[:1]))
}

func TestRunReportsFailures(t *testing.T) {
	cfg, cache, out := setup(t)
	cfg.Map = "pluto"
	results := Run(Config{OutputDir: out, Maps: cache, Workers: 2, Logger: logging.Discard()}, JobsFromConfig(cfg, false))
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Contains(t, results[0].Error, "pluto")
}

func TestRunReportsResolvedProjection(t *testing.T) {
	cfg, cache, out := setup(t)
	cfg.Jobs = []config.Job{{Name: "surprise", Projection: "random"}, {Name: "short", Projection: "me"}}
	jobs := JobsFromConfig(cfg, false)

	results := Run(Config{OutputDir: out, Format: "png", Maps: cache, Workers: 2, Logger: logging.Discard()}, jobs)
	require.Len(t, results, 2)
	for _, r := range results {
		require.True(t, r.Success, "%s: %s", r.Name, r.Error)
	}

	kind, err := projection.ParseKind(results[0].Projection)
	require.NoError(t, err)
	require.NotEqual(t, projection.KindRandom, kind)
	require.Equal(t, kind.String(), results[0].Projection)
	require.Equal(t, "mercator", results[1].Projection)

	_, err = ResolveProjection(config.Config{Projection: "xyz"})
	require.ErrorIs(t, err, projection.ErrUnknownProjection)
}

func TestRenderImageWebPAndSupersample(t *testing.T) {
	cfg, cache, out := setup(t)
	cfg.Supersample = 2
	cfg.Grid.Enabled = true
	cfg.Markers = []config.Marker{{Name: "origin", Color: "#ff0000"}}

	img, err := RenderImage(cfg, cache, 2, logging.Discard())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())

	path := filepath.Join(out, "view.webp")
	require.NoError(t, WriteImage(path, img, "webp"))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := webp.Decode(f)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())

	require.Error(t, Encode(&bytes.Buffer{}, img, "gif"))
}

func TestRenderImageBoundedMap(t *testing.T) {
	cfg, cache, _ := setup(t)
	cfg.Projection = "rectangular"
	cfg.Background = "black"
	cfg.MapBounds = &config.MapBounds{UpperLeftLat: 60, UpperLeftLon: -20, LowerRightLat: 30, LowerRightLon: 40}

	img, err := RenderImage(cfg, cache, 1, logging.Discard())
	require.NoError(t, err)
	// The whole image shows the window, so nothing is background.
	for y := 0; y < 48; y += 7 {
		for x := 0; x < 64; x += 7 {
			require.Equal(t, uint8(255), img.NRGBAAt(x, y).A)
		}
	}

	cfg.Map = filepath.Join(cfg.MapsDir, "earth.png")
	_, err = RenderImage(cfg, cache, 1, logging.Discard())
	require.NoError(t, err)
}
