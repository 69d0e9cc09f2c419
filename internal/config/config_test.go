package config

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"planet-renderer/internal/projection"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.BaseDir = t.TempDir()
	c.Resolve(Flags{})

	require.Equal(t, 512, c.Width)
	require.Equal(t, 512, c.Height)
	require.Equal(t, 1, c.Supersample)
	require.Equal(t, "orthographic", c.Projection)
	require.Equal(t, 0.45, c.Radius)
	require.Equal(t, 1000.0, c.Range)
	require.Equal(t, 6, c.Grid.Grid1)
	require.Equal(t, 15, c.Grid.Grid2)
	require.Equal(t, runtime.NumCPU(), c.Workers)
	require.Equal(t, "webp", c.Format)
	require.Equal(t, "info", c.LogLevel)
	require.Equal(t, filepath.Join(c.BaseDir, "images"), c.MapsDir)
	require.NoError(t, c.Validate())
}

func TestResolveFlagsOverride(t *testing.T) {
	c := Config{BaseDir: "/data", MapsDir: "maps", Width: 100, Projection: "mercator", Format: "PNG"}
	c.Resolve(Flags{Width: 300, Height: 150, Projection: "moll", Workers: 3, OutputDir: "out"})

	require.Equal(t, 300, c.Width)
	require.Equal(t, 150, c.Height)
	require.Equal(t, "moll", c.Projection)
	require.Equal(t, 3, c.Workers)
	require.Equal(t, "out", c.OutputDir)
	require.Equal(t, "png", c.Format)
	require.Equal(t, filepath.Join("/data", "maps"), c.MapsDir)
	require.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"map": "earth",
		"projection": "mercator",
		"projection_params": [60],
		"latitude": 30,
		"longitude": -45,
		"grid": {"enabled": true, "color": "#00ff00"},
		"markers": [{"name": "Paris", "lat": 48.86, "lon": 2.35}],
		"jobs": [{"name": "polar", "projection": "azimuthal", "latitude": 90}]
	}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "earth", c.Map)
	require.True(t, c.Grid.Enabled)
	require.Len(t, c.Markers, 1)
	require.Len(t, c.Jobs, 1)
	require.NotNil(t, c.Jobs[0].Latitude)
	require.Nil(t, c.Jobs[0].Longitude)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: parse")
}

func TestOptions(t *testing.T) {
	c := Config{Latitude: 90, Longitude: -180, Rotate: 45, ProjectionParams: []float64{30}, Retrograde: true}
	c.Resolve(Flags{})
	opts := c.Options(400, 200)

	require.Equal(t, 400, opts.Width)
	require.Equal(t, 200.0, opts.CenterX)
	require.Equal(t, 100.0, opts.CenterY)
	require.Equal(t, -1, opts.Flipped)
	require.InDelta(t, math.Pi/2, opts.Latitude, 1e-15)
	require.InDelta(t, -math.Pi, opts.Longitude, 1e-15)
	require.InDelta(t, math.Pi/4, opts.Rotate, 1e-15)
	require.InDelta(t, math.Pi/6, opts.Params[0], 1e-15)
	require.Equal(t, projection.DefaultRadius, opts.Radius)
}

func TestForJob(t *testing.T) {
	lat := 90.0
	c := Config{Projection: "mercator", Latitude: 10, Longitude: 20, Map: "earth", Jobs: []Job{{}}}
	j := c.ForJob(Job{Name: "pole", Projection: "azimuthal", Latitude: &lat})

	require.Equal(t, "azimuthal", j.Projection)
	require.Equal(t, 90.0, j.Latitude)
	require.Equal(t, 20.0, j.Longitude)
	require.Equal(t, "earth", j.Map)
	require.Nil(t, j.Jobs)
	require.Equal(t, "mercator", c.Projection)
}

func TestValidate(t *testing.T) {
	c := Config{Projection: "xyz"}
	c.Resolve(Flags{})
	err := c.Validate()
	require.ErrorIs(t, err, projection.ErrUnknownProjection)

	c = Config{Format: "gif"}
	c.Resolve(Flags{})
	require.Error(t, c.Validate())

	c = Config{Jobs: []Job{{Name: "bad", Projection: "m"}}}
	c.Resolve(Flags{})
	require.ErrorIs(t, c.Validate(), projection.ErrUnknownProjection)

	c = Config{Background: "#12"}
	c.Resolve(Flags{})
	require.Error(t, c.Validate())
}

func TestValidateJobNames(t *testing.T) {
	c := Config{Jobs: []Job{{Name: "view", Projection: "mercator"}, {Name: "view", Projection: "tsc"}}}
	c.Resolve(Flags{})
	err := c.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate job name "view"`)

	// An explicit name can collide with a generated one.
	c = Config{Jobs: []Job{{Name: "job001"}, {Projection: "tsc"}}}
	c.Resolve(Flags{})
	require.ErrorContains(t, c.Validate(), "job001")

	c = Config{Jobs: []Job{{Name: "a"}, {}, {Name: "b"}}}
	c.Resolve(Flags{})
	require.NoError(t, c.Validate())
	require.Equal(t, "job001", JobName(1, c.Jobs[1]))
	require.Equal(t, "b", JobName(2, c.Jobs[2]))
}

func TestMapBoundsWindow(t *testing.T) {
	lat, lon, h, w := MapBounds{UpperLeftLat: 60, UpperLeftLon: 170, LowerRightLat: 30, LowerRightLon: -170}.Window()
	require.InDelta(t, math.Pi/3, lat, 1e-15)
	require.InDelta(t, 170*math.Pi/180, lon, 1e-15)
	require.InDelta(t, math.Pi/6, h, 1e-15)
	require.InDelta(t, 20*math.Pi/180, w, 1e-12)
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"":          {},
		"Black":     {A: 255},
		"#ff8000":   {R: 255, G: 128, A: 255},
		"#ff800080": {R: 255, G: 128, A: 128},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	for _, bad := range []string{"#12", "ff8000", "#gg0000", "mauve"} {
		_, err := ParseColor(bad)
		require.Error(t, err, bad)
	}
}
