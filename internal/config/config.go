package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/projection"
)

// Config holds all configurable paths and render settings. Angles are in
// degrees.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	MapsDir   string `json:"maps_dir"`
	Map       string `json:"map"` // map name looked up in MapsDir, or a file path
	OutputDir string `json:"output_dir"`

	// View
	Projection       string     `json:"projection"`
	ProjectionParams []float64  `json:"projection_params"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	Rotate           float64    `json:"rotate"`
	Radius           float64    `json:"radius"`
	Range            float64    `json:"range"`
	Retrograde       bool       `json:"retrograde"`
	MapBounds        *MapBounds `json:"map_bounds,omitempty"`

	// Render settings
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Supersample   int      `json:"supersample"`
	Background    string   `json:"background"`
	NoDarkening   bool     `json:"no_darkening"`
	LinearShading bool     `json:"linear_shading"`
	Outlines      bool     `json:"outlines"`
	Grid          Grid     `json:"grid"`
	Markers       []Marker `json:"markers"`

	// Output
	Format  string `json:"format"` // "webp" or "png"
	Workers int    `json:"workers"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Jobs lists the views rendered by a batch run.
	Jobs []Job `json:"jobs"`
}

// MapBounds restricts the map to a latitude/longitude window.
type MapBounds struct {
	UpperLeftLat  float64 `json:"upper_left_lat"`
	UpperLeftLon  float64 `json:"upper_left_lon"`
	LowerRightLat float64 `json:"lower_right_lat"`
	LowerRightLon float64 `json:"lower_right_lon"`
}

// Grid configures the graticule overlay.
type Grid struct {
	Enabled bool   `json:"enabled"`
	Grid1   int    `json:"grid1"`
	Grid2   int    `json:"grid2"`
	Color   string `json:"color"`
}

// Marker is a labelled point drawn on the map.
type Marker struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius int     `json:"radius"`
	Color  string  `json:"color"`
}

// Job is one batch view. Zero fields inherit from the top-level config.
type Job struct {
	Name             string    `json:"name"`
	Projection       string    `json:"projection"`
	ProjectionParams []float64 `json:"projection_params"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	Rotate           *float64  `json:"rotate,omitempty"`
	Map              string    `json:"map"`
}

const (
	DefaultWidth      = 512
	DefaultHeight     = 512
	DefaultProjection = "orthographic"
	DefaultGrid1      = 6
	DefaultGrid2      = 15
	DefaultFormat     = "webp"
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	MapsDir    string
	Map        string
	OutputDir  string
	Projection string
	Width      int
	Height     int
	Workers    int
	LogLevel   string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.MapsDir != "" {
		c.MapsDir = flags.MapsDir
	}
	if flags.Map != "" {
		c.Map = flags.Map
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Projection != "" {
		c.Projection = flags.Projection
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.MapsDir == "" {
			c.MapsDir = filepath.Join(c.BaseDir, "images")
		} else if !filepath.IsAbs(c.MapsDir) {
			c.MapsDir = filepath.Join(c.BaseDir, c.MapsDir)
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Projection == "" {
		c.Projection = DefaultProjection
	}
	if c.Radius <= 0 {
		c.Radius = projection.DefaultRadius
	}
	if c.Range <= 1 {
		c.Range = projection.DefaultRange
	}
	if c.Grid.Grid1 <= 0 {
		c.Grid.Grid1 = DefaultGrid1
	}
	if c.Grid.Grid2 <= 0 {
		c.Grid.Grid2 = DefaultGrid2
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports settings that cannot be rendered.
func (c *Config) Validate() error {
	if c.Format != "webp" && c.Format != "png" {
		return fmt.Errorf("config: format %q (valid: webp, png)", c.Format)
	}
	if _, err := projection.ParseKind(c.Projection); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		// Job names become output file names.
		name := JobName(i, j)
		if seen[name] {
			return fmt.Errorf("config: duplicate job name %q", name)
		}
		seen[name] = true
		if j.Projection == "" {
			continue
		}
		if _, err := projection.ParseKind(j.Projection); err != nil {
			return fmt.Errorf("config: job %q: %w", name, err)
		}
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	if _, err := ParseColor(c.Grid.Color); err != nil {
		return err
	}
	for _, m := range c.Markers {
		if _, err := ParseColor(m.Color); err != nil {
			return fmt.Errorf("config: marker %q: %w", m.Name, err)
		}
	}
	return nil
}

// Options converts the view settings into projection options for a
// w×h image, turning degrees into radians.
func (c *Config) Options(w, h int) projection.Options {
	opts := projection.DefaultOptions(w, h)
	if c.Retrograde {
		opts.Flipped = -1
	}
	opts.Radius = c.Radius
	opts.Range = c.Range
	opts.Latitude = mathutil.Deg2Rad(c.Latitude)
	opts.Longitude = mathutil.Deg2Rad(c.Longitude)
	opts.Rotate = mathutil.Deg2Rad(c.Rotate)
	for _, p := range c.ProjectionParams {
		opts.Params = append(opts.Params, mathutil.Deg2Rad(p))
	}
	return opts
}

// JobName is the name of the i-th job: its own, or job%03d when unnamed.
func JobName(i int, j Job) string {
	if j.Name != "" {
		return j.Name
	}
	return fmt.Sprintf("job%03d", i)
}

// ForJob returns a copy of c with the job's view fields applied.
func (c Config) ForJob(j Job) Config {
	if j.Projection != "" {
		c.Projection = j.Projection
	}
	if j.ProjectionParams != nil {
		c.ProjectionParams = j.ProjectionParams
	}
	if j.Latitude != nil {
		c.Latitude = *j.Latitude
	}
	if j.Longitude != nil {
		c.Longitude = *j.Longitude
	}
	if j.Rotate != nil {
		c.Rotate = *j.Rotate
	}
	if j.Map != "" {
		c.Map = j.Map
	}
	c.Jobs = nil
	return c
}

// Window returns the map bounds in radians as start latitude, start
// longitude, height and width.
func (b MapBounds) Window() (startLat, startLon, height, width float64) {
	startLat = mathutil.Deg2Rad(b.UpperLeftLat)
	startLon = mathutil.Deg2Rad(b.UpperLeftLon)
	height = mathutil.Deg2Rad(b.UpperLeftLat - b.LowerRightLat)
	lonSpan := b.LowerRightLon - b.UpperLeftLon
	if lonSpan <= 0 {
		lonSpan += 360
	}
	return startLat, startLon, height, mathutil.Deg2Rad(lonSpan)
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if _, err := os.Stat(filepath.Join(base, "images")); err == nil {
				return base
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "images")); err == nil {
		return cwd
	}

	return ""
}
