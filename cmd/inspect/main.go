package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/jedib0t/go-pretty/v6/table"

	"planet-renderer/internal/logging"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/projection"
)

var cli struct {
	Projection string    `arg:"" help:"Projection name or unique prefix: ${projections}."`
	Width      int       `default:"360" help:"Image width."`
	Height     int       `default:"180" help:"Image height."`
	Lat        float64   `help:"Sub-observer latitude (degrees)."`
	Lon        float64   `help:"Sub-observer longitude (degrees)."`
	Rotate     float64   `help:"Map rotation (degrees)."`
	Radius     float64   `default:"0.45" help:"Radius as a fraction of the image height."`
	Params     []float64 `help:"Projection parameters (degrees)."`
	Step       int       `default:"8" help:"Samples per axis."`
	Geo        bool      `help:"Sample a latitude/longitude grid and map it to pixels instead."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("inspect"),
		kong.Description("Print pixel <-> latitude/longitude mappings of a projection."),
		kong.UsageOnError(),
		kong.Vars{"projections": strings.Join(projection.Names(), ", ")},
	)

	log := logging.New(logging.LevelWarn)
	opts := projection.DefaultOptions(cli.Width, cli.Height)
	opts.Radius = cli.Radius
	opts.Latitude = mathutil.Deg2Rad(cli.Lat)
	opts.Longitude = mathutil.Deg2Rad(cli.Lon)
	opts.Rotate = mathutil.Deg2Rad(cli.Rotate)
	for _, p := range cli.Params {
		opts.Params = append(opts.Params, mathutil.Deg2Rad(p))
	}
	opts.Logger = log

	proj, err := projection.NewByName(cli.Projection, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	n := max(cli.Step, 2)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%T %dx%d wrap=%v radius=%.3f", proj, cli.Width, cli.Height, proj.IsWrapAround(), proj.Radius()))

	if cli.Geo {
		t.AppendHeader(table.Row{"Lat", "Lon", "X", "Y", "Visible"})
		for i := 0; i < n; i++ {
			lat := -90 + 180*float64(i)/float64(n-1)
			for k := 0; k < n; k++ {
				lon := -180 + 360*float64(k)/float64(n)
				x, y, ok := proj.SphericalToPixel(mathutil.Deg2Rad(lat), mathutil.Deg2Rad(lon))
				t.AppendRow(table.Row{fmt.Sprintf("%.2f", lat), fmt.Sprintf("%.2f", lon),
					fmt.Sprintf("%.2f", x), fmt.Sprintf("%.2f", y), ok})
			}
		}
		t.Render()
		return
	}

	t.AppendHeader(table.Row{"X", "Y", "Lat", "Lon", "Darkening", "Round trip"})
	for j := 0; j < n; j++ {
		y := float64(j*(cli.Height-1)) / float64(n-1)
		for i := 0; i < n; i++ {
			x := float64(i*(cli.Width-1)) / float64(n-1)
			s, ok := proj.PixelToSpherical(x, y)
			if !ok {
				t.AppendRow(table.Row{fmt.Sprintf("%.1f", x), fmt.Sprintf("%.1f", y), "-", "-", "-", "-"})
				continue
			}
			rt := "-"
			if bx, by, ok := proj.SphericalToPixel(s.Lat, s.Lon); ok {
				rt = fmt.Sprintf("%.3g", math.Max(math.Abs(bx-x), math.Abs(by-y)))
			}
			t.AppendRow(table.Row{fmt.Sprintf("%.1f", x), fmt.Sprintf("%.1f", y),
				fmt.Sprintf("%.4f", mathutil.Rad2Deg(s.Lat)), fmt.Sprintf("%.4f", mathutil.Rad2Deg(s.Lon)),
				fmt.Sprintf("%.3f", s.Darkening), rt})
		}
	}
	t.Render()
}

