package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jedib0t/go-pretty/v6/table"

	"planet-renderer/internal/batch"
	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/projection"
	"planet-renderer/internal/texture"
)

type commonFlags struct {
	Config     string `help:"Path to config.json file." type:"path"`
	Maps       string `help:"Directory holding map images (default: <base>/images)."`
	Map        string `help:"Map name or image path."`
	Projection string `short:"p" help:"Projection name or unique prefix: ${projections}."`
	Width      int    `help:"Output width in pixels (default: 512)."`
	Height     int    `help:"Output height in pixels (default: 512)."`
	Workers    int    `help:"Number of worker goroutines (default: NumCPU)."`
	LogLevel   string `help:"debug, info, warn or error."`
}

type imageCmd struct {
	commonFlags
	Output string `short:"o" required:"" help:"Output image path (.webp or .png)."`
}

type batchCmd struct {
	commonFlags
	Output string `short:"o" help:"Output directory."`
	All    bool   `help:"Render every projection for the configured view."`
}

var cli struct {
	Image imageCmd `cmd:"" help:"Render one image."`
	Batch batchCmd `cmd:"" help:"Render a list of jobs from the config, or all projections."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("render"),
		kong.Description("Render planetary maps under cartographic projections."),
		kong.HelpOptions{Compact: true, FlagsLast: true},
		kong.UsageOnError(),
		kong.Vars{"projections": strings.Join(projection.Names(), ", ")},
	)

	var err error
	switch ctx.Command() {
	case "image":
		err = runImage(&cli.Image)
	case "batch":
		err = runBatch(&cli.Batch)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config, applies flags and defaults, and opens the logger
// and map cache.
func setup(f commonFlags, outputDir string) (config.Config, *logging.Logger, *texture.Cache, error) {
	var cfg config.Config
	if f.Config != "" {
		var err error
		cfg, err = config.Load(f.Config)
		if err != nil {
			return cfg, nil, nil, err
		}
	}
	cfg.Resolve(config.Flags{
		MapsDir:    f.Maps,
		Map:        f.Map,
		OutputDir:  outputDir,
		Projection: f.Projection,
		Width:      f.Width,
		Height:     f.Height,
		Workers:    f.Workers,
		LogLevel:   f.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, err
	}

	log := logging.New(logging.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		log.AddFile(logging.FileOptions{Path: cfg.LogFile, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28})
	}

	index := texture.BuildIndex(cfg.MapsDir)
	log.Info("Maps: %d indexed in %s", index.Len(), cfg.MapsDir)
	return cfg, log, texture.NewCache(index, log), nil
}

func runImage(c *imageCmd) error {
	cfg, log, maps, err := setup(c.commonFlags, "")
	if err != nil {
		return err
	}
	defer log.Close()

	format := cfg.Format
	switch filepath.Ext(c.Output) {
	case ".png":
		format = "png"
	case ".webp":
		format = "webp"
	}

	cfg, err = batch.ResolveProjection(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	img, err := batch.RenderImage(cfg, maps, cfg.Workers, log)
	if err != nil {
		return err
	}
	if err := batch.WriteImage(c.Output, img, format); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	log.Info("Wrote %s (%s, %dx%d) in %.2fs", c.Output, cfg.Projection, cfg.Width, cfg.Height, time.Since(start).Seconds())
	return nil
}

func runBatch(c *batchCmd) error {
	cfg, log, maps, err := setup(c.commonFlags, c.Output)
	if err != nil {
		return err
	}
	defer log.Close()

	jobs := batch.JobsFromConfig(cfg, c.All)
	if len(jobs) == 0 {
		fmt.Println("No jobs to render.")
		return nil
	}

	log.Info("Jobs: %d, Workers: %d, Output: %s", len(jobs), cfg.Workers, cfg.OutputDir)
	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Maps:      maps,
		Workers:   cfg.Workers,
		Logger:    log,
	}, jobs)

	failed := printSummary(results)
	log.Info("Done in %.1fs", time.Since(start).Seconds())

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	if err := batch.WriteManifest(manifestPath, jobs, results); err != nil {
		log.Warn("manifest write failed: %v", err)
	} else {
		log.Info("Manifest: %s", manifestPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
	}
	return nil
}

func printSummary(results []batch.Result) int {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Job", "Projection", "Image", "Time", "Error"})

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
		t.AppendRow(table.Row{r.Name, r.Projection, r.Image, r.Elapsed.Round(time.Millisecond), r.Error})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d/%d rendered", len(results)-failed, len(results)), "", ""})
	t.Render()
	return failed
}
