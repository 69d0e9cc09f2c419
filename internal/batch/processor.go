package batch

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/projection"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Format    string
	Maps      MapSource
	Workers   int
	Logger    *logging.Logger
	// Progress is the interval between progress log lines; zero means 2s.
	Progress time.Duration
}

// Job is one view to render. Settings is fully resolved.
type Job struct {
	Name     string
	Settings config.Config
}

// Result holds the outcome of processing one job.
type Result struct {
	Name       string
	Projection string
	Image      string // output path relative to OutputDir
	Success    bool
	Error      string
	Elapsed    time.Duration
}

// JobsFromConfig expands cfg into jobs: its job list when present, every
// concrete projection when all is set, otherwise the single configured view.
func JobsFromConfig(cfg config.Config, all bool) []Job {
	switch {
	case len(cfg.Jobs) > 0:
		jobs := make([]Job, 0, len(cfg.Jobs))
		for i, j := range cfg.Jobs {
			jobs = append(jobs, Job{Name: config.JobName(i, j), Settings: cfg.ForJob(j)})
		}
		return jobs
	case all:
		var jobs []Job
		for _, name := range projection.Names() {
			if name == projection.KindRandom.String() {
				continue
			}
			jobs = append(jobs, Job{Name: name, Settings: cfg.ForJob(config.Job{Projection: name})})
		}
		return jobs
	default:
		return []Job{{Name: cfg.Projection, Settings: cfg.ForJob(config.Job{})}}
	}
}

// Run processes all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					log.Info("[%d/%d] %.1f images/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup
	renderWorkers := defaultRenderWorkers(workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx], renderWorkers, log)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job, renderWorkers int, log *logging.Logger) Result {
	start := time.Now()
	res := Result{Name: job.Name, Projection: job.Settings.Projection}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Elapsed = time.Since(start)
		log.Warn("job %s: %v", job.Name, err)
		return res
	}

	settings, err := ResolveProjection(job.Settings)
	if err != nil {
		return fail(err)
	}
	res.Projection = settings.Projection

	img, err := RenderImage(settings, cfg.Maps, renderWorkers, log)
	if err != nil {
		return fail(err)
	}

	format := cfg.Format
	if format == "" {
		format = config.DefaultFormat
	}
	rel := job.Name + "." + format
	if err := WriteImage(filepath.Join(cfg.OutputDir, rel), img, format); err != nil {
		return fail(err)
	}

	res.Image = rel
	res.Success = true
	res.Elapsed = time.Since(start)
	log.Debug("job %s: wrote %s in %s", job.Name, rel, res.Elapsed.Round(time.Millisecond))
	return res
}
