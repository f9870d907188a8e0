package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/linuxmatters/pitchgram/internal/audio"
	"github.com/linuxmatters/pitchgram/internal/config"
	"github.com/linuxmatters/pitchgram/internal/renderer"
)

// Options configures every file in a run
type Options struct {
	Analysis      config.AnalysisConfig
	Visualization config.VisualizationConfig
	Render        renderer.Options

	// FixedHop keeps Analysis.HopSize; otherwise the hop is derived per file
	// so that one frame is produced per Visualization.SamplesPerSecond tick.
	FixedHop bool

	// Workers is the number of files processed concurrently
	Workers int
}

// Result reports the outcome of one job
type Result struct {
	Job        Job
	Tags       audio.Tags
	SampleRate int
	Duration   float64 // Seconds of decoded audio
	Frames     int     // Spectrogram frames analysed
	FrameSize  int     // Analysis frame used for this file
	HopSize    int     // Analysis hop used for this file
	FrameRate  float64 // Analysis frames per second of audio
	Width      int     // Output image width including the margin
	Height     int
	Warnings   []string // Settings adjusted to fit this file
	Elapsed    time.Duration
	Err        error
}

// Event is sent when a job starts (Done false) and when it finishes
type Event struct {
	Index  int
	Total  int
	Job    Job
	Done   bool
	Result Result
}

// ProgressFunc receives events, possibly from several goroutines at once
type ProgressFunc func(Event)

// Runner processes jobs with a fixed set of options
type Runner struct {
	opts Options
}

// NewRunner creates a runner
func NewRunner(opts Options) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{opts: opts}
}

// ProcessFile runs decode, analyse, render and save for one job
func (r *Runner) ProcessFile(job Job) Result {
	start := time.Now()
	res := Result{Job: job}
	res.Err = r.process(job, &res)
	res.Elapsed = time.Since(start)
	return res
}

func (r *Runner) process(job Job, res *Result) error {
	buf, err := audio.Load(job.Input)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	res.SampleRate = buf.SampleRate
	res.Duration = buf.Duration()

	// Tags are informational; a damaged tag does not fail the file
	if tags, err := audio.ReadTags(job.Input); err == nil {
		res.Tags = tags
	}

	vis := r.opts.Visualization
	if nyquist := float64(buf.SampleRate) / 2; vis.MaxFrequency > nyquist {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"maximum frequency %.0f Hz clamped to Nyquist %.0f Hz", vis.MaxFrequency, nyquist))
		vis.MaxFrequency = nyquist
	}

	analysis := r.opts.Analysis
	if !r.opts.FixedHop {
		var grown bool
		analysis, grown = analysis.WithHop(vis.HopForSampleRate(buf.SampleRate))
		if grown {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"frame size raised from %d to %d to cover a hop of %d samples",
				r.opts.Analysis.FrameSize, analysis.FrameSize, analysis.HopSize))
		}
	}
	res.FrameSize, res.HopSize = analysis.FrameSize, analysis.HopSize

	sg, err := audio.Analyze(buf.Samples, buf.SampleRate, analysis)
	if err != nil {
		return fmt.Errorf("analysing: %w", err)
	}
	res.Frames = sg.NumFrames()
	res.FrameRate = sg.FramesPerSecond()

	img, err := renderer.Render(sg, vis, r.opts.Render)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	b := img.Image.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()

	if dir := filepath.Dir(job.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := renderer.Save(job.Output, img.Image); err != nil {
		return fmt.Errorf("saving: %w", err)
	}

	return nil
}

// Run processes jobs across the configured workers. A failed job is recorded
// in its Result and the run continues. Results are in input order. Once ctx
// is done no further jobs start and the remaining results carry ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job, progress ProgressFunc) []Result {
	results := make([]Result, len(jobs))
	if progress == nil {
		progress = func(Event) {}
	}

	indices := make(chan int)
	go func() {
		defer close(indices)
		cancelFrom := func(i int) {
			for ; i < len(jobs); i++ {
				results[i] = Result{Job: jobs[i], Err: ctx.Err()}
			}
		}
		for i := range jobs {
			if ctx.Err() != nil {
				cancelFrom(i)
				return
			}
			select {
			case indices <- i:
			case <-ctx.Done():
				cancelFrom(i)
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < min(r.opts.Workers, max(len(jobs), 1)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				progress(Event{Index: i, Total: len(jobs), Job: jobs[i]})
				results[i] = r.ProcessFile(jobs[i])
				progress(Event{Index: i, Total: len(jobs), Job: jobs[i], Done: true, Result: results[i]})
			}
		}()
	}
	wg.Wait()

	return results
}

// Failed counts results with an error
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Warnings returns the distinct warnings across results in first-seen order
func Warnings(results []Result) []string {
	var out []string
	seen := make(map[string]bool)
	for _, res := range results {
		for _, w := range res.Warnings {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}
