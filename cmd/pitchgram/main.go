package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/pitchgram/internal/batch"
	"github.com/linuxmatters/pitchgram/internal/cli"
	"github.com/linuxmatters/pitchgram/internal/config"
	"github.com/linuxmatters/pitchgram/internal/pitch"
	"github.com/linuxmatters/pitchgram/internal/renderer"
	"github.com/linuxmatters/pitchgram/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Input  string `arg:"" name:"input" help:"Audio file or directory (WAV, MP3, FLAC, OGG)" optional:""`
	Output string `arg:"" name:"output" help:"Output .png or .bmp, or a directory for batch runs" optional:""`

	Start    string `help:"Start time in seconds" placeholder:"seconds" group:"time"`
	End      string `help:"End time in seconds" placeholder:"seconds" group:"time"`
	Duration string `help:"Length in seconds; give at most two of start, end and duration" placeholder:"seconds" group:"time"`

	SamplesPerSecond float64 `name:"samples-per-second" help:"Image columns per second of audio" default:"100" group:"axis"`
	MinFreq          float64 `name:"min-freq" help:"Lowest frequency in Hz" default:"20" group:"axis"`
	MaxFreq          float64 `name:"max-freq" help:"Highest frequency in Hz, clamped to Nyquist" default:"20000" group:"axis"`
	MinNote          string  `name:"min-note" help:"Lowest note, e.g. A0; overrides --min-freq" placeholder:"note" group:"axis"`
	MaxNote          string  `name:"max-note" help:"Highest note, e.g. C8; overrides --max-freq" placeholder:"note" group:"axis"`

	FrameSize int `name:"frame-size" help:"Samples per analysis frame" default:"2048" group:"analysis"`
	Hop       int `help:"Samples between frames; 0 derives it from samples per second" default:"0" group:"analysis"`

	Width       int     `help:"Spectrogram width in pixels; 0 uses one column per frame" default:"0" group:"image"`
	Height      int     `help:"Image height in pixels" default:"1024" group:"image"`
	Colormap    string  `help:"Colour map: jet, gray or fire" default:"jet" enum:"jet,gray,fire" group:"image"`
	Annotation  string  `help:"Labelled notes: white, octaves or all" default:"white" enum:"white,octaves,all" group:"image"`
	MarginColor string  `name:"margin-color" help:"Label margin colour" placeholder:"rrggbb" group:"image"`
	GridColor   string  `name:"grid-color" help:"Gridline and label colour" placeholder:"rrggbb" group:"image"`
	FontSize    float64 `name:"font-size" help:"Label size in points" default:"9" group:"image"`

	Workers      int  `help:"Files processed in parallel" default:"1"`
	FrameWorkers int  `name:"frame-workers" help:"Goroutines analysing frames within a file" default:"1"`
	Plain        bool `help:"Print one line per file instead of the progress display"`
	Version      bool `help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pitchgram"),
		kong.Description(cli.Description),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.ExplicitGroups([]kong.Group{
			{Key: "time", Title: "Time window"},
			{Key: "axis", Title: "Frequency axis"},
			{Key: "analysis", Title: "Analysis"},
			{Key: "image", Title: "Image"},
		}),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
	_ = ctx

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if CLI.Input == "" {
		cli.PrintError("<input> is required")
		os.Exit(1)
	}

	opts, err := buildOptions()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	jobs, err := batch.CollectJobs(CLI.Input, CLI.Output)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := batch.NewRunner(opts)
	start := time.Now()

	var results []batch.Result
	if CLI.Plain {
		cli.PrintBanner()
		printSettings(opts, len(jobs))
		results = runPlain(runCtx, runner, jobs)
	} else {
		results, err = runTUI(runCtx, stop, runner, jobs)
		if err != nil {
			cli.PrintError(fmt.Sprintf("running UI: %v", err))
			os.Exit(1)
		}
		// Failures scroll away with the TUI, so repeat them
		for _, res := range results {
			if res.Err != nil {
				cli.PrintFileError(res.Job.Input, res.Err)
			}
		}
	}

	for _, w := range batch.Warnings(results) {
		cli.PrintWarning(w)
	}

	failed := batch.Failed(results)
	if len(jobs) > 1 || failed > 0 {
		cli.PrintBatchSummary(len(jobs), failed, time.Since(start))
	} else {
		cli.PrintSuccess(fmt.Sprintf("Done! Output: %s", jobs[0].Output))
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// buildOptions turns flags into validated pipeline options
func buildOptions() (batch.Options, error) {
	var times [3]*float64
	for i, v := range []struct{ name, value string }{{"start", CLI.Start}, {"end", CLI.End}, {"duration", CLI.Duration}} {
		if v.value == "" {
			continue
		}
		seconds, err := strconv.ParseFloat(v.value, 64)
		if err != nil {
			return batch.Options{}, fmt.Errorf("%w: --%s %q is not a number of seconds", config.ErrUsage, v.name, v.value)
		}
		times[i] = &seconds
	}

	startTime, duration, err := config.ResolveTimeWindow(times[0], times[1], times[2])
	if err != nil {
		return batch.Options{}, err
	}

	vis := config.VisualizationConfig{
		StartTime:        startTime,
		Duration:         duration,
		SamplesPerSecond: CLI.SamplesPerSecond,
		MinFrequency:     CLI.MinFreq,
		MaxFrequency:     CLI.MaxFreq,
	}
	if CLI.MinNote != "" {
		if vis.MinFrequency, err = pitch.NoteToFrequency(CLI.MinNote); err != nil {
			return batch.Options{}, fmt.Errorf("--min-note: %w", err)
		}
	}
	if CLI.MaxNote != "" {
		if vis.MaxFrequency, err = pitch.NoteToFrequency(CLI.MaxNote); err != nil {
			return batch.Options{}, fmt.Errorf("--max-note: %w", err)
		}
	}

	// Nyquist is checked per file once the sample rate is known
	if err := vis.Validate(max(2, int(math.Ceil(2*vis.MaxFrequency)))); err != nil {
		return batch.Options{}, err
	}

	analysis := config.AnalysisConfig{
		FrameSize: CLI.FrameSize,
		HopSize:   CLI.Hop,
		Workers:   CLI.FrameWorkers,
	}
	fixedHop := CLI.Hop > 0
	if fixedHop {
		if err := analysis.Validate(); err != nil {
			return batch.Options{}, err
		}
	}

	rc := &config.RuntimeConfig{
		LabelFontSize: &CLI.FontSize,
		ColorMap:      &CLI.Colormap,
		Annotation:    &CLI.Annotation,
	}
	if CLI.MarginColor != "" {
		if err := rc.SetMarginColor(CLI.MarginColor); err != nil {
			return batch.Options{}, fmt.Errorf("--margin-color: %w", err)
		}
	}
	if CLI.GridColor != "" {
		if err := rc.SetGridColor(CLI.GridColor); err != nil {
			return batch.Options{}, fmt.Errorf("--grid-color: %w", err)
		}
	}

	render, err := renderer.OptionsFromRuntime(rc, CLI.Width, CLI.Height)
	if err != nil {
		return batch.Options{}, err
	}

	return batch.Options{
		Analysis:      analysis,
		Visualization: vis,
		Render:        render,
		FixedHop:      fixedHop,
		Workers:       CLI.Workers,
	}, nil
}

// printSettings summarises the options shared by every file
func printSettings(opts batch.Options, files int) {
	vis := opts.Visualization

	cli.PrintSection("Settings")
	cli.PrintInfo("Files", strconv.Itoa(files))

	window := "whole file"
	switch {
	case vis.Duration >= 0:
		window = fmt.Sprintf("%.2fs to %.2fs", vis.StartTime, vis.StartTime+vis.Duration)
	case vis.StartTime > 0:
		window = fmt.Sprintf("%.2fs to end", vis.StartTime)
	}
	cli.PrintInfo("Window", window)

	cli.PrintInfo("Range", fmt.Sprintf("%.1f Hz (%s) to %.1f Hz (%s)",
		vis.MinFrequency, pitch.FrequencyToPitch(vis.MinFrequency),
		vis.MaxFrequency, pitch.FrequencyToPitch(vis.MaxFrequency)))

	hop := fmt.Sprintf("%g frames per second", vis.SamplesPerSecond)
	if opts.FixedHop {
		hop = fmt.Sprintf("%d samples", opts.Analysis.HopSize)
	}
	cli.PrintInfo("Analysis", fmt.Sprintf("frame %d, hop %s", opts.Analysis.FrameSize, hop))

	cli.PrintInfo("Image", fmt.Sprintf("%s, %s labels, height %d",
		opts.Render.ColorMap.Name, opts.Render.Annotation, opts.Render.Height))
	fmt.Println()
}

// runPlain prints one line per finished file
func runPlain(ctx context.Context, runner *batch.Runner, jobs []batch.Job) []batch.Result {
	var mu sync.Mutex
	return runner.Run(ctx, jobs, func(ev batch.Event) {
		if !ev.Done {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		res := ev.Result
		if res.Err != nil {
			cli.PrintFileError(res.Job.Input, res.Err)
			return
		}
		size := ""
		if info, err := os.Stat(res.Job.Output); err == nil {
			size = ", " + cli.FormatBytes(info.Size())
		}
		cli.PrintSuccess(fmt.Sprintf("[%d/%d] %s -> %s (%dx%d%s, frame %d, hop %d at %.1f/s, %s)",
			ev.Index+1, ev.Total, res.Tags.Label(res.Job.Input), res.Job.Output,
			res.Width, res.Height, size, res.FrameSize, res.HopSize, res.FrameRate, cli.FormatDuration(res.Elapsed)))
	})
}

// runTUI drives the progress display while the runner works in the background
func runTUI(ctx context.Context, cancel context.CancelFunc, runner *batch.Runner, jobs []batch.Job) ([]batch.Result, error) {
	p := tea.NewProgram(ui.NewModel(len(jobs)))

	var results []batch.Result
	done := make(chan struct{})
	start := time.Now()

	go func() {
		defer close(done)
		results = runner.Run(ctx, jobs, func(ev batch.Event) {
			if !ev.Done {
				p.Send(ui.FileStarted{Index: ev.Index, Total: ev.Total, Path: ev.Job.Input})
				return
			}
			res := ev.Result
			p.Send(ui.FileFinished{
				Index:   ev.Index,
				Total:   ev.Total,
				Path:    res.Job.Input,
				Output:  res.Job.Output,
				Label:   res.Tags.Label(res.Job.Input),
				Width:   res.Width,
				Height:  res.Height,
				Elapsed: res.Elapsed,
				Err:     res.Err,
			})
		})
		p.Send(ui.BatchComplete{Total: len(results), Failed: batch.Failed(results), Elapsed: time.Since(start)})
	}()

	_, err := p.Run()

	// The UI can exit early on ctrl+c; stop handing out files and wait
	cancel()
	<-done

	return results, err
}
