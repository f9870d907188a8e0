// Package batch runs the decode, analyse, render and encode pipeline over
// one file or a directory tree of audio files.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/pitchgram/internal/audio"
)

// ErrNoInputs is returned when a directory holds no decodable audio
var ErrNoInputs = errors.New("no supported audio files found")

// DefaultExtension is used for outputs derived from input names
const DefaultExtension = ".png"

// Job is one input file and the image it produces
type Job struct {
	Input  string
	Output string
}

// CollectJobs expands input into jobs. A file maps to output, or to a .png
// beside it (or inside output when output is a directory). A directory is
// walked recursively and its tree mirrored under output, which defaults to
// the input directory itself.
func CollectJobs(input, output string) ([]Job, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", input, err)
	}

	if !info.IsDir() {
		return []Job{{Input: input, Output: fileOutput(input, output)}}, nil
	}

	outDir := output
	if outDir == "" {
		outDir = input
	}

	var jobs []Job
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !audio.IsSupported(path) {
			return nil
		}

		rel, err := filepath.Rel(input, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, Job{
			Input:  path,
			Output: filepath.Join(outDir, replaceExt(rel, DefaultExtension)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", input, err)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputs, input)
	}
	return jobs, nil
}

// fileOutput resolves the output path for a single input file
func fileOutput(input, output string) string {
	if output == "" {
		return replaceExt(input, DefaultExtension)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, replaceExt(filepath.Base(input), DefaultExtension))
	}
	return output
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
