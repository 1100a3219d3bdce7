package audit

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Runner specifies all configuration for running the waste audit over a set
// of captured coverage samples and one network log.
type Runner struct {
	writer    io.Writer
	errWriter io.Writer

	// HARPath is the network log the coverage samples are joined against.
	HARPath string
	// IgnoreThreshold drops results whose wasted bytes are at or below it.
	IgnoreThreshold uint64

	// DebugFlag turns on more verbose output.
	DebugFlag bool
	// JSONFlag turns on JSON output.
	JSONFlag bool

	paths []string
}

// New creates a runner for the audit.
// Pass paths to all coverage sample files captured for the page. Samples of
// the same URL are deduplicated, keeping the lower-waste reading.
func New(writer, errWriter io.Writer, paths []string) *Runner {
	return &Runner{
		writer:          writer,
		errWriter:       errWriter,
		paths:           paths,
		IgnoreThreshold: DefaultIgnoreThreshold,
	}
}

func (r *Runner) writeStderr(format string, args ...any) {
	fmt.Fprintf(r.errWriter, strings.TrimSuffix(format, "\n")+"\n", args...)
}

func (r *Runner) writeDebug(format string, args ...any) {
	if r.DebugFlag {
		r.writeStderr(format, args...)
	}
}

// Run the audit and print per-resource potential savings.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.paths) == 0 {
		return errors.New("no coverage files provided")
	}
	if r.HARPath == "" {
		return errors.New("no network log provided")
	}

	var scripts []Script
	for _, path := range r.paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read coverage file %s", path)
		}
		loaded, err := ParseCoverage(data)
		if err != nil {
			return errors.Wrapf(err, "failed to parse coverage file %s", path)
		}
		r.writeDebug("Loaded %d scripts from %s", len(loaded), path)
		scripts = append(scripts, loaded...)
	}

	data, err := os.ReadFile(r.HARPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read network log %s", r.HARPath)
	}
	resources, err := ParseHAR(data)
	if err != nil {
		return errors.Wrapf(err, "failed to parse network log %s", r.HARPath)
	}
	r.writeDebug("Loaded %d network records from %s", len(resources), r.HARPath)

	results, err := Aggregate(scripts, resources, r.IgnoreThreshold)
	if err != nil {
		return err
	}
	r.writeDebug("Audit produced %d results above %d wasted bytes", len(results), r.IgnoreThreshold)

	if r.JSONFlag {
		return r.printJSON(results)
	}
	r.printText(results)
	return nil
}

// sortForOutput orders results with the biggest savings first so the most
// actionable resources lead the report.
func sortForOutput(results []WasteResult) []WasteResult {
	out := slices.Clone(results)
	slices.SortFunc(out, func(a, b WasteResult) int {
		if a.WastedBytes != b.WastedBytes {
			return cmp.Compare(b.WastedBytes, a.WastedBytes)
		}
		return strings.Compare(a.URL, b.URL)
	})
	return out
}

func (r *Runner) printJSON(results []WasteResult) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "\t")
	return enc.Encode(sortForOutput(results))
}

func (r *Runner) printText(results []WasteResult) {
	for _, res := range sortForOutput(results) {
		fmt.Fprintf(r.writer, "%s: %.1f KiB total, %.1f KiB unused (%.1f%%), %d unused functions\n",
			res.URL, kib(res.TotalBytes), kib(res.WastedBytes), res.WastedPercent, res.NumUnused)
	}
}

func kib(b uint64) float64 {
	return float64(b) / 1024
}
