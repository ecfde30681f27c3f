package converter

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

// Report summarizes a batch run for the terminal.
type Report struct {
	Results  []*FileResult
	Duration time.Duration
}

// NewReport builds a report over a finished batch.
func NewReport(results []*FileResult, duration time.Duration) *Report {
	return &Report{Results: results, Duration: duration}
}

// Counts tallies results per outcome.
func (r *Report) Counts() (converted, skipped, failed int) {
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			failed++
		case !res.Crushed:
			skipped++
		default:
			converted++
		}
	}
	return converted, skipped, failed
}

// Success reports whether the batch had no failures.
func (r *Report) Success() bool {
	_, _, failed := r.Counts()
	return failed == 0
}

// Print writes a per-file listing and a summary line to w.
func (r *Report) Print(w io.Writer) {
	for _, res := range r.Results {
		printResult(w, res)
	}
	r.printSummary(w)
}

func printResult(w io.Writer, res *FileResult) {
	name := filepath.Base(res.SourcePath)
	switch {
	case res.Err != nil:
		clr := color.New(color.FgRed)
		clr.Fprintf(w, "  ✗ %s", name)
		fmt.Fprintln(w)
		clr.Fprintf(w, "    └─ %s\n", res.Err.Error())
	case !res.Crushed:
		clr := color.New(color.FgHiBlack)
		clr.Fprintf(w, "  ○ %s", name)
		clr.Fprintf(w, " - already standard\n")
	default:
		clr := color.New(color.FgGreen)
		clr.Fprintf(w, "  ✓ %s", name)
		color.New(color.FgHiBlack).Fprintf(w, " - %dx%d, %s → %s\n",
			res.Width, res.Height,
			formatBytes(res.InputBytes), formatBytes(res.OutputBytes))
	}
}

func (r *Report) printSummary(w io.Writer) {
	converted, skipped, failed := r.Counts()
	fmt.Fprintln(w)

	if failed == 0 {
		successColor := color.New(color.FgGreen, color.Bold)
		successColor.Fprintf(w, "━━━ Conversion Complete ")
		color.New(color.FgHiBlack).Fprintf(w, "(%d converted, %d skipped in %v)",
			converted, skipped, r.Duration.Round(time.Millisecond))
		successColor.Fprintln(w, " ━━━")
	} else {
		failColor := color.New(color.FgRed, color.Bold)
		failColor.Fprintf(w, "━━━ Conversion Finished With Errors ")
		color.New(color.FgHiBlack).Fprintf(w, "(%d converted, %d skipped, %d failed)",
			converted, skipped, failed)
		failColor.Fprintln(w, " ━━━")
	}
	fmt.Fprintln(w)
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
