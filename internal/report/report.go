// internal/report/report.go
// Package report collects per-file outcomes of a conversion run and renders
// them for the console.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Result is the outcome for one input file.
type Result struct {
	Input  string
	Output string
	Rows   int
	Err    error
}

// OK reports whether the file was converted.
func (r Result) OK() bool { return r.Err == nil }

// Summary accumulates results for a single run of one tool.
type Summary struct {
	Tool    string
	Results []Result
}

// NewSummary returns an empty summary for tool.
func NewSummary(tool string) *Summary {
	return &Summary{Tool: tool}
}

// Add records a result.
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
}

// Succeeded returns the results without an error.
func (s *Summary) Succeeded() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the results with an error.
func (s *Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Rows is the total row count over successful files.
func (s *Summary) Rows() int {
	total := 0
	for _, r := range s.Succeeded() {
		total += r.Rows
	}
	return total
}

// Err joins the errors of all failed files, or returns nil.
func (s *Summary) Err() error {
	failed := s.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, r := range failed {
		errs = append(errs, r.Err)
	}
	return fmt.Errorf("%s: %d of %d files failed: %w", s.Tool, len(failed), len(s.Results), errors.Join(errs...))
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Render writes one status line per file followed by a boxed total.
func (s *Summary) Render(w io.Writer) {
	okMark := color.New(color.FgGreen).SprintFunc()
	failMark := color.New(color.FgRed).SprintFunc()

	for _, r := range s.Results {
		if r.OK() {
			fmt.Fprintf(w, "%s %s -> %s (%d rows)\n", okMark("✔"), r.Input, r.Output, r.Rows)
			continue
		}
		fmt.Fprintf(w, "%s %s: %v\n", failMark("✘"), r.Input, r.Err)
	}

	lines := []string{
		titleStyle.Render(s.Tool),
		fmt.Sprintf("files: %d  ok: %d  failed: %d  rows: %d",
			len(s.Results), len(s.Succeeded()), len(s.Failed()), s.Rows()),
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}
