// internal/convert/convert.go
// Package convert writes one CSV per benchmark file, with a column for every
// key found in that file's entries.
package convert

import (
	"sort"

	"github.com/mwiater/benchcsv/internal/benchdata"
	"github.com/mwiater/benchcsv/internal/logging"
	"github.com/mwiater/benchcsv/internal/report"
	"github.com/mwiater/benchcsv/internal/util"
)

// OutputExt is appended to an input file name to name its CSV.
const OutputExt = ".csv"

// Options configures a conversion run.
type Options struct {
	Dir    string
	Suffix string
	// SortColumns orders the header lexically instead of by first appearance.
	SortColumns bool
}

// Header returns the union of entry keys, in first-seen order or sorted.
func Header(entries []benchdata.Entry, sorted bool) []string {
	var header []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		for _, key := range entry.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}
	if sorted {
		sort.Strings(header)
	}
	return header
}

// Write writes the header and one row per entry. Keys an entry lacks are
// left blank.
func Write(w *util.CSVWriter, file *benchdata.File, sorted bool) error {
	header := Header(file.Entries, sorted)
	if err := w.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, entry := range file.Entries {
		for i, key := range header {
			v, _ := entry.Get(key)
			record[i] = benchdata.Cell(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// File converts the benchmark file at path into path+".csv".
func File(path string, sorted bool) report.Result {
	output := path + OutputExt
	result := report.Result{Input: path, Output: output}

	file, err := benchdata.Load(path)
	if err != nil {
		result.Err = err
		return result
	}
	if err := util.WriteCSV(output, func(w *util.CSVWriter) error {
		return Write(w, file, sorted)
	}); err != nil {
		result.Err = err
		return result
	}
	result.Rows = len(file.Entries)
	return result
}

// Run converts every matching file under opts.Dir. A failing file does not
// stop the others; the returned error names every file that failed.
func Run(opts Options) (*report.Summary, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Suffix == "" {
		opts.Suffix = benchdata.DefaultSuffix
	}
	summary := report.NewSummary("convert")

	paths, err := benchdata.Discover(opts.Dir, opts.Suffix)
	if err != nil {
		return summary, err
	}
	if len(paths) == 0 {
		logging.Warn("No files matching *%s found in %s", opts.Suffix, opts.Dir)
	}

	for _, path := range paths {
		result := File(path, opts.SortColumns)
		summary.Add(result)
		if !result.OK() {
			logging.Error("Failed to convert %v", result.Err)
			continue
		}
		logging.Info("Data from %s written to %s", result.Input, result.Output)
	}
	return summary, summary.Err()
}
