// internal/consolidate/consolidate.go
// Package consolidate merges the benchmark files of a directory into a single
// CSV tagged with the library each row came from.
package consolidate

import (
	"fmt"
	"strconv"

	"github.com/mwiater/benchcsv/internal/benchdata"
	"github.com/mwiater/benchcsv/internal/logging"
	"github.com/mwiater/benchcsv/internal/report"
	"github.com/mwiater/benchcsv/internal/util"
	"github.com/tidwall/gjson"
)

const (
	// DefaultOutput is the consolidated CSV file name.
	DefaultOutput = "consolidated_data_2.csv"
	// DefaultField is the entry key reported as execution time.
	DefaultField = "cpu_time"
)

// Header is the consolidated CSV header.
var Header = []string{"Index", "library", "execution time", "benchmark"}

// Options configures a consolidation run.
type Options struct {
	Dir    string
	Suffix string
	Output string
	// Field is the entry key copied into the execution time column.
	Field string
	// ContinueOnError skips unreadable or malformed files instead of
	// aborting the run.
	ContinueOnError bool
}

// Row is one line of the consolidated output.
type Row struct {
	Index         int
	Library       string
	ExecutionTime gjson.Result
	Benchmark     gjson.Result
}

// Record renders the row as CSV cells.
func (r Row) Record() []string {
	return []string{
		strconv.Itoa(r.Index),
		r.Library,
		benchdata.Cell(r.ExecutionTime),
		benchdata.Cell(r.Benchmark),
	}
}

// Rows converts one file's entries into unindexed rows.
func Rows(file *benchdata.File, library, field string) []Row {
	rows := make([]Row, 0, len(file.Entries))
	for _, entry := range file.Entries {
		execTime, _ := entry.Get(field)
		name, _ := entry.Get("name")
		rows = append(rows, Row{
			Library:       library,
			ExecutionTime: execTime,
			Benchmark:     name,
		})
	}
	return rows
}

// Build concatenates the rows of every file in order and numbers them from
// zero.
func Build(files []*benchdata.File, suffix, field string) []Row {
	var rows []Row
	for _, file := range files {
		rows = append(rows, Rows(file, benchdata.LibraryName(file.Name, suffix), field)...)
	}
	for i := range rows {
		rows[i].Index = i
	}
	return rows
}

// Write writes the header and rows to w.
func Write(w *util.CSVWriter, rows []Row) error {
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Suffix == "" {
		o.Suffix = benchdata.DefaultSuffix
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Field == "" {
		o.Field = DefaultField
	}
	return o
}

// Run consolidates every matching file under opts.Dir. Without
// ContinueOnError the first bad file aborts the run and no output is
// written. With it, bad files are skipped, the output is written, and the
// returned error lists the skipped files.
func Run(opts Options) (*report.Summary, error) {
	opts = opts.withDefaults()
	summary := report.NewSummary("consolidate")
	output := util.ResolvePath(opts.Dir, opts.Output)

	paths, err := benchdata.Discover(opts.Dir, opts.Suffix)
	if err != nil {
		return summary, err
	}
	if len(paths) == 0 {
		logging.Warn("No files matching *%s found in %s", opts.Suffix, opts.Dir)
	}

	var files []*benchdata.File
	for _, path := range paths {
		logging.Info("Starting to process file: %s", path)
		file, err := benchdata.Load(path)
		if err != nil {
			if !opts.ContinueOnError {
				return summary, fmt.Errorf("consolidate: %w", err)
			}
			logging.Error("Skipping %v", err)
			summary.Add(report.Result{Input: path, Err: err})
			continue
		}
		logging.Info("Loaded data from %s", path)
		files = append(files, file)
		summary.Add(report.Result{Input: path, Output: output, Rows: len(file.Entries)})
		logging.Info("Finished processing file: %s", path)
	}

	rows := Build(files, opts.Suffix, opts.Field)
	if err := util.WriteCSV(output, func(w *util.CSVWriter) error {
		return Write(w, rows)
	}); err != nil {
		return summary, fmt.Errorf("write %s: %w", output, err)
	}
	logging.Info("All data has been processed and consolidated into %s", output)
	return summary, summary.Err()
}
