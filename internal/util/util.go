// internal/util/util.go
package util

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
)

// WriteFile writes data to a file with 0o644 permissions.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// CSVWriter is a csv.Writer that keeps single-field records with an empty
// value visible. csv.Writer emits those as a blank line, which readers skip.
type CSVWriter struct {
	*csv.Writer
	buf *bytes.Buffer
}

// Write writes one record.
func (w *CSVWriter) Write(record []string) error {
	if len(record) != 1 || record[0] != "" {
		return w.Writer.Write(record)
	}
	w.Writer.Flush()
	if err := w.Writer.Error(); err != nil {
		return err
	}
	_, err := w.buf.WriteString("\"\"\n")
	return err
}

// WriteCSV renders a CSV document with fill and writes it to path. Nothing
// is written when fill or the CSV writer fails, so an existing file is left
// untouched.
func WriteCSV(path string, fill func(*CSVWriter) error) error {
	var buf bytes.Buffer
	w := &CSVWriter{Writer: csv.NewWriter(&buf), buf: &buf}
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// ResolvePath joins name onto dir unless name is already absolute.
func ResolvePath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
