// internal/benchdata/benchdata.go
// Package benchdata discovers and parses benchmark result files: JSON
// documents with a top-level "benchmarks" array of flat objects.
package benchdata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/benchcsv/internal/logging"
	"github.com/tidwall/gjson"
)

// DefaultSuffix marks benchmark result files in a directory.
const DefaultSuffix = "-data"

var (
	// ErrInvalidJSON is returned for files that are not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrMissingBenchmarks is returned when the top-level "benchmarks" array is absent.
	ErrMissingBenchmarks = errors.New(`missing top-level "benchmarks" array`)
)

// Field is one key/value pair of a benchmark entry.
type Field struct {
	Key   string
	Value gjson.Result
}

// Entry is a single benchmark result. Fields keep their document order.
type Entry struct {
	Fields []Field
}

// Get returns the value stored under key. When a key repeats, the last
// occurrence wins.
func (e Entry) Get(key string) (gjson.Result, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return gjson.Result{}, false
}

// Keys returns the entry's distinct keys in first-seen order.
func (e Entry) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	seen := make(map[string]struct{}, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := seen[f.Key]; ok {
			continue
		}
		seen[f.Key] = struct{}{}
		keys = append(keys, f.Key)
	}
	return keys
}

// File is a parsed benchmark result file.
type File struct {
	Path    string
	Name    string
	Entries []Entry
	// Context holds the optional top-level "context" object (host and run
	// metadata). It is informational only.
	Context []Field
	// Skipped counts "benchmarks" elements that were not objects.
	Skipped int
}

// Discover lists the regular files in dir whose names end with suffix, in
// lexical order.
func Discover(dir, suffix string) ([]string, error) {
	if suffix == "" {
		return nil, errors.New("file suffix must not be empty")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if len(name) <= len(suffix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			logging.Warn("Skipping %s: %v", path, err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// LibraryName derives the library label of a benchmark file from its name.
func LibraryName(path, suffix string) string {
	return strings.TrimSuffix(filepath.Base(path), suffix)
}

// Load reads and parses the benchmark file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Path = path
	file.Name = filepath.Base(path)
	if file.Skipped > 0 {
		logging.Warn("Skipped %d non-object benchmark entries in %s", file.Skipped, path)
	}
	for _, f := range file.Context {
		logging.Debug("%s context %s=%s", path, f.Key, Cell(f.Value))
	}
	return file, nil
}

// Parse decodes a benchmark document. The bare NaN, Infinity and -Infinity
// tokens that Google Benchmark writes for undefined aggregates are accepted
// and read as the strings "NaN", "Infinity" and "-Infinity".
func Parse(data []byte) (*File, error) {
	data = quoteNonFinite(data)
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrMissingBenchmarks
	}

	// Lookup by iteration rather than path so that keys are never
	// interpreted as gjson path syntax.
	var benchmarks, meta gjson.Result
	root.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "benchmarks":
			benchmarks = value
		case "context":
			meta = value
		}
		return true
	})
	if !benchmarks.IsArray() {
		return nil, ErrMissingBenchmarks
	}

	file := &File{}
	benchmarks.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			file.Skipped++
			return true
		}
		file.Entries = append(file.Entries, Entry{Fields: fields(value)})
		return true
	})
	if meta.IsObject() {
		file.Context = fields(meta)
	}
	return file, nil
}

var nonFinite = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// quoteNonFinite wraps non-finite number tokens found outside string
// literals in quotes so the document becomes valid JSON.
func quoteNonFinite(data []byte) []byte {
	if !bytes.Contains(data, []byte("NaN")) && !bytes.Contains(data, []byte("Infinity")) {
		return data
	}
	out := make([]byte, 0, len(data)+16)
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if tok := nonFiniteAt(data, i); tok != nil {
			out = append(out, '"')
			out = append(out, tok...)
			out = append(out, '"')
			i += len(tok) - 1
			continue
		}
		out = append(out, c)
	}
	return out
}

func nonFiniteAt(data []byte, i int) []byte {
	if i > 0 && isWordByte(data[i-1]) {
		return nil
	}
	for _, tok := range nonFinite {
		if !bytes.HasPrefix(data[i:], tok) {
			continue
		}
		if end := i + len(tok); end < len(data) && isWordByte(data[end]) {
			continue
		}
		return tok
	}
	return nil
}

func isWordByte(c byte) bool {
	return c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func fields(obj gjson.Result) []Field {
	var out []Field
	obj.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Field{Key: key.String(), Value: value})
		return true
	})
	return out
}

// Cell renders a value for a CSV cell. Numbers keep their source text,
// strings are unquoted, null and absent values are empty, and objects or
// arrays are written as compact JSON.
func Cell(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	case gjson.Number, gjson.True, gjson.False:
		return strings.TrimSpace(v.Raw)
	default:
		return gjson.Get(v.Raw, "@ugly").Raw
	}
}
