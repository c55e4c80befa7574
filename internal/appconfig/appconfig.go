// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/benchcsv/internal/benchdata"
	"github.com/mwiater/benchcsv/internal/consolidate"
	"github.com/mwiater/benchcsv/internal/convert"
	"github.com/mwiater/benchcsv/internal/util"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "benchcsv.json"
	// EnvPrefix prefixes environment overrides, e.g. BENCHCSV_SUFFIX.
	EnvPrefix = "BENCHCSV"
)

// Config represents the top-level application configuration.
type Config struct {
	Dir             string `json:"dir"`
	Suffix          string `json:"suffix"`
	Output          string `json:"output"`
	Field           string `json:"field"`
	ContinueOnError bool   `json:"continueOnError"`
	SortColumns     bool   `json:"sortColumns"`
	LogFile         string `json:"logFile,omitempty"`
	Debug           bool   `json:"debug"`
	Quiet           bool   `json:"quiet"`
	ConfigPath      string `json:"-"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Dir:    ".",
		Suffix: benchdata.DefaultSuffix,
		Output: consolidate.DefaultOutput,
		Field:  consolidate.DefaultField,
	}
}

// DefaultValues returns Defaults keyed by configuration name, for seeding
// a key/value store such as viper.
func DefaultValues() map[string]any {
	d := Defaults()
	return map[string]any{
		"dir":             d.Dir,
		"suffix":          d.Suffix,
		"output":          d.Output,
		"field":           d.Field,
		"continueOnError": d.ContinueOnError,
		"sortColumns":     d.SortColumns,
		"logFile":         d.LogFile,
		"debug":           d.Debug,
		"quiet":           d.Quiet,
	}
}

// Validate reports settings no run can work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Suffix) == "" {
		return errors.New("suffix must not be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output must not be empty")
	}
	if strings.TrimSpace(c.Field) == "" {
		return errors.New("field must not be empty")
	}
	return nil
}

// OutputPath returns the consolidated CSV path, relative to Dir unless absolute.
func (c Config) OutputPath() string {
	return util.ResolvePath(c.Dir, c.Output)
}

// LogFilePath returns the log file path, or "" when file logging is off.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// ConsolidateOptions maps the configuration onto a consolidation run.
func (c Config) ConsolidateOptions() consolidate.Options {
	return consolidate.Options{
		Dir:             c.Dir,
		Suffix:          c.Suffix,
		Output:          c.Output,
		Field:           c.Field,
		ContinueOnError: c.ContinueOnError,
	}
}

// ConvertOptions maps the configuration onto a per-file conversion run.
func (c Config) ConvertOptions() convert.Options {
	return convert.Options{
		Dir:         c.Dir,
		Suffix:      c.Suffix,
		SortColumns: c.SortColumns,
	}
}

// Load reads a JSON configuration file over the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Defaults()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
