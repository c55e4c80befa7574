// internal/logging/logging.go
// Package logging routes the process-wide logger to the console and an
// optional log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05,000"

var (
	mu      sync.Mutex
	logFile *os.File
	debug   bool
	now     = time.Now

	// std carries no flags of its own; formatLine adds the timestamp.
	std = log.New(os.Stderr, "", 0)
)

// Init sends log output to stdout and, when logPath is set, appends it to
// logPath as well.
func Init(logPath string) error {
	return InitWithConsole(logPath, os.Stdout)
}

// InitWithConsole is Init with an explicit console writer. A nil console
// keeps only the log file.
func InitWithConsole(logPath string, console io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		std.SetOutput(io.Discard)
		return nil
	}
	std.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	std.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// SetDebug toggles Debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	debug = enabled
	mu.Unlock()
}

func Info(format string, args ...any)  { logEvent("INFO", format, args...) }
func Warn(format string, args ...any)  { logEvent("WARNING", format, args...) }
func Error(format string, args ...any) { logEvent("ERROR", format, args...) }

// Debug logs only after SetDebug(true).
func Debug(format string, args ...any) {
	mu.Lock()
	enabled := debug
	mu.Unlock()
	if enabled {
		logEvent("DEBUG", format, args...)
	}
}

func logEvent(level, format string, args ...any) {
	std.Println(formatLine(now(), level, fmt.Sprintf(format, args...)))
}

func formatLine(ts time.Time, level, msg string) string {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		level = "INFO"
	}
	return fmt.Sprintf("%s - %s - %s", ts.Format(timestampLayout), level, msg)
}
