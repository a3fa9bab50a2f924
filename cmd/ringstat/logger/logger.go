// Package logger holds the ringstat debug logger. Logging is off by
// default; the --debug flag routes slog output to a dated file under the
// log directory.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the process logger. It discards everything until Init enables file
// output.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	filePrefix = "ringstat-"
	fileSuffix = ".log"
	retention  = 30 * 24 * time.Hour
)

// Options configures Init.
type Options struct {
	Enabled bool       // when false, all output is discarded
	Dir     string     // log directory; default ~/.ringstat/logs
	Level   slog.Level // minimum level; default Info
}

// Init configures the process logger. Call it once from the command setup
// before any logging happens.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	dir := opts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".ringstat", "logs")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sweepOldLogs(dir)

	name := filepath.Join(dir, filePrefix+time.Now().Format("2006-01-02")+fileSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

// sweepOldLogs removes ringstat log files past the retention window.
// Best effort; failures are ignored.
func sweepOldLogs(dir string) {
	cutoff := time.Now().Add(-retention)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}
