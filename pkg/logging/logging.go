// Package logging provides structured logging for algobench using zerolog.
package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger     *zerolog.Logger
	prettyMode atomic.Bool
	logFile    io.Closer
)

func init() {
	// Default to JSON logging at info level
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger = &l
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Options configures the global logger.
type Options struct {
	// Debug lowers the level to Debug.
	Debug bool
	// Human switches stderr output to zerolog's console writer and adds
	// humanized companions (duration_h, bytes_h, ...) to completion events.
	Human bool
	// File, if set, also writes JSON logs to this path. The file is rotated
	// once it reaches MaxSizeMB.
	File string
	// MaxSizeMB is the rotation size of File. Default 50.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept. Default 3.
	MaxBackups int
}

// Init configures the global logger. Call Close before exiting when
// Options.File is set.
func Init(opts Options) {
	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	SetPrettyMode(opts.Human)

	var console io.Writer = os.Stderr
	if opts.Human {
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !StderrIsTerminal(),
		}
	}

	output := zerolog.LevelWriter(zerolog.LevelWriterAdapter{Writer: console})
	if opts.File != "" {
		_ = Close()
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 50),
			MaxBackups: orDefault(opts.MaxBackups, 3),
		}
		logFile = lj
		output = zerolog.MultiLevelWriter(console, lj)
	}

	l := zerolog.New(output).With().Timestamp().Logger()
	logger = &l
}

// Close flushes and closes the log file opened by Init, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// L returns the base logger.
func L() *zerolog.Logger {
	return logger
}

// WithPhase returns a logger with the phase field set.
func WithPhase(phase string) zerolog.Logger {
	return logger.With().Str("phase", phase).Logger()
}

// SetLogger allows overriding the global logger (useful for testing).
func SetLogger(l zerolog.Logger) {
	logger = &l
}

// SetPrettyMode toggles humanized companion fields on completion events.
func SetPrettyMode(on bool) {
	prettyMode.Store(on)
}

// IsPrettyMode reports whether humanized companion fields are emitted.
func IsPrettyMode() bool {
	return prettyMode.Load()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
