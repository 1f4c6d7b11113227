// Package logging provides the program-wide leveled logger.
//
// Console output is human readable, the log file receives one JSON object per
// line. Both are backed by zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"harvester/internal/domain/consts"
	"harvester/internal/domain/regex"

	"github.com/rs/zerolog"
)

// Level is the debug verbosity (0-5). D(l, ...) is printed when l <= Level.
var Level int

var (
	mu      sync.Mutex
	logger  = newLogger(consoleWriter(os.Stdout))
	logFile *os.File
)

// SetupLogging opens (or creates) the log file and mirrors all output into it.
func SetupLogging(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(logFilePath), consts.PermsGenericDir); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.PermsLogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f

	logger = newLogger(zerolog.MultiLevelWriter(consoleWriter(os.Stdout), ansiStripWriter{w: f}))
	logger.Info().Msgf("=========== %v ===========", time.Now().Format(time.RFC1123Z))
	return nil
}

// SetOutput replaces the console destination. Mainly useful in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(consoleWriter(w))
}

// Close flushes and closes the log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = newLogger(consoleWriter(os.Stdout))
	return err
}

// E logs an error.
func E(format string, args ...any) string {
	msg := sprintf(format, args...)
	log().Error().Caller(1).Msg(msg)
	return msg
}

// W logs a warning.
func W(format string, args ...any) string {
	msg := sprintf(format, args...)
	log().Warn().Msg(msg)
	return msg
}

// I logs general information.
func I(format string, args ...any) string {
	msg := sprintf(format, args...)
	log().Info().Msg(msg)
	return msg
}

// S logs a success message.
func S(format string, args ...any) string {
	msg := sprintf(format, args...)
	log().Info().Bool("success", true).Msg(consts.GreenSuccess + msg)
	return msg
}

// D logs a debug message if the debug level is high enough.
func D(l int, format string, args ...any) string {
	if l > Level {
		return ""
	}
	msg := sprintf(format, args...)
	log().Debug().Int("lvl", l).Caller(1).Msg(msg)
	return msg
}

// P prints without a level tag (child output passthrough etc.).
func P(format string, args ...any) string {
	msg := sprintf(format, args...)
	log().Log().Msg(msg)
	return msg
}

// log returns the current logger under lock.
func log() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := logger
	return &l
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
}

// ansiStripWriter removes terminal color codes before they reach the log file.
type ansiStripWriter struct {
	w io.Writer
}

func (a ansiStripWriter) Write(p []byte) (int, error) {
	clean := regex.AnsiEscapeCompile().ReplaceAll(p, nil)
	clean = regex.AnsiEscapeJSONCompile().ReplaceAll(clean, nil)
	if _, err := a.w.Write(clean); err != nil {
		return 0, err
	}
	return len(p), nil
}
