package spqrlog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var Zero = NewZeroLogger("", "info", false)

var logFile *os.File

// NewZeroLogger builds a logger writing JSON lines, or human readable
// console lines when pretty is set, to the file at filepath (stdout if empty).
func NewZeroLogger(filepath string, level string, pretty bool) *zerolog.Logger {
	file, writer, err := newWriter(filepath)
	if err != nil {
		writer = os.Stdout
	}
	if file != nil {
		logFile = file
	}
	if pretty {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(writer).With().Timestamp().Logger().Level(parseLevel(level))
	return &logger
}

func UpdateZeroLogLevel(logLevel string) error {
	level := parseLevel(logLevel)
	zeroLogger := Zero.With().Logger().Level(level)
	Zero = &zeroLogger
	return nil
}

// ReloadLogger reopens the process logger on filepath keeping the current level.
func ReloadLogger(filepath string, pretty bool) {
	if filepath == "" && !pretty {
		return // this means os.Stdout, so no need to open new file
	}
	oldFile := logFile
	Zero = NewZeroLogger(filepath, Zero.GetLevel().String(), pretty)
	if oldFile != nil && oldFile != logFile {
		_ = oldFile.Close()
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warning", "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
