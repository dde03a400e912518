// Package logger configures the default slog logger to write to a rotating
// log file
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/studytrack/studytrack/internal/osutil"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// Config holds logger configuration.
type Config struct {
	// Stderr receives a copy of every record when Debug is set.
	Stderr  io.Writer
	LogFile string
	Debug   bool
}

// Init installs a slog handler backed by charmbracelet/log as the default
// logger. Records go to cfg.LogFile and, in debug mode, to cfg.Stderr too.
func Init(cfg Config) (io.Closer, error) {
	err := os.MkdirAll(filepath.Dir(cfg.LogFile), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	level := log.InfoLevel

	var w io.Writer = fileWriter

	if cfg.Debug {
		level = log.DebugLevel

		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}

		w = io.MultiWriter(stderr, fileWriter)
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "studytrack",
		Formatter:       log.LogfmtFormatter,
	})

	slog.SetDefault(slog.New(handler))

	return fileWriter, nil
}
