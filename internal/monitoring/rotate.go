package monitoring

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingFileOptions sizes a rotating log file. Zero values take the
// defaults noted on each field.
type RotatingFileOptions struct {
	MaxSizeMB  int  // 100
	MaxBackups int  // 3
	MaxAgeDays int  // 7
	Compress   bool // rotated files are gzipped when set
}

// NewRotatingFile returns a writer that appends to path and rotates it by
// size. Close it when the process is done logging.
func NewRotatingFile(path string, opts RotatingFileOptions) io.WriteCloser {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 100
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 3
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = 7
	}
	return &lumberjack.Logger{
		Filename:   path,
		LocalTime:  true,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
}
