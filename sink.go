package elasticlog

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LineSink is the destination for formatted log lines. Implementations must
// never fail for well-formed fields; the core calls Emit unconditionally once
// a record passes the logger threshold.
type LineSink interface {
	Emit(severity Severity, name, message string, fields map[string]interface{})
}

// WriterSink is a LineSink that formats records and writes one line per
// record to an io.Writer. Writes are serialized so interleaved goroutines do
// not tear lines.
type WriterSink struct {
	mu        sync.Mutex
	out       io.Writer
	formatter Formatter
}

// NewWriterSink creates a WriterSink. A nil formatter defaults to JSON.
func NewWriterSink(out io.Writer, formatter Formatter) *WriterSink {
	if formatter == nil {
		formatter = NewJSONFormatter()
	}

	return &WriterSink{
		out:       out,
		formatter: formatter,
	}
}

// Emit formats and writes a single record. Formatting failures are reported
// on the process logger and the record is dropped from this sink only;
// they never propagate into the logging call.
func (s *WriterSink) Emit(severity Severity, name, message string, fields map[string]interface{}) {
	line, err := s.formatter.Format(&Record{
		Time:     time.Now(),
		Severity: severity,
		Name:     name,
		Message:  message,
		Fields:   fields,
	})
	if err != nil {
		log.Printf("elasticlog: failed to format record: %v", err)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintln(s.out, string(line))
}

// RotatingFileConfig configures a size/age-based rotating log file.
type RotatingFileConfig struct {
	// Filename is the file to write logs to.
	Filename string

	// MaxSizeMB is the maximum size in megabytes before rotation.
	MaxSizeMB int

	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int

	// MaxAgeDays is the maximum number of days to retain rotated files.
	MaxAgeDays int
}

// NewRotatingFileSink creates a WriterSink backed by a rotating log file.
func NewRotatingFileSink(cfg RotatingFileConfig, formatter Formatter) *WriterSink {
	return NewWriterSink(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}, formatter)
}
