package elasticlog

import (
	"github.com/rs/zerolog"
)

// ZerologSink is a LineSink that routes records into an existing zerolog
// pipeline, so applications already standardized on zerolog writers keep a
// single output path.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink creates a ZerologSink wrapping the given zerolog logger.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

// Emit maps the record's severity onto the corresponding zerolog level and
// attaches the logger name and fields. The record has already passed the
// owning logger's threshold, so the zerolog event is created unconditionally.
func (s *ZerologSink) Emit(severity Severity, name, message string, fields map[string]interface{}) {
	var event *zerolog.Event

	switch severity {
	case SeverityDebug:
		event = s.logger.Debug()
	case SeverityInfo:
		event = s.logger.Info()
	case SeverityWarning:
		event = s.logger.Warn()
	case SeverityError:
		event = s.logger.Error()
	case SeverityCritical:
		// zerolog's Fatal exits the process; CRITICAL records must not.
		event = s.logger.WithLevel(zerolog.FatalLevel)
	default:
		event = s.logger.Log()
	}

	if name != "" {
		event = event.Str("name", name)
	}

	event.Fields(fields).Msg(message)
}
