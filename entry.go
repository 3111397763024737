package elasticlog

// Entry is a single-shot builder for the fields of one log call. It is
// created by the logger's Field, Fields, Err and ErrTrace methods, populated
// by chaining, and consumed exactly once by the emitting call:
//
//	logger.Field("req_id", id).Field("user", u).Info("started")
//
// Because each Entry is a per-call value rather than logger state, concurrent
// goroutines sharing one Logger cannot bleed fields into each other's
// records.
type Entry struct {
	logger *Logger
	fields map[string]interface{}
}

func newEntry(l *Logger) *Entry {
	return &Entry{
		logger: l,
		fields: make(map[string]interface{}),
	}
}

// Field upserts a single field for the upcoming log call.
func (e *Entry) Field(name string, value interface{}) *Entry {
	if e.fields == nil {
		e.fields = make(map[string]interface{})
	}

	e.fields[name] = value

	return e
}

// Fields upserts multiple fields for the upcoming log call.
func (e *Entry) Fields(fields map[string]interface{}) *Entry {
	for k, v := range fields {
		e.Field(k, v)
	}

	return e
}

// Err folds an error into the entry's fields without changing the call's
// severity. The "error" key is set to the error's message; a nil error adds
// nothing at all.
func (e *Entry) Err(err error) *Entry {
	return e.Fields(errorFields(err, ""))
}

// ErrTrace is Err with an explicit stack trace attached under "trace" when
// the trace string is non-empty. Pair it with CaptureTrace:
//
//	logger.ErrTrace(err, elasticlog.CaptureTrace()).Error("request failed")
func (e *Entry) ErrTrace(err error, trace string) *Entry {
	return e.Fields(errorFields(err, trace))
}

// Debug emits the entry at DEBUG level.
func (e *Entry) Debug(message string) error {
	return e.emit(SeverityDebug, message)
}

// Info emits the entry at INFO level.
func (e *Entry) Info(message string) error {
	return e.emit(SeverityInfo, message)
}

// Warning emits the entry at WARNING level.
func (e *Entry) Warning(message string) error {
	return e.emit(SeverityWarning, message)
}

// Error emits the entry at ERROR level.
func (e *Entry) Error(message string) error {
	return e.emit(SeverityError, message)
}

// Critical emits the entry at CRITICAL level.
func (e *Entry) Critical(message string) error {
	return e.emit(SeverityCritical, message)
}

// Log emits the entry at an arbitrary severity. It fails with
// ErrInvalidSeverity for levels outside the closed set.
func (e *Entry) Log(severity Severity, message string) error {
	if _, err := severity.Name(); err != nil {
		return err
	}

	return e.emit(severity, message)
}

// emit hands the staged fields to the logger and consumes the entry: the
// staging map is detached so a reused Entry carries nothing over from a
// previous call.
func (e *Entry) emit(severity Severity, message string) error {
	fields := e.fields
	e.fields = nil

	return e.logger.log(severity, message, fields)
}
