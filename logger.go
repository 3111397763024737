// Package elasticlog provides a structured, level-based logging facade.
// A caller builds a record incrementally (per-call fields, persistent context
// fields, error and trace information), emits it at a severity level, and a
// chain of hooks observes or rewrites the record before it reaches the sinks:
// a formatted line sink, always, and an optional Elasticsearch document sink
// gated by the logger's severity threshold.
package elasticlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// reservedKeys are the field names the logger generates itself. They are
// stripped from caller-supplied data on every merge so caller fields can
// never override the record's own values.
var reservedKeys = []string{
	"name",
	"level",
	"levelname",
	"timestamp",
	"message",
	"@message",
	"@timestamp",
}

// Logger is the public API of the facade. A Logger instance owns its context,
// hook chain, severity threshold, and sink handles; there is no process-wide
// registry, so sharing a logger is an explicit decision of the caller.
//
// All methods are safe for concurrent use. Per-call fields live on Entry
// values rather than logger state, so concurrent emissions through one Logger
// cannot bleed fields into each other's records.
type Logger struct {
	name      string
	threshold atomic.Int32
	context   *Context
	hooks     hookChain

	out       io.Writer
	formatter Formatter
	line      LineSink

	mu       sync.RWMutex
	docSink  DocumentSink
	docIndex string
}

// Option configures a Logger.
type Option func(*Logger)

// WithLevel sets the initial severity threshold. It panics on a value outside
// the closed severity set.
func WithLevel(severity Severity) Option {
	if !severity.Valid() {
		panic(fmt.Sprintf("elasticlog: invalid severity provided to WithLevel: %d", int(severity)))
	}

	return func(l *Logger) {
		l.threshold.Store(int32(severity))
	}
}

// WithOutput directs the default writer-backed line sink to w. It has no
// effect when WithLineSink is also given.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.out = w
		}
	}
}

// WithFormatter sets the formatter of the default writer-backed line sink.
// It has no effect when WithLineSink is also given.
func WithFormatter(f Formatter) Option {
	return func(l *Logger) {
		if f != nil {
			l.formatter = f
		}
	}
}

// WithLineSink replaces the line sink entirely.
func WithLineSink(sink LineSink) Option {
	return func(l *Logger) {
		if sink != nil {
			l.line = sink
		}
	}
}

// WithHooks registers hooks at construction time, in the given order.
func WithHooks(hooks ...Hook) Option {
	return func(l *Logger) {
		for _, h := range hooks {
			l.hooks.add(h)
		}
	}
}

// New creates a Logger with the given name. The default threshold is DEBUG
// and the default line sink writes JSON lines to os.Stderr.
func New(name string, opts ...Option) *Logger {
	l := &Logger{
		name:      name,
		context:   newContext(),
		out:       os.Stderr,
		formatter: NewJSONFormatter(),
	}

	l.threshold.Store(int32(SeverityDebug))

	for _, opt := range opts {
		opt(l)
	}

	if l.line == nil {
		l.line = NewWriterSink(l.out, l.formatter)
	}

	return l
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

// Context returns the logger's persistent field store.
func (l *Logger) Context() *Context {
	return l.context
}

// Level returns the current severity threshold.
func (l *Logger) Level() Severity {
	return Severity(l.threshold.Load())
}

// SetLevel changes the severity threshold. It fails with ErrInvalidSeverity
// for values outside the closed set and leaves the threshold unchanged.
func (l *Logger) SetLevel(severity Severity) error {
	if _, err := severity.Name(); err != nil {
		return err
	}

	l.threshold.Store(int32(severity))

	return nil
}

// AddHook appends a hook to the chain. Hooks run in registration order;
// registering the same hook twice runs it twice.
func (l *Logger) AddHook(h Hook) {
	l.hooks.add(h)
}

// ClearHooks removes all registered hooks.
func (l *Logger) ClearHooks() {
	l.hooks.clear()
}

// Field starts a per-call Entry with a single staged field.
func (l *Logger) Field(name string, value interface{}) *Entry {
	return newEntry(l).Field(name, value)
}

// Fields starts a per-call Entry with multiple staged fields.
func (l *Logger) Fields(fields map[string]interface{}) *Entry {
	return newEntry(l).Fields(fields)
}

// Err starts a per-call Entry with the error folded into its fields.
func (l *Logger) Err(err error) *Entry {
	return newEntry(l).Err(err)
}

// ErrTrace starts a per-call Entry with the error and an explicit stack trace
// folded into its fields.
func (l *Logger) ErrTrace(err error, trace string) *Entry {
	return newEntry(l).ErrTrace(err, trace)
}

// Debug emits a DEBUG record with only context fields attached.
func (l *Logger) Debug(message string) error {
	return l.log(SeverityDebug, message, nil)
}

// Info emits an INFO record with only context fields attached.
func (l *Logger) Info(message string) error {
	return l.log(SeverityInfo, message, nil)
}

// Warning emits a WARNING record with only context fields attached.
func (l *Logger) Warning(message string) error {
	return l.log(SeverityWarning, message, nil)
}

// Error emits an ERROR record with only context fields attached.
func (l *Logger) Error(message string) error {
	return l.log(SeverityError, message, nil)
}

// Critical emits a CRITICAL record with only context fields attached.
func (l *Logger) Critical(message string) error {
	return l.log(SeverityCritical, message, nil)
}

// Log emits a record at an arbitrary severity. It fails with
// ErrInvalidSeverity for levels outside the closed set.
func (l *Logger) Log(severity Severity, message string) error {
	if _, err := severity.Name(); err != nil {
		return err
	}

	return l.log(severity, message, nil)
}

// EnableDocumentSink configures the Elasticsearch-backed document sink.
// The endpoint and index are resolved from the explicit arguments first and
// from ELASTICSEARCH_URL / ELASTICSEARCH_INDEX second; an unresolved value
// fails with ErrMissingEndpoint or ErrMissingIndex, and a client construction
// failure with a SinkConfigurationError wrapping the cause.
func (l *Logger) EnableDocumentSink(endpoint, index string, opts ...DocumentSinkOption) error {
	cfg, err := resolveElasticConfig(endpoint, index, opts...)
	if err != nil {
		return err
	}

	sink, err := newElasticSink(cfg)
	if err != nil {
		return err
	}

	l.SetDocumentSink(sink, cfg.Index)

	return nil
}

// SetDocumentSink installs an already-constructed document sink.
func (l *Logger) SetDocumentSink(sink DocumentSink, index string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.docSink = sink
	l.docIndex = index
}

// DisableDocumentSink removes the document sink; records keep flowing to the
// line sink only.
func (l *Logger) DisableDocumentSink() {
	l.SetDocumentSink(nil, "")
}

func (l *Logger) documentSink() (DocumentSink, string) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.docSink, l.docIndex
}

// log is the single path every emission funnels through: threshold gate,
// field assembly, hook dispatch, line emission, then conditional document
// dispatch. The line write always happens before (and independently of) the
// document write, so a SinkWriteError returned here never means a lost line.
func (l *Logger) log(severity Severity, message string, extra map[string]interface{}) error {
	threshold := l.Level()

	if !admits(severity, threshold) {
		// Below-threshold records have no observable effect; skip
		// assembly and hook dispatch entirely.
		return nil
	}

	record := &Record{
		Time:      time.Now(),
		Severity:  severity,
		Threshold: threshold,
		Name:      l.name,
		Message:   message,
		Fields:    l.assemble(extra),
	}

	l.hooks.dispatch(record, l.reportHookFailure)

	l.line.Emit(record.Severity, record.Name, record.Message, record.Fields)

	sink, index := l.documentSink()
	if sink == nil {
		return nil
	}

	levelName, err := severity.Name()
	if err != nil {
		return err
	}

	return sink.Index(index, buildDocument(record.Time, record.Message, levelName, record.Name, record.Fields))
}

// assemble is the single place merge order and the reserved-key policy are
// enforced: a snapshot of the persistent context, overlaid with the per-call
// fields (per-call wins on collision), with reserved keys stripped from the
// result.
func (l *Logger) assemble(extra map[string]interface{}) map[string]interface{} {
	fields := l.context.snapshot()

	for k, v := range extra {
		fields[k] = v
	}

	for _, k := range reservedKeys {
		delete(fields, k)
	}

	return fields
}

// reportHookFailure emits one warning-level internal record on the line sink
// naming the failing hook. It bypasses the hook chain so a failing hook can
// never recurse into its own failure report.
func (l *Logger) reportHookFailure(hook string, err error) {
	if !admits(SeverityWarning, l.Level()) {
		return
	}

	l.line.Emit(SeverityWarning, l.name, fmt.Sprintf("error applying hook %s", hook), map[string]interface{}{
		"hook":  hook,
		"error": err.Error(),
	})
}
