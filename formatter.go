package elasticlog

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
)

// Formatter converts a Record into the byte form a writer-backed line sink
// emits. The presentation is a sink concern; the core pipeline never depends
// on it.
type Formatter interface {
	Format(r *Record) ([]byte, error)
}

// jsonFormatter formats records as single-line JSON objects.
type jsonFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *jsonFormatter {
	return &jsonFormatter{}
}

// Format converts a Record to JSON. Generated keys always win: the fields map
// has had reserved keys stripped upstream, so the copy order here is only a
// second line of defense.
func (f *jsonFormatter) Format(r *Record) ([]byte, error) {
	m := make(map[string]interface{}, len(r.Fields)+4)

	for k, v := range r.Fields {
		m[k] = v
	}

	m["timestamp"] = r.Time.In(time.UTC).Format(time.RFC3339Nano)
	m["level"] = r.Severity.String()
	m["name"] = r.Name
	m["message"] = r.Message

	return json.Marshal(m)
}

var levelColorMap = map[Severity]*color.Color{
	SeverityDebug:    color.New(color.FgCyan),
	SeverityInfo:     color.New(color.FgGreen),
	SeverityWarning:  color.New(color.FgYellow),
	SeverityError:    color.New(color.FgRed),
	SeverityCritical: color.New(color.FgRed, color.Bold),
}

// textFormatter formats records as human-readable text, optionally with a
// colored severity tag.
type textFormatter struct {
	useColor bool
}

// TextFormatterOption configures a textFormatter.
type TextFormatterOption func(*textFormatter)

// WithColor explicitly enables or disables colored severity output,
// overriding the TTY auto-detection.
func WithColor(enabled bool) TextFormatterOption {
	return func(f *textFormatter) {
		f.useColor = enabled
	}
}

// NewTextFormatter creates a new TextFormatter. By default color is enabled
// only when standard output is an interactive terminal.
func NewTextFormatter(opts ...TextFormatterOption) *textFormatter {
	f := &textFormatter{
		useColor: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format converts a Record to a single-line text format:
//
//	2025-09-27T11:30:00Z [ERROR] svc: request failed {path="/api", status=500}
func (f *textFormatter) Format(r *Record) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString(r.Time.In(time.UTC).Format(time.RFC3339))
	b.WriteString(" ")

	tag := "[" + r.Severity.String() + "]"

	if c, ok := levelColorMap[r.Severity]; f.useColor && ok {
		c.EnableColor()
		tag = c.Sprint(tag)
	}

	b.WriteString(tag)
	b.WriteString(" ")

	if r.Name != "" {
		b.WriteString(r.Name)
		b.WriteString(": ")
	}

	b.WriteString(strings.TrimRight(r.Message, "\n"))

	// Add fields only if any exist.
	if len(r.Fields) > 0 {
		b.WriteString(" {")

		keys := make([]string, 0, len(r.Fields))

		for k := range r.Fields {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(k)
			b.WriteString("=")

			val := r.Fields[k]

			if s, ok := val.(string); ok {
				b.WriteString(fmt.Sprintf("%q", s))
			} else {
				b.WriteString(fmt.Sprint(val))
			}
		}

		b.WriteString("}")
	}

	return b.Bytes(), nil
}
