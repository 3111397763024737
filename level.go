package elasticlog

import (
	"fmt"
	"strings"
)

// Severity is the ordered level of a log record.
// The zero value is SeverityDebug.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityDebug:    "DEBUG",
	SeverityInfo:     "INFO",
	SeverityWarning:  "WARNING",
	SeverityError:    "ERROR",
	SeverityCritical: "CRITICAL",
}

var severityValues = map[string]Severity{
	"DEBUG":    SeverityDebug,
	"INFO":     SeverityInfo,
	"WARNING":  SeverityWarning,
	"ERROR":    SeverityError,
	"CRITICAL": SeverityCritical,
}

// Name returns the canonical name of the severity.
// It returns ErrInvalidSeverity for values outside the closed set; an unknown
// integer level is never silently mapped to a default.
func (s Severity) Name() (string, error) {
	name, ok := severityNames[s]
	if !ok {
		return "", fmt.Errorf("%w: [%d]", ErrInvalidSeverity, int(s))
	}

	return name, nil
}

// String implements fmt.Stringer. Unlike Name, it never fails; unknown values
// render as SEVERITY(n) so they remain visible in output.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}

	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// Valid reports whether s is a member of the closed severity set.
func (s Severity) Valid() bool {
	_, ok := severityNames[s]

	return ok
}

// ParseSeverity parses a string into a Severity.
// It is case-insensitive and returns ErrInvalidSeverity for unknown names.
func ParseSeverity(name string) (Severity, error) {
	s, ok := severityValues[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
	}

	return s, nil
}

// admits reports whether a record of the given severity reaches a sink
// configured with the given threshold.
func admits(record, threshold Severity) bool {
	return record >= threshold
}
