package elasticlog

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// TestJSONFormatter_Format directly tests the output of the jsonFormatter.
func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter()
	testTime := time.Date(2025, 9, 25, 12, 0, 0, 0, time.UTC)

	r := &Record{
		Time:     testTime,
		Severity: SeverityInfo,
		Name:     "svc",
		Message:  "json format test",
		Fields: map[string]interface{}{
			"user": "gopher",
		},
	}

	b, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() returned an error: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(b, &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if entry["message"] != "json format test" {
		t.Errorf("output missing message: %v", entry)
	}
	if entry["level"] != "INFO" {
		t.Errorf("output missing level: %v", entry)
	}
	if entry["name"] != "svc" {
		t.Errorf("output missing name: %v", entry)
	}
	if entry["user"] != "gopher" {
		t.Errorf("output missing fields: %v", entry)
	}
	if entry["timestamp"] != "2025-09-25T12:00:00Z" {
		t.Errorf("output missing or incorrect timestamp: %v", entry["timestamp"])
	}
}

// TestTextFormatter_Format verifies the behavior of the textFormatter,
// including colorization.
func TestTextFormatter_Format(t *testing.T) {
	testTime := time.Date(2025, 9, 27, 11, 30, 0, 0, time.UTC)

	t.Run("Basic structure and fields formatting is correct", func(t *testing.T) {
		f := NewTextFormatter(WithColor(false))

		r := &Record{
			Time:     testTime,
			Severity: SeverityError,
			Name:     "svc",
			Message:  "request failed",
			Fields: map[string]interface{}{
				"status": 500,
				"path":   "/api/v1/users",
			},
		}
		expected := `2025-09-27T11:30:00Z [ERROR] svc: request failed {path="/api/v1/users", status=500}`

		b, err := f.Format(r)
		if err != nil {
			t.Fatalf("Format() returned an error: %v", err)
		}
		got := string(b)
		if got != expected {
			t.Errorf("unexpected text output:\ngot:  %s\nwant: %s", got, expected)
		}
	})

	t.Run("Empty name omits the name segment", func(t *testing.T) {
		f := NewTextFormatter(WithColor(false))

		b, err := f.Format(&Record{Time: testTime, Severity: SeverityInfo, Message: "plain"})
		if err != nil {
			t.Fatalf("Format() returned an error: %v", err)
		}

		expected := `2025-09-27T11:30:00Z [INFO] plain`
		if got := string(b); got != expected {
			t.Errorf("unexpected text output:\ngot:  %s\nwant: %s", got, expected)
		}
	})

	t.Run("Colorization logic", func(t *testing.T) {
		r := &Record{
			Time:     testTime,
			Severity: SeverityError,
			Message:  "error message",
		}

		t.Run("WithColor(true) enables color", func(t *testing.T) {
			f := NewTextFormatter(WithColor(true))
			b, _ := f.Format(r)
			got := string(b)

			c := levelColorMap[SeverityError]
			c.EnableColor()
			expectedSubstring := c.Sprint("[ERROR]")

			if !strings.Contains(got, expectedSubstring) {
				t.Errorf("output should contain colored severity %q, but it was not found in %q", expectedSubstring, got)
			}
		})

		t.Run("WithColor(false) disables color", func(t *testing.T) {
			f := NewTextFormatter(WithColor(false))
			b, _ := f.Format(r)
			got := string(b)

			if strings.Contains(got, "\x1b") {
				t.Errorf("output should not contain any ANSI escape codes, but found some in %q", got)
			}
			if !strings.Contains(got, "[ERROR]") {
				t.Errorf("output should contain the uncolored severity string, but did not find it in %q", got)
			}
		})

		t.Run("Default behavior in non-TTY test environment is no color", func(t *testing.T) {
			// The `go test` runner is not an interactive terminal (TTY),
			// so the smart default should correctly disable colors.
			f := NewTextFormatter()
			b, _ := f.Format(r)
			got := string(b)

			if strings.Contains(got, "\x1b") {
				t.Errorf("output should not contain any ANSI escape codes in a non-TTY environment, but found some in %q", got)
			}
		})
	})
}
