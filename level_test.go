package elasticlog

import (
	"errors"
	"testing"
)

func TestSeverityName(t *testing.T) {
	tests := []struct {
		name      string
		severity  Severity
		want      string
		expectErr bool
	}{
		{"Debug", SeverityDebug, "DEBUG", false},
		{"Info", SeverityInfo, "INFO", false},
		{"Warning", SeverityWarning, "WARNING", false},
		{"Error", SeverityError, "ERROR", false},
		{"Critical", SeverityCritical, "CRITICAL", false},
		{"Below range", Severity(-1), "", true},
		{"Above range", Severity(5), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.severity.Name()
			if (err != nil) != tt.expectErr {
				t.Errorf("Name() error = %v, expectErr %v", err, tt.expectErr)
				return
			}
			if tt.expectErr && !errors.Is(err, ErrInvalidSeverity) {
				t.Errorf("Name() error = %v, want ErrInvalidSeverity", err)
			}
			if got != tt.want {
				t.Errorf("Name() got = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	if got := SeverityError.String(); got != "ERROR" {
		t.Errorf("String() = %q, want ERROR", got)
	}

	// Unknown values stay visible instead of failing.
	if got := Severity(9).String(); got != "SEVERITY(9)" {
		t.Errorf("String() = %q, want SEVERITY(9)", got)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Severity
		expectErr bool
	}{
		{"Valid uppercase", "INFO", SeverityInfo, false},
		{"Valid lowercase", "debug", SeverityDebug, false},
		{"Valid mixed case", "WaRnInG", SeverityWarning, false},
		{"Invalid name", "TRACE", 0, true},
		{"Empty string", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if (err != nil) != tt.expectErr {
				t.Errorf("ParseSeverity() error = %v, expectErr %v", err, tt.expectErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseSeverity() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdmits(t *testing.T) {
	tests := []struct {
		record    Severity
		threshold Severity
		want      bool
	}{
		{SeverityDebug, SeverityWarning, false},
		{SeverityInfo, SeverityWarning, false},
		{SeverityWarning, SeverityWarning, true},
		{SeverityError, SeverityWarning, true},
		{SeverityCritical, SeverityWarning, true},
		{SeverityDebug, SeverityDebug, true},
	}

	for _, tt := range tests {
		if got := admits(tt.record, tt.threshold); got != tt.want {
			t.Errorf("admits(%v, %v) = %v, want %v", tt.record, tt.threshold, got, tt.want)
		}
	}
}
