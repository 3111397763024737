package elasticlog

import (
	"errors"
	"runtime/debug"
	"strings"
)

// maxChainDepth bounds the unwrap walk so unusual Unwrap cycles cannot hang
// a log call.
const maxChainDepth = 50

// errorFields normalizes an error and an optional caller-supplied trace into
// structured fields. When err is nil the "error" key is entirely absent, not
// null; when trace is empty the "trace" key is entirely absent. Trace capture
// is explicit: callers that want a stack attached pass one (see CaptureTrace).
func errorFields(err error, trace string) map[string]interface{} {
	fields := make(map[string]interface{}, 2)

	if err != nil {
		fields["error"] = err.Error()

		if chain := buildErrorChain(err); len(chain) > 1 {
			fields["error_chain"] = strings.Join(chain, " -> ")
			fields["error_root"] = chain[len(chain)-1]
		}
	}

	if trace != "" {
		fields["trace"] = trace
	}

	return fields
}

// buildErrorChain walks err's cause chain via errors.Unwrap and returns the
// messages outermost -> root. Repeated messages stop the walk to guard
// against cycles.
func buildErrorChain(err error) []string {
	var chain []string

	seen := make(map[string]bool)

	for err != nil && len(chain) < maxChainDepth {
		msg := err.Error()
		if seen[msg] {
			break
		}

		seen[msg] = true
		chain = append(chain, msg)

		err = errors.Unwrap(err)
	}

	return chain
}

// CaptureTrace returns a formatted stack trace of the calling goroutine,
// suitable for Entry.ErrTrace. It exists so trace attachment is an explicit
// caller decision rather than ambient state.
func CaptureTrace() string {
	return string(debug.Stack())
}
