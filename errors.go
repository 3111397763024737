package elasticlog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeverity is returned when an integer level outside the
	// closed DEBUG..CRITICAL set is used.
	ErrInvalidSeverity = errors.New("elasticlog: invalid severity")

	// ErrInvalidContextKey is returned by Context.Field when the key is
	// not a string.
	ErrInvalidContextKey = errors.New("elasticlog: invalid context key")

	// ErrMissingEndpoint is returned by EnableDocumentSink when no
	// endpoint is given and ELASTICSEARCH_URL is unset.
	ErrMissingEndpoint = errors.New("elasticlog: empty document sink endpoint")

	// ErrMissingIndex is returned by EnableDocumentSink when no index is
	// given and ELASTICSEARCH_INDEX is unset.
	ErrMissingIndex = errors.New("elasticlog: empty document sink index")
)

// SinkConfigurationError wraps a failure to construct the document sink
// client, keeping the underlying cause reachable through errors.Unwrap.
type SinkConfigurationError struct {
	Err error
}

func (e *SinkConfigurationError) Error() string {
	return fmt.Sprintf("elasticlog: document sink configuration failed: %v", e.Err)
}

func (e *SinkConfigurationError) Unwrap() error {
	return e.Err
}

// SinkWriteError wraps a failed document write. It is returned by the
// severity methods so a dropped document is never silent; the line sink
// emission has already happened by the time this error surfaces.
type SinkWriteError struct {
	Index string
	Err   error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("elasticlog: indexing document to %q failed: %v", e.Index, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}
