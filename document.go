package elasticlog

import (
	"fmt"
	"strings"
	"time"
)

// Document is one record shaped for the document sink: the generated
// @timestamp/@message/level/name envelope plus the record's merged fields.
type Document map[string]interface{}

// buildDocument derives the sink payload for one record. Field keys with a
// leading underscore are dropped so caller data cannot collide with the
// document store's own metadata fields, and an "error" value is stringified
// so structured error objects never reach the wire as opaque objects.
func buildDocument(ts time.Time, message, levelName, loggerName string, fields map[string]interface{}) Document {
	doc := Document{
		"@timestamp": ts.In(time.UTC).Format(time.RFC3339Nano),
		"@message":   message,
		"level":      levelName,
		"name":       loggerName,
	}

	for k, v := range fields {
		if strings.HasPrefix(k, "_") {
			continue
		}

		doc[k] = v
	}

	if v, ok := doc["error"]; ok {
		doc["error"] = stringifyError(v)
	}

	return doc
}

// stringifyError flattens an arbitrary "error" field value to a string.
func stringifyError(v interface{}) string {
	switch e := v.(type) {
	case string:
		return e
	case error:
		return e.Error()
	default:
		return fmt.Sprint(e)
	}
}
