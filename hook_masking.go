package elasticlog

import "strings"

const maskedValue = "*****"

// MaskingHook is a Hook that replaces the values of sensitive fields with a
// fixed mask before the record reaches any sink. Keys can be registered for
// case-sensitive or case-insensitive matching.
type MaskingHook struct {
	sensitiveKeys   map[string]struct{}
	insensitiveKeys map[string]struct{}
}

// NewMaskingHook creates a MaskingHook with no registered keys. A hook with
// no keys is a no-op.
func NewMaskingHook() *MaskingHook {
	return &MaskingHook{}
}

// Sensitive registers one or more keys for case-sensitive matching.
// It returns the hook so registrations can chain.
func (m *MaskingHook) Sensitive(keys ...string) *MaskingHook {
	if m.sensitiveKeys == nil {
		m.sensitiveKeys = make(map[string]struct{})
	}

	for _, k := range keys {
		m.sensitiveKeys[k] = struct{}{}
	}

	return m
}

// Insensitive registers one or more keys for case-insensitive matching.
// The keys are stored in lower-case for efficient lookup.
func (m *MaskingHook) Insensitive(keys ...string) *MaskingHook {
	if m.insensitiveKeys == nil {
		m.insensitiveKeys = make(map[string]struct{})
	}

	for _, k := range keys {
		m.insensitiveKeys[strings.ToLower(k)] = struct{}{}
	}

	return m
}

func (m *MaskingHook) Name() string {
	return "masking"
}

// Fire masks every matching field value in place.
func (m *MaskingHook) Fire(r *Record) error {
	if len(m.sensitiveKeys) == 0 && len(m.insensitiveKeys) == 0 {
		return nil
	}

	for k := range r.Fields {
		if m.isMasking(k) {
			r.Fields[k] = maskedValue
		}
	}

	return nil
}

// isMasking checks sensitive keys first, then falls back to insensitive keys.
func (m *MaskingHook) isMasking(key string) bool {
	if _, ok := m.sensitiveKeys[key]; ok {
		return true
	}

	if len(m.insensitiveKeys) > 0 {
		if _, ok := m.insensitiveKeys[strings.ToLower(key)]; ok {
			return true
		}
	}

	return false
}
