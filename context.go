package elasticlog

import (
	"fmt"
	"sync"
)

// Context is a persistent, logger-scoped key-value store. Its fields are
// merged into every record emitted by the owning logger and are never cleared
// automatically. Mutation is expected to be rare (setup time) relative to
// per-call field use, so a read lock plus copy-on-read is sufficient.
type Context struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

func newContext() *Context {
	return &Context{
		data: make(map[string]interface{}),
	}
}

// Field upserts a single persistent field. The key must be a string; any
// other type fails with ErrInvalidContextKey and leaves the context
// unmodified.
func (c *Context) Field(key interface{}, value interface{}) error {
	name, ok := key.(string)
	if !ok {
		return fmt.Errorf("%w: expected string, got %T", ErrInvalidContextKey, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[name] = value

	return nil
}

// Fields bulk-upserts persistent fields. Keys are strings by construction of
// the map type, so no per-key check is needed.
func (c *Context) Fields(fields map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range fields {
		c.data[k] = v
	}
}

// Clear removes all persistent fields.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]interface{})
}

// Len returns the number of persistent fields.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

// snapshot returns a copy of the stored fields taken under the read lock.
// Callers own the returned map; the internal representation never escapes.
func (c *Context) snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]interface{}, len(c.data))

	for k, v := range c.data {
		out[k] = v
	}

	return out
}
