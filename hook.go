package elasticlog

import (
	"fmt"
	"sync"
	"time"
)

// Record is the mutable record-in-flight passed through the hook chain. It is
// created once per log call and discarded when the call returns; hooks must
// not retain it past their own invocation.
type Record struct {
	// Time is the moment the record was created.
	Time time.Time

	// Severity is the level of this record.
	Severity Severity

	// Threshold is the owning logger's configured threshold.
	Threshold Severity

	// Name is the owning logger's name.
	Name string

	// Message may be rewritten by hooks.
	Message string

	// Fields may be rewritten by hooks. Reserved keys have already been
	// stripped by the time hooks run.
	Fields map[string]interface{}
}

// Hook is an ordered, side-effecting unit of record processing. A hook may
// mutate the record's Message and Fields in place. Returning an error (or
// panicking) is isolated: the failure is reported on the owning logger's line
// sink and the remaining hooks and the emission still run.
type Hook interface {
	// Name identifies the hook in internal failure reports.
	Name() string

	// Fire receives the shared record-in-flight.
	Fire(r *Record) error
}

type hookFunc struct {
	name string
	fn   func(r *Record) error
}

// HookFunc adapts a closure into a named Hook.
func HookFunc(name string, fn func(r *Record) error) Hook {
	return &hookFunc{name: name, fn: fn}
}

func (h *hookFunc) Name() string {
	return h.name
}

func (h *hookFunc) Fire(r *Record) error {
	return h.fn(r)
}

// hookChain is the ordered, mutable hook list. Registration order is
// invocation order; registering the same hook twice invokes it twice.
type hookChain struct {
	mu    sync.RWMutex
	hooks []Hook
}

func (c *hookChain) add(h Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hooks = append(c.hooks, h)
}

func (c *hookChain) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hooks = nil
}

func (c *hookChain) snapshot() []Hook {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Hook, len(c.hooks))
	copy(out, c.hooks)

	return out
}

// dispatch runs every registered hook against the shared record in FIFO
// order. Each failure is passed to report exactly once; no failure prevents
// subsequent hooks from running.
func (c *hookChain) dispatch(r *Record, report func(hook string, err error)) {
	for _, h := range c.snapshot() {
		if err := fireHook(h, r); err != nil {
			report(h.Name(), err)
		}
	}
}

// fireHook invokes a single hook, converting a panic into an error so one
// misbehaving hook cannot abort the log call.
func fireHook(h Hook, r *Record) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	return h.Fire(r)
}
