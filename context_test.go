package elasticlog

import (
	"errors"
	"testing"
)

func TestContextField(t *testing.T) {
	c := newContext()

	if err := c.Field("env", "prod"); err != nil {
		t.Fatalf("Field() returned an error: %v", err)
	}
	if got := c.snapshot()["env"]; got != "prod" {
		t.Errorf("expected env=prod, got %v", got)
	}

	// Upsert replaces the existing value.
	if err := c.Field("env", "staging"); err != nil {
		t.Fatalf("Field() returned an error: %v", err)
	}
	if got := c.snapshot()["env"]; got != "staging" {
		t.Errorf("expected env=staging after upsert, got %v", got)
	}
}

func TestContextFieldRejectsNonStringKey(t *testing.T) {
	c := newContext()

	if err := c.Field("ok", 1); err != nil {
		t.Fatalf("Field() returned an error for a string key: %v", err)
	}

	err := c.Field(12, "x")
	if !errors.Is(err, ErrInvalidContextKey) {
		t.Fatalf("expected ErrInvalidContextKey, got %v", err)
	}

	// The failed call must leave the context unmodified.
	if c.Len() != 1 {
		t.Errorf("context was modified by a rejected key: %v", c.snapshot())
	}
}

func TestContextFields(t *testing.T) {
	c := newContext()

	c.Fields(map[string]interface{}{"a": 1, "b": 2})
	c.Fields(map[string]interface{}{"b": 3})

	data := c.snapshot()
	if data["a"] != 1 || data["b"] != 3 {
		t.Errorf("unexpected bulk-upsert result: %v", data)
	}
}

func TestContextClear(t *testing.T) {
	c := newContext()

	c.Fields(map[string]interface{}{"a": 1, "b": 2})
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty context after Clear, got %v", c.snapshot())
	}
}

func TestContextSnapshotIsACopy(t *testing.T) {
	c := newContext()

	if err := c.Field("k", "v"); err != nil {
		t.Fatalf("Field() returned an error: %v", err)
	}

	snap := c.snapshot()
	snap["k"] = "mutated"
	snap["new"] = true

	data := c.snapshot()
	if data["k"] != "v" {
		t.Error("mutating a snapshot leaked into the context")
	}
	if _, exists := data["new"]; exists {
		t.Error("adding to a snapshot leaked into the context")
	}
}
