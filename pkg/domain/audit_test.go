package domain

import (
	"testing"
	"time"
)

func TestCalculateHash_Deterministic(t *testing.T) {
	e := Event{
		ID:        "e-1",
		Timestamp: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		Action:    "compliance.check",
		Actor:     "system",
		Metadata:  map[string]interface{}{"b": 2, "a": 1, "c": "three"},
	}

	first := e.CalculateHash()
	for i := 0; i < 10; i++ {
		if got := e.CalculateHash(); got != first {
			t.Fatalf("hash changed between calls: %s vs %s", got, first)
		}
	}
}

func TestCalculateHash_SensitiveToFields(t *testing.T) {
	base := Event{
		ID:        "e-1",
		Timestamp: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		Action:    "compliance.check",
		Actor:     "system",
	}
	baseHash := base.CalculateHash()

	mutations := []struct {
		name   string
		mutate func(Event) Event
	}{
		{"id", func(e Event) Event { e.ID = "e-2"; return e }},
		{"timestamp", func(e Event) Event { e.Timestamp = e.Timestamp.Add(time.Second); return e }},
		{"action", func(e Event) Event { e.Action = "legal.review.requested"; return e }},
		{"actor", func(e Event) Event { e.Actor = "human"; return e }},
		{"prev hash", func(e Event) Event { e.PrevHash = "abc"; return e }},
		{"metadata", func(e Event) Event { e.Metadata = map[string]interface{}{"k": "v"}; return e }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			mutated := tt.mutate(base)
			if got := mutated.CalculateHash(); got == baseHash {
				t.Errorf("changing %s did not change the hash", tt.name)
			}
		})
	}
}

func TestCanonicalJSON_KeyOrderIndependent(t *testing.T) {
	a := map[string]interface{}{"x": 1, "y": "two", "z": true}
	b := map[string]interface{}{"z": true, "y": "two", "x": 1}

	if canonicalJSON(a) != canonicalJSON(b) {
		t.Error("canonical JSON differs for maps with identical contents")
	}
	if canonicalJSON(nil) != "" {
		t.Errorf("canonicalJSON(nil) = %q, want empty", canonicalJSON(nil))
	}
}
