package compliance

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCondition is returned when a validation step names a
// condition no detector has been registered for.
var ErrUnknownCondition = errors.New("unknown validation condition")

// Predicate reports whether a named condition holds for a document.
type Predicate func(content string, metadata map[string]interface{}) bool

// Condition couples a predicate with the evidence terms used to pull
// supporting snippets out of the document when the predicate fires.
// New detectors are added by registration, not by editing a dispatch
// switch.
type Condition struct {
	Name          string
	Check         Predicate
	EvidenceTerms []string
}

// ConditionRegistry maps condition names to their detectors.
type ConditionRegistry struct {
	byName map[string]Condition
}

// NewConditionRegistry creates an empty condition registry.
func NewConditionRegistry() *ConditionRegistry {
	return &ConditionRegistry{byName: make(map[string]Condition)}
}

// Register adds a condition. Registering a duplicate name is an error
// so two rule sets cannot silently shadow each other's detectors.
func (r *ConditionRegistry) Register(c Condition) error {
	if c.Name == "" {
		return fmt.Errorf("condition name cannot be empty")
	}
	if c.Check == nil {
		return fmt.Errorf("condition %q has no predicate", c.Name)
	}
	if _, exists := r.byName[c.Name]; exists {
		return fmt.Errorf("condition %q already registered", c.Name)
	}
	r.byName[c.Name] = c
	return nil
}

// Lookup returns the condition registered under name.
func (r *ConditionRegistry) Lookup(name string) (Condition, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Names returns all registered condition names, sorted.
func (r *ConditionRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
