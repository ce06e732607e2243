package compliance

import (
	"errors"
	"testing"
	"time"
)

func testTime() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func TestNewBuiltinRegistry(t *testing.T) {
	reg, err := NewBuiltinRegistry(testTime())
	if err != nil {
		t.Fatalf("NewBuiltinRegistry: %v", err)
	}
	if reg.Len() != 3 {
		t.Errorf("Len = %d, want 3", reg.Len())
	}

	for _, id := range []string{"gdpr-privacy", "hipaa-healthcare", "estate-planning-law"} {
		rule, err := reg.Get(id)
		if err != nil {
			t.Errorf("Get(%q): %v", id, err)
			continue
		}
		if len(rule.Patterns) > 0 && len(rule.CompiledPatterns()) != len(rule.Patterns) {
			t.Errorf("rule %q: %d compiled patterns for %d declared", id, len(rule.CompiledPatterns()), len(rule.Patterns))
		}
	}
}

func TestNewRegistry_RejectsUnknownCondition(t *testing.T) {
	_, err := NewRegistry(DefaultConditions(), &ComplianceRule{
		ID:       "bad-cond",
		Severity: SeverityLow,
		ValidationLogic: ValidationLogic{
			Rules: []ValidationStep{{Condition: "does not exist", Action: ActionRequire}},
		},
	})
	if !errors.Is(err, ErrUnknownCondition) {
		t.Errorf("err = %v, want ErrUnknownCondition", err)
	}
}

func TestNewRegistry_RejectsDuplicateID(t *testing.T) {
	a := &ComplianceRule{ID: "same", Severity: SeverityLow}
	b := &ComplianceRule{ID: "same", Severity: SeverityHigh}
	if _, err := NewRegistry(DefaultConditions(), a, b); err == nil {
		t.Error("expected duplicate ID error")
	}
}

func TestNewRegistry_RejectsMissingID(t *testing.T) {
	if _, err := NewRegistry(DefaultConditions(), &ComplianceRule{Name: "anon", Severity: SeverityLow}); err == nil {
		t.Error("expected missing ID error")
	}
}

func TestNewRegistry_RejectsInvalidSeverity(t *testing.T) {
	if _, err := NewRegistry(DefaultConditions(), &ComplianceRule{ID: "x", Severity: "catastrophic"}); err == nil {
		t.Error("expected invalid severity error")
	}
}

func TestNewRegistry_RejectsBadPattern(t *testing.T) {
	if _, err := NewRegistry(DefaultConditions(), &ComplianceRule{
		ID:       "bad-re",
		Severity: SeverityLow,
		Patterns: []string{`([unclosed`},
	}); err == nil {
		t.Error("expected pattern compile error")
	}
}

func TestRegistryGet_NotFound(t *testing.T) {
	reg, err := NewRegistry(DefaultConditions())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := reg.Get("missing"); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("err = %v, want ErrRuleNotFound", err)
	}
}

func TestRegistryList_PreservesOrderAndCopies(t *testing.T) {
	a := &ComplianceRule{ID: "first", Severity: SeverityLow}
	b := &ComplianceRule{ID: "second", Severity: SeverityHigh}
	reg, err := NewRegistry(DefaultConditions(), a, b)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	list := reg.List()
	if len(list) != 2 || list[0].ID != "first" || list[1].ID != "second" {
		t.Errorf("List order = %v", []string{list[0].ID, list[1].ID})
	}

	list[0] = nil
	if reg.List()[0] == nil {
		t.Error("List should return a copy of the slice")
	}
}
