package compliance

import (
	"errors"
	"fmt"
	"time"
)

// ErrRuleNotFound is returned when a registry lookup misses.
var ErrRuleNotFound = errors.New("compliance rule not found")

// Registry holds the compiled rule set. It is read-only after
// construction; reloading rules means building a new registry.
type Registry struct {
	rules []*ComplianceRule
	byID  map[string]*ComplianceRule
}

// NewRegistry compiles and indexes the given rules. Every validation
// step must name a condition registered in conds: an unknown condition
// fails the load instead of silently evaluating to false later.
func NewRegistry(conds *ConditionRegistry, rules ...*ComplianceRule) (*Registry, error) {
	if conds == nil {
		return nil, fmt.Errorf("condition registry is required")
	}

	reg := &Registry{byID: make(map[string]*ComplianceRule, len(rules))}
	for _, rule := range rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("rule %q has no ID", rule.Name)
		}
		if _, dup := reg.byID[rule.ID]; dup {
			return nil, fmt.Errorf("duplicate rule ID %q", rule.ID)
		}
		if !rule.Severity.IsValid() {
			return nil, fmt.Errorf("rule %q: invalid severity %q", rule.ID, rule.Severity)
		}
		if err := rule.Compile(); err != nil {
			return nil, err
		}
		for i, step := range rule.ValidationLogic.Rules {
			if _, ok := conds.Lookup(step.Condition); !ok {
				return nil, fmt.Errorf("rule %q step %d: %w: %q",
					rule.ID, i, ErrUnknownCondition, step.Condition)
			}
		}
		reg.rules = append(reg.rules, rule)
		reg.byID[rule.ID] = rule
	}
	return reg, nil
}

// NewBuiltinRegistry returns a registry loaded with the built-in rule
// set evaluated against the default conditions.
func NewBuiltinRegistry(now time.Time) (*Registry, error) {
	return NewRegistry(DefaultConditions(), BuiltinRules(now)...)
}

// Get returns the rule with the given ID.
func (r *Registry) Get(id string) (*ComplianceRule, error) {
	rule, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	return rule, nil
}

// List returns the rules in registration order.
func (r *Registry) List() []*ComplianceRule {
	out := make([]*ComplianceRule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// BuiltinRules returns the built-in rule definitions: GDPR privacy,
// HIPAA healthcare and estate-planning execution requirements.
func BuiltinRules(now time.Time) []*ComplianceRule {
	return []*ComplianceRule{
		{
			ID:           "gdpr-privacy",
			Name:         "GDPR Privacy Compliance",
			Description:  "General Data Protection Regulation compliance for personal data",
			Category:     CategoryPrivacy,
			Jurisdiction: "EU",
			Regulation:   "GDPR",
			Severity:     SeverityCritical,
			Requirements: []Requirement{
				{
					ID:            "gdpr-consent",
					Description:   "Explicit consent for personal data processing",
					Mandatory:     true,
					Documentation: []string{"consent_forms", "privacy_policy"},
					ValidationCriteria: []ValidationCriteria{
						{Field: "content", Operator: OperatorContains, Value: "consent", Required: true},
					},
				},
			},
			Keywords: []string{"personal data", "privacy", "consent", "gdpr"},
			Patterns: []string{
				`(?i)\b(personal\s+data|privacy\s+policy|consent)\b`,
				// A bare identifier like an email address is itself
				// personal data, so it alone makes the rule relevant.
				`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			},
			ValidationLogic: ValidationLogic{
				Type: ValidationKeyword,
				Rules: []ValidationStep{
					{
						Condition: ConditionPersonalData,
						Action:    ActionRequire,
						Message:   "Document contains personal data and requires GDPR compliance review",
						Priority:  1,
					},
				},
				Confidence: 0.8,
			},
			Version:     "1.0",
			LastUpdated: now,
		},
		{
			ID:           "hipaa-healthcare",
			Name:         "HIPAA Healthcare Privacy",
			Description:  "Health Insurance Portability and Accountability Act compliance",
			Category:     CategoryHealthcare,
			Jurisdiction: "US",
			Regulation:   "HIPAA",
			Severity:     SeverityCritical,
			Requirements: []Requirement{
				{
					ID:            "hipaa-phi",
					Description:   "Protection of Protected Health Information (PHI)",
					Mandatory:     true,
					Documentation: []string{"authorization_forms", "privacy_notice"},
					ValidationCriteria: []ValidationCriteria{
						{Field: "content", Operator: OperatorContains, Value: "medical", Required: false},
					},
				},
			},
			Keywords: []string{"medical", "health", "patient", "phi", "hipaa"},
			Patterns: []string{`(?i)\b(medical\s+record|health\s+information|patient\s+data)\b`},
			ValidationLogic: ValidationLogic{
				Type: ValidationKeyword,
				Rules: []ValidationStep{
					{
						Condition: ConditionHealthInfo,
						Action:    ActionFlag,
						Message:   "Document may contain protected health information requiring HIPAA compliance",
						Priority:  1,
					},
				},
				Confidence: 0.7,
			},
			Version:     "1.0",
			LastUpdated: now,
		},
		{
			ID:           "estate-planning-law",
			Name:         "Estate Planning Legal Requirements",
			Description:  "Legal requirements for estate planning documents",
			Category:     CategoryEstatePlanning,
			Jurisdiction: "US",
			Regulation:   "State Estate Laws",
			Severity:     SeverityHigh,
			Requirements: []Requirement{
				{
					ID:            "will-witnesses",
					Description:   "Proper witnessing and execution of will documents",
					Mandatory:     true,
					Documentation: []string{"witness_signatures", "notarization"},
					ValidationCriteria: []ValidationCriteria{
						{Field: "signatures", Operator: OperatorGreaterThan, Value: 1, Required: true},
					},
				},
			},
			Keywords: []string{"will", "testament", "estate", "beneficiary", "witness", "notary"},
			Patterns: []string{`(?i)\b(last\s+will|testament|estate\s+plan)\b`},
			ValidationLogic: ValidationLogic{
				Type: ValidationPattern,
				Rules: []ValidationStep{
					{
						Condition: ConditionWillDocument,
						Action:    ActionRequire,
						Message:   "Will documents require proper legal execution and witnessing",
						Priority:  1,
					},
				},
				Confidence: 0.9,
			},
			Version:     "1.0",
			LastUpdated: now,
		},
	}
}
