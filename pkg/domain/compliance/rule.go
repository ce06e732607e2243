package compliance

import (
	"fmt"
	"regexp"
	"time"
)

// StepAction is what a validation step demands when its condition holds.
type StepAction string

const (
	ActionRequire   StepAction = "require"
	ActionFlag      StepAction = "flag"
	ActionRecommend StepAction = "recommend"
	ActionExempt    StepAction = "exempt"
)

// ValidationType describes how a rule's validation logic operates.
type ValidationType string

const (
	ValidationKeyword ValidationType = "keyword"
	ValidationPattern ValidationType = "pattern"
	ValidationCustom  ValidationType = "custom"
	ValidationAI      ValidationType = "ai"
)

// ComplianceRule is a versioned definition of a regulatory requirement.
// Rules are configuration data: loaded once, compiled, never mutated.
type ComplianceRule struct {
	ID              string          `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Description     string          `yaml:"description" json:"description"`
	Category        Category        `yaml:"category" json:"category"`
	Jurisdiction    string          `yaml:"jurisdiction" json:"jurisdiction"`
	Regulation      string          `yaml:"regulation" json:"regulation"`
	Severity        Severity        `yaml:"severity" json:"severity"`
	Requirements    []Requirement   `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	Keywords        []string        `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Patterns        []string        `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	ValidationLogic ValidationLogic `yaml:"validation_logic" json:"validation_logic"`
	Exemptions      []ExemptionRule `yaml:"exemptions,omitempty" json:"exemptions,omitempty"`
	Version         string          `yaml:"version" json:"version"`
	LastUpdated     time.Time       `yaml:"last_updated,omitempty" json:"last_updated,omitempty"`

	compiled []*regexp.Regexp
}

// Requirement is a discrete obligation a rule imposes on a document.
type Requirement struct {
	ID                 string               `yaml:"id" json:"id"`
	Description        string               `yaml:"description" json:"description"`
	Mandatory          bool                 `yaml:"mandatory" json:"mandatory"`
	Documentation      []string             `yaml:"documentation,omitempty" json:"documentation,omitempty"`
	ValidationCriteria []ValidationCriteria `yaml:"validation_criteria,omitempty" json:"validation_criteria,omitempty"`
	Deadline           string               `yaml:"deadline,omitempty" json:"deadline,omitempty"`
}

// ValidationCriteria is a single field-level assertion on a document.
type ValidationCriteria struct {
	Field    string           `yaml:"field" json:"field"`
	Operator CriteriaOperator `yaml:"operator" json:"operator"`
	Value    interface{}      `yaml:"value" json:"value"`
	Required bool             `yaml:"required" json:"required"`
}

// ValidationLogic holds a rule's ordered validation steps.
type ValidationLogic struct {
	Type       ValidationType   `yaml:"type" json:"type"`
	Rules      []ValidationStep `yaml:"rules" json:"rules"`
	Confidence float64          `yaml:"confidence" json:"confidence"`
}

// ValidationStep names a condition and the action taken when it holds.
// Steps run in stored order; Priority is informational metadata, not a
// sort key.
type ValidationStep struct {
	Condition string     `yaml:"condition" json:"condition"`
	Action    StepAction `yaml:"action" json:"action"`
	Message   string     `yaml:"message" json:"message"`
	Priority  int        `yaml:"priority" json:"priority"`
}

// ExemptionRule documents a waiver that may neutralize findings.
type ExemptionRule struct {
	Condition  string `yaml:"condition" json:"condition"`
	Reason     string `yaml:"reason" json:"reason"`
	ValidUntil string `yaml:"valid_until,omitempty" json:"valid_until,omitempty"`
}

// Compile parses the rule's pattern strings into regexps. It must be
// called before the rule is evaluated; Registry does this at load.
func (r *ComplianceRule) Compile() error {
	r.compiled = r.compiled[:0]
	for _, p := range r.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("rule %q: compile pattern %q: %w", r.ID, p, err)
		}
		r.compiled = append(r.compiled, re)
	}
	return nil
}

// CompiledPatterns returns the compiled form of the rule's patterns.
func (r *ComplianceRule) CompiledPatterns() []*regexp.Regexp {
	return r.compiled
}
