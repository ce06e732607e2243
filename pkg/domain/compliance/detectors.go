package compliance

import (
	"regexp"
	"strings"
)

// Condition names understood by the built-in detectors.
const (
	ConditionPersonalData = "contains personal data"
	ConditionHealthInfo   = "contains health information"
	ConditionWillDocument = "is will document"
)

// Identifier-shaped data that suggests personal information.
//
// The SSN and phone patterns share the same ten-digit shape and differ
// only in hyphen grouping, so a phone number written without hyphens is
// indistinguishable from an SSN. This is a known false-positive source;
// see the ambiguity tests in detectors_test.go.
var personalDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}-?\d{2}-?\d{4}\b`),                            // SSN
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), // email
	regexp.MustCompile(`\b\d{3}-?\d{3}-?\d{4}\b`),                            // US phone
}

var healthKeywords = []string{
	"medical",
	"health",
	"patient",
	"diagnosis",
	"treatment",
	"prescription",
	"doctor",
	"physician",
	"hospital",
	"clinic",
}

var willPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)last\s+will\s+and\s+testament`),
	regexp.MustCompile(`(?i)\bi,?\s+\w+\s+\w+,?\s+being\s+of\s+sound\s+mind`),
	regexp.MustCompile(`(?i)\bbequeath\b`),
	regexp.MustCompile(`(?i)\bexecutor\b`),
	regexp.MustCompile(`(?i)\bbeneficiary\b`),
}

// ContainsPersonalData reports whether content carries identifier-shaped
// personal data (SSN, email or phone patterns).
func ContainsPersonalData(content string) bool {
	for _, re := range personalDataPatterns {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// ContainsHealthInformation reports whether content mentions any of the
// health-related keywords, case-insensitively.
func ContainsHealthInformation(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range healthKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsWillDocument reports whether content reads like a will or testament.
func IsWillDocument(content string) bool {
	for _, re := range willPatterns {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// DefaultConditions returns a registry with the built-in detectors. Each
// condition carries the evidence terms relevant to what it detects, so
// evidence snippets stay tied to the condition that fired.
func DefaultConditions() *ConditionRegistry {
	reg := NewConditionRegistry()
	builtin := []Condition{
		{
			Name:          ConditionPersonalData,
			Check:         func(content string, _ map[string]interface{}) bool { return ContainsPersonalData(content) },
			EvidenceTerms: []string{"personal", "data", "email", "phone"},
		},
		{
			Name:          ConditionHealthInfo,
			Check:         func(content string, _ map[string]interface{}) bool { return ContainsHealthInformation(content) },
			EvidenceTerms: []string{"health", "medical", "patient"},
		},
		{
			Name:          ConditionWillDocument,
			Check:         func(content string, _ map[string]interface{}) bool { return IsWillDocument(content) },
			EvidenceTerms: []string{"will", "testament", "bequeath", "executor", "beneficiary"},
		},
	}
	for _, c := range builtin {
		// Registration of the fixed built-in set cannot collide.
		_ = reg.Register(c)
	}
	return reg
}
