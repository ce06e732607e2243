package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/lexguard/lexguard/pkg/domain"
)

// Evaluation budget for one rule. Document content is user-supplied and
// matched against regexes, so a hard ceiling bounds pathological inputs.
const evalTimeout = 2 * time.Second

// Evaluator runs a rule's validation steps against document content and
// emits findings.
type Evaluator struct {
	conditions *ConditionRegistry
	ids        domain.IDGenerator
	logger     *slog.Logger
}

// NewEvaluator creates an evaluator using the given condition registry.
func NewEvaluator(conditions *ConditionRegistry, ids domain.IDGenerator, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{conditions: conditions, ids: ids, logger: logger}
}

// Validate runs each of the rule's validation steps, in stored order,
// and returns a finding for every condition that holds. A step whose
// condition has no registered detector is logged and skipped; it never
// produces a finding, so registry bugs surface in the log rather than
// as silent under-reporting.
func (e *Evaluator) Validate(ctx context.Context, content string, metadata map[string]interface{}, rule *ComplianceRule) ([]Finding, error) {
	t := timeout.New[[]Finding](timeout.Config{DefaultTimeout: evalTimeout})
	return t.Execute(ctx, evalTimeout, func(ctx context.Context) ([]Finding, error) {
		var findings []Finding
		for _, step := range rule.ValidationLogic.Rules {
			cond, ok := e.conditions.Lookup(step.Condition)
			if !ok {
				e.logger.Warn("validation step names unregistered condition",
					"rule", rule.ID, "condition", step.Condition)
				continue
			}
			if !cond.Check(content, metadata) {
				continue
			}
			findings = append(findings, Finding{
				ID:          e.ids.NewID(),
				Type:        findingTypeFor(step.Action),
				Description: step.Message,
				Severity:    stepSeverity(step.Action, rule.Severity),
				Confidence:  rule.ValidationLogic.Confidence,
				Evidence:    ExtractEvidence(content, cond),
				Impact:      describeImpact(step.Action, rule),
				Remediation: remediationPlan(rule),
			})
		}
		return findings, nil
	})
}

// findingTypeFor maps a step action to the kind of finding it emits:
// flagged conditions are risks, everything else is a violation.
func findingTypeFor(action StepAction) FindingType {
	if action == ActionFlag {
		return FindingRisk
	}
	return FindingViolation
}

// stepSeverity derives a finding's severity from the step action: a
// hard requirement inherits the rule severity, a flag is medium, the
// rest are low.
func stepSeverity(action StepAction, ruleSeverity Severity) Severity {
	switch action {
	case ActionRequire:
		return ruleSeverity
	case ActionFlag:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func describeImpact(action StepAction, rule *ComplianceRule) string {
	switch action {
	case ActionRequire:
		return fmt.Sprintf("Non-compliance with %s may result in legal penalties", rule.Regulation)
	case ActionFlag:
		return "Potential compliance risk that should be reviewed"
	default:
		return "Compliance concern identified"
	}
}

// remediationPlan returns the generic three-step plan attached to every
// finding: review the requirement, consult a professional, implement.
func remediationPlan(rule *ComplianceRule) []RemediationStep {
	return []RemediationStep{
		{
			Step:        "Review compliance requirement",
			Description: fmt.Sprintf("Review %s requirements for this document type", rule.Regulation),
			Owner:       OwnerUser,
		},
		{
			Step:        "Consult legal professional",
			Description: fmt.Sprintf("Consult with attorney specializing in %s", rule.Category),
			Owner:       OwnerProfessional,
			Resources:   []string{"legal_consultation"},
		},
		{
			Step:        "Implement compliance measures",
			Description: "Update document to meet compliance requirements",
			Owner:       OwnerUser,
		},
	}
}

// ExtractEvidence pulls up to three sentences out of the content that
// mention the fired condition's evidence terms, so the evidence stays
// relevant to the specific violation rather than a generic sweep.
func ExtractEvidence(content string, cond Condition) []string {
	var evidence []string
	for _, sentence := range strings.Split(content, ".") {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= 10 {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, term := range cond.EvidenceTerms {
			if strings.Contains(lower, term) {
				evidence = append(evidence, trimmed)
				break
			}
		}
		if len(evidence) == 3 {
			break
		}
	}
	return evidence
}
