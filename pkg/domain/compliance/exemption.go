package compliance

// ResolveExemptions applies a rule's exemptions to a finished
// evaluation.
//
// Exemptions currently attach only when the evaluation produced no
// findings, regardless of the exemption's own condition text. Real
// condition evaluation is a known gap: as written, an exemption can
// never waive an actual finding, only decorate an already-compliant
// result. Whether exemptions should instead neutralize findings is an
// open question; the status aggregation in AggregateStatus honors
// exemptions first either way, so the two compose consistently.
func ResolveExemptions(rule *ComplianceRule, findings []Finding) []AppliedExemption {
	if len(findings) > 0 {
		return nil
	}

	var applied []AppliedExemption
	for _, ex := range rule.Exemptions {
		applied = append(applied, AppliedExemption{
			RuleID:     rule.ID,
			Reason:     ex.Reason,
			ApprovedBy: "system",
			ValidUntil: ex.ValidUntil,
		})
	}
	return applied
}
