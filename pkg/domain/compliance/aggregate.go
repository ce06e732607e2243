package compliance

// AggregateStatus derives the overall status of one rule check from its
// findings and exemptions. Precedence: any exemption wins, then absence
// of violations means compliant, then a critical violation means
// non-compliant, otherwise partial. StatusUnderReview and StatusUnknown
// are never produced here; they are reserved for manual overrides.
func AggregateStatus(findings []Finding, exemptions []AppliedExemption) Status {
	if len(exemptions) > 0 {
		return StatusExempt
	}

	violations := 0
	critical := false
	for _, f := range findings {
		if f.Type != FindingViolation {
			continue
		}
		violations++
		if f.Severity == SeverityCritical {
			critical = true
		}
	}

	if violations == 0 {
		return StatusCompliant
	}
	if critical {
		return StatusNonCompliant
	}
	return StatusPartial
}
