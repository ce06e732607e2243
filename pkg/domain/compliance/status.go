package compliance

import "fmt"

// Status is the outcome of evaluating one rule against one document.
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusNonCompliant Status = "non_compliant"
	StatusPartial      Status = "partial"
	StatusExempt       Status = "exempt"
	StatusUnderReview  Status = "under_review"
	StatusUnknown      Status = "unknown"
)

// AllStatuses returns all valid compliance statuses.
func AllStatuses() []Status {
	return []Status{
		StatusCompliant,
		StatusNonCompliant,
		StatusPartial,
		StatusExempt,
		StatusUnderReview,
		StatusUnknown,
	}
}

// IsValid returns true if the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompliant, StatusNonCompliant, StatusPartial,
		StatusExempt, StatusUnderReview, StatusUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid compliance status: %s", s)
	}
	return status, nil
}
