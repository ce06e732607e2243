package legal

import (
	"encoding/json"
	"fmt"
)

// ReviewStatus is the lifecycle state of a legal review.
type ReviewStatus string

const (
	ReviewPending          ReviewStatus = "pending"
	ReviewInProgress       ReviewStatus = "in_progress"
	ReviewCompleted        ReviewStatus = "completed"
	ReviewEscalated        ReviewStatus = "escalated"
	ReviewRequiresFollowup ReviewStatus = "requires_followup"
)

// reviewTransitions defines the allowed state transitions and their
// events. Map: currentStatus -> event -> targetStatus
var reviewTransitions = map[ReviewStatus]map[string]ReviewStatus{
	ReviewPending: {
		"begin":    ReviewInProgress,
		"escalate": ReviewEscalated,
	},
	ReviewInProgress: {
		"complete":      ReviewCompleted,
		"escalate":      ReviewEscalated,
		"flag_followup": ReviewRequiresFollowup,
	},
	ReviewEscalated: {
		"resume": ReviewInProgress,
	},
	ReviewRequiresFollowup: {
		"resume": ReviewInProgress,
	},
	ReviewCompleted: {},
}

// AllReviewStatuses returns all valid review statuses.
func AllReviewStatuses() []ReviewStatus {
	return []ReviewStatus{
		ReviewPending,
		ReviewInProgress,
		ReviewCompleted,
		ReviewEscalated,
		ReviewRequiresFollowup,
	}
}

// IsValid returns true if the status is a valid review status.
func (s ReviewStatus) IsValid() bool {
	_, ok := reviewTransitions[s]
	return ok
}

// String returns the string representation of the status.
func (s ReviewStatus) String() string {
	return string(s)
}

// CanTransitionWith returns true if the given event can trigger a
// transition from this status.
func (s ReviewStatus) CanTransitionWith(event string) bool {
	transitions, ok := reviewTransitions[s]
	if !ok {
		return false
	}
	_, ok = transitions[event]
	return ok
}

// TransitionWith returns the target status for a given event, or an
// error if not allowed.
func (s ReviewStatus) TransitionWith(event string) (ReviewStatus, error) {
	transitions, ok := reviewTransitions[s]
	if !ok {
		return s, fmt.Errorf("no transitions defined for status: %s", s)
	}
	target, ok := transitions[event]
	if !ok {
		return s, fmt.Errorf("event '%s' not allowed from status '%s'", event, s)
	}
	return target, nil
}

// ValidEvents returns all valid events that can be triggered from this
// status.
func (s ReviewStatus) ValidEvents() []string {
	transitions, ok := reviewTransitions[s]
	if !ok {
		return nil
	}
	var events []string
	for event := range transitions {
		events = append(events, event)
	}
	return events
}

// IsFinal returns true if this is a terminal status.
func (s ReviewStatus) IsFinal() bool {
	return s == ReviewCompleted
}

// ParseReviewStatus parses a string into a ReviewStatus.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	status := ReviewStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid review status: %s", s)
	}
	return status, nil
}

// MarshalJSON implements json.Marshaler.
func (s ReviewStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *ReviewStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*s = ReviewPending
		return nil
	}
	status := ReviewStatus(str)
	if !status.IsValid() {
		return fmt.Errorf("invalid review status: %s", str)
	}
	*s = status
	return nil
}
