package legal

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain as untyped string constants for statekit.StateID
// compatibility. Values are kept in sync with the ReviewStatus
// constants in review_status.go.
const (
	StatePending          = "pending"
	StateInProgress       = "in_progress"
	StateCompleted        = "completed"
	StateEscalated        = "escalated"
	StateRequiresFollowup = "requires_followup"
)

// init validates at startup that FSM state constants match ReviewStatus
// values, so the machine and the value object stay in sync.
func init() {
	stateMap := map[string]ReviewStatus{
		StatePending:          ReviewPending,
		StateInProgress:       ReviewInProgress,
		StateCompleted:        ReviewCompleted,
		StateEscalated:        ReviewEscalated,
		StateRequiresFollowup: ReviewRequiresFollowup,
	}
	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match ReviewStatus %q - constants are out of sync", fsmState, status))
		}
	}
}

// ReviewContext carries state data through the machine.
type ReviewContext struct {
	ReviewID string
}

// ReviewStateMachine enforces the legal review lifecycle:
// pending -> in_progress -> completed, with side exits to escalated and
// requires_followup that can resume back into progress.
type ReviewStateMachine struct {
	interpreter *statekit.Interpreter[ReviewContext]
}

// NewReviewStateMachine builds a machine positioned at initialState.
func NewReviewStateMachine(initialState ReviewStatus, reviewID string) (*ReviewStateMachine, error) {
	if !initialState.IsValid() {
		return nil, fmt.Errorf("invalid initial review status: %s", initialState)
	}

	builder := statekit.NewMachine[ReviewContext]("legal-review").
		WithInitial(statekit.StateID(initialState)).
		WithContext(ReviewContext{ReviewID: reviewID})

	builder.State(StatePending).
		On("begin").Target(StateInProgress).
		On("escalate").Target(StateEscalated).
		Done()

	builder.State(StateInProgress).
		On("complete").Target(StateCompleted).
		On("escalate").Target(StateEscalated).
		On("flag_followup").Target(StateRequiresFollowup).
		Done()

	builder.State(StateEscalated).
		On("resume").Target(StateInProgress).
		Done()

	builder.State(StateRequiresFollowup).
		On("resume").Target(StateInProgress).
		Done()

	builder.State(StateCompleted).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build review state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &ReviewStateMachine{interpreter: interpreter}, nil
}

// Transition attempts to advance the review with the given event.
func (sm *ReviewStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("the action '%s' is not allowed while the review is in the '%s' state", event, before)
}

// Current returns the machine's current state value.
func (sm *ReviewStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// CurrentStatus returns the current state as a ReviewStatus value
// object.
func (sm *ReviewStateMachine) CurrentStatus() ReviewStatus {
	return ReviewStatus(sm.Current())
}

// CanTransition checks if the given event is valid for the current
// state. This delegates to the ReviewStatus value object.
func (sm *ReviewStateMachine) CanTransition(event string) bool {
	return sm.CurrentStatus().CanTransitionWith(event)
}

// ValidEvents returns the valid events for the current state.
func (sm *ReviewStateMachine) ValidEvents() []string {
	return sm.CurrentStatus().ValidEvents()
}

// IsFinal returns true if the review has reached a terminal state.
func (sm *ReviewStateMachine) IsFinal() bool {
	return sm.CurrentStatus().IsFinal()
}
