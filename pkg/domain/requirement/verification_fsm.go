package requirement

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain untyped string constants for statekit.StateID compatibility.
const (
	StatePending  = "pending"
	StateVerified = "verified"
	StateRejected = "rejected"
)

func init() {
	stateMap := map[string]VerificationStatus{
		StatePending:  StatusPending,
		StateVerified: StatusVerified,
		StateRejected: StatusRejected,
	}

	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match VerificationStatus %q - constants are out of sync", fsmState, status))
		}
	}
}

// VerificationContext carries the data guards need.
type VerificationContext struct {
	RequirementID string
	Valid         bool
}

// VerificationStateMachine drives a requirement's verification status.
type VerificationStateMachine struct {
	interpreter *statekit.Interpreter[VerificationContext]
	ctx         VerificationContext
	// guardBlocked is set when the isValid guard refused the last event.
	guardBlocked bool
}

// NewVerificationStateMachine builds a machine positioned at initial.
// valid reports whether the requirement currently passes validation; the
// approve event is guarded on it.
func NewVerificationStateMachine(initial VerificationStatus, requirementID string, valid bool) (*VerificationStateMachine, error) {
	if !initial.IsValid() {
		return nil, fmt.Errorf("invalid initial verification status: %q", initial)
	}

	sm := &VerificationStateMachine{
		ctx: VerificationContext{
			RequirementID: requirementID,
			Valid:         valid,
		},
	}

	builder := statekit.NewMachine[VerificationContext]("verification-machine").
		WithInitial(statekit.StateID(initial)).
		WithContext(sm.ctx).
		WithGuard("isValid", func(ctx VerificationContext, e statekit.Event) bool {
			if !ctx.Valid {
				sm.guardBlocked = true
			}
			return ctx.Valid
		})

	builder.State(StatePending).
		On(EventApprove).Target(StateVerified).Guard("isValid").
		On(EventReject).Target(StateRejected).
		Done()

	builder.State(StateVerified).
		On(EventApprove).Target(StateVerified).Guard("isValid").
		On(EventReject).Target(StateRejected).
		Done()

	builder.State(StateRejected).
		On(EventApprove).Target(StateVerified).Guard("isValid").
		On(EventReject).Target(StateRejected).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build verification state machine: %w", err)
	}

	sm.interpreter = statekit.NewInterpreter(machine)
	sm.interpreter.Start()

	return sm, nil
}

// Fire sends event and returns the resulting status. Approving an invalid
// requirement is refused by the isValid guard and leaves the state unchanged.
func (sm *VerificationStateMachine) Fire(event string) (VerificationStatus, error) {
	before := sm.CurrentStatus()
	if !before.CanTransitionWith(event) {
		return before, fmt.Errorf("event '%s' not allowed from status '%s' (valid: %s)",
			event, before, strings.Join(sm.ValidEvents(), ", "))
	}
	target, _ := before.TransitionWith(event)

	sm.guardBlocked = false
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.CurrentStatus()

	if sm.guardBlocked {
		return after, fmt.Errorf("requirement '%s' cannot be approved: it does not pass validation", sm.ctx.RequirementID)
	}
	if after != target {
		return after, fmt.Errorf("the action '%s' is not allowed while the requirement is in the '%s' state", event, before)
	}
	return after, nil
}

func (sm *VerificationStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// CurrentStatus returns the current state as a VerificationStatus.
func (sm *VerificationStateMachine) CurrentStatus() VerificationStatus {
	return VerificationStatus(sm.Current())
}

// ValidEvents returns the valid events for the current state.
func (sm *VerificationStateMachine) ValidEvents() []string {
	return sm.CurrentStatus().ValidEvents()
}
