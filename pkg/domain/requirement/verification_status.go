package requirement

import (
	"encoding/json"
	"fmt"
	"sort"
)

// VerificationStatus is the outcome of the last verification of a requirement.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
)

// Verification events. Untyped so they can be used as statekit event types.
const (
	EventApprove = "approve"
	EventReject  = "reject"
)

// verificationTransitions maps currentStatus -> event -> targetStatus.
// Every status accepts both events: verification may be re-run at any time.
var verificationTransitions = map[VerificationStatus]map[string]VerificationStatus{
	StatusPending: {
		EventApprove: StatusVerified,
		EventReject:  StatusRejected,
	},
	StatusVerified: {
		EventApprove: StatusVerified,
		EventReject:  StatusRejected,
	},
	StatusRejected: {
		EventApprove: StatusVerified,
		EventReject:  StatusRejected,
	},
}

// AllVerificationStatuses returns all valid verification statuses.
func AllVerificationStatuses() []VerificationStatus {
	return []VerificationStatus{
		StatusPending,
		StatusVerified,
		StatusRejected,
	}
}

// IsValid returns true if the status is a valid verification status.
func (s VerificationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s VerificationStatus) String() string {
	return string(s)
}

// IsPending returns true if the requirement has never been verified.
func (s VerificationStatus) IsPending() bool {
	return s == StatusPending
}

// IsVerified returns true if the last verification accepted the requirement.
func (s VerificationStatus) IsVerified() bool {
	return s == StatusVerified
}

// IsRejected returns true if the last verification rejected the requirement.
func (s VerificationStatus) IsRejected() bool {
	return s == StatusRejected
}

// CanTransitionWith returns true if the given event can trigger a transition from this status.
func (s VerificationStatus) CanTransitionWith(event string) bool {
	transitions, ok := verificationTransitions[s]
	if !ok {
		return false
	}

	_, ok = transitions[event]
	return ok
}

// TransitionWith returns the target status for a given event, or an error if not allowed.
func (s VerificationStatus) TransitionWith(event string) (VerificationStatus, error) {
	transitions, ok := verificationTransitions[s]
	if !ok {
		return s, fmt.Errorf("no transitions defined for status: %s", s)
	}

	target, ok := transitions[event]
	if !ok {
		return s, fmt.Errorf("event '%s' not allowed from status '%s'", event, s)
	}

	return target, nil
}

// ValidEvents returns the events that can be triggered from this status, sorted.
func (s VerificationStatus) ValidEvents() []string {
	transitions, ok := verificationTransitions[s]
	if !ok {
		return nil
	}

	events := make([]string, 0, len(transitions))
	for event := range transitions {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// DisplayName returns a human-readable display name for the status.
func (s VerificationStatus) DisplayName() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusVerified:
		return "Verified"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// ParseVerificationStatus parses a string into a VerificationStatus.
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	status := VerificationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid verification status: %s", s)
	}
	return status, nil
}

// MarshalJSON implements json.Marshaler interface.
func (s VerificationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (s *VerificationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	// Accept empty string as pending for backward compatibility
	if str == "" {
		*s = StatusPending
		return nil
	}

	status := VerificationStatus(str)
	if !status.IsValid() {
		return fmt.Errorf("invalid verification status: %s", str)
	}

	*s = status
	return nil
}
