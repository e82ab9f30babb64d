package requirement

import (
	"encoding/json"
	"testing"
)

func TestVerificationStatus_IsValid(t *testing.T) {
	tests := []struct {
		status VerificationStatus
		valid  bool
	}{
		{StatusPending, true},
		{StatusVerified, true},
		{StatusRejected, true},
		{VerificationStatus("approved"), false},
		{VerificationStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVerificationStatus_TransitionWith(t *testing.T) {
	tests := []struct {
		from   VerificationStatus
		event  string
		to     VerificationStatus
		hasErr bool
	}{
		{StatusPending, EventApprove, StatusVerified, false},
		{StatusPending, EventReject, StatusRejected, false},
		{StatusVerified, EventApprove, StatusVerified, false},
		{StatusVerified, EventReject, StatusRejected, false},
		{StatusRejected, EventApprove, StatusVerified, false},
		{StatusRejected, EventReject, StatusRejected, false},
		{StatusVerified, "reopen", StatusVerified, true},
		{VerificationStatus("bogus"), EventApprove, VerificationStatus("bogus"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+tt.event, func(t *testing.T) {
			got, err := tt.from.TransitionWith(tt.event)
			if (err != nil) != tt.hasErr {
				t.Fatalf("TransitionWith() error = %v, wantErr %v", err, tt.hasErr)
			}
			if got != tt.to {
				t.Errorf("TransitionWith() = %v, want %v", got, tt.to)
			}
			if tt.from.CanTransitionWith(tt.event) == tt.hasErr {
				t.Errorf("CanTransitionWith() disagrees with TransitionWith()")
			}
		})
	}
}

func TestVerificationStatus_Predicates(t *testing.T) {
	if !StatusPending.IsPending() || StatusPending.IsVerified() || StatusPending.IsRejected() {
		t.Error("pending predicates wrong")
	}
	if !StatusVerified.IsVerified() || StatusVerified.IsRejected() {
		t.Error("verified predicates wrong")
	}
	if !StatusRejected.IsRejected() || StatusRejected.IsPending() {
		t.Error("rejected predicates wrong")
	}
}

func TestVerificationStatus_DisplayName(t *testing.T) {
	tests := map[VerificationStatus]string{
		StatusPending:  "Pending",
		StatusVerified: "Verified",
		StatusRejected: "Rejected",
	}
	for status, want := range tests {
		if got := status.DisplayName(); got != want {
			t.Errorf("DisplayName(%s) = %s, want %s", status, got, want)
		}
	}
}

func TestParseVerificationStatus(t *testing.T) {
	if got, err := ParseVerificationStatus("rejected"); err != nil || got != StatusRejected {
		t.Errorf("ParseVerificationStatus(rejected) = %v, %v", got, err)
	}
	if _, err := ParseVerificationStatus("done"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestVerificationStatus_JSON(t *testing.T) {
	data, err := json.Marshal(StatusVerified)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"verified"` {
		t.Errorf("MarshalJSON = %s", data)
	}

	var s VerificationStatus
	if err := json.Unmarshal([]byte(`""`), &s); err != nil || s != StatusPending {
		t.Errorf("empty string should decode as pending, got %q (%v)", s, err)
	}
	if err := json.Unmarshal([]byte(`"archived"`), &s); err == nil {
		t.Error("expected error for unknown status")
	}
}
