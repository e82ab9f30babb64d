// Package requirement models a single software requirement: its metadata,
// its SMART quality flags and its verification lifecycle.
package requirement

import (
	"strings"
	"time"
)

// Priority bounds. 5 is the highest priority.
const (
	MinPriority = 1
	MaxPriority = 5
)

// Validation messages, in the order Validate reports them.
const (
	ErrMsgEmptyDescription = "description must not be empty"
	ErrMsgEmptyTitle       = "title must not be empty"
	ErrMsgPriorityRange    = "priority must be between 1 and 5"
	ErrMsgNotSMART         = "requirement does not meet all SMART criteria"
)

const rejectionNotesPrefix = "validation errors: "

// now is the clock used for timestamps.
var now = time.Now

// Requirement is a single requirement of a project.
type Requirement struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Type        Type   `json:"type" yaml:"type"`
	Priority    int    `json:"priority" yaml:"priority"` // 1-5, 5 is highest

	// SMART criteria
	Specific   bool `json:"specific" yaml:"specific"`
	Measurable bool `json:"measurable" yaml:"measurable"`
	Achievable bool `json:"achievable" yaml:"achievable"`
	Relevant   bool `json:"relevant" yaml:"relevant"`
	TimeBound  bool `json:"time_bound" yaml:"time_bound"`

	CreatedDate        time.Time          `json:"created_date" yaml:"created_date"`
	LastModified       time.Time          `json:"last_modified" yaml:"last_modified"`
	VerificationStatus VerificationStatus `json:"verification_status" yaml:"verification_status"`
	VerificationNotes  string             `json:"verification_notes" yaml:"verification_notes"`
}

// Option configures a Requirement built with New.
type Option func(*Requirement)

// WithSMART sets the five SMART flags.
func WithSMART(specific, measurable, achievable, relevant, timeBound bool) Option {
	return func(r *Requirement) {
		r.Specific = specific
		r.Measurable = measurable
		r.Achievable = achievable
		r.Relevant = relevant
		r.TimeBound = timeBound
	}
}

// WithAllSMART marks every SMART criterion as met.
func WithAllSMART() Option {
	return WithSMART(true, true, true, true, true)
}

// New creates a pending requirement. SMART flags default to false.
func New(id, title, description string, typ Type, priority int, opts ...Option) *Requirement {
	ts := now()
	r := &Requirement{
		ID:                 id,
		Title:              title,
		Description:        description,
		Type:               typ,
		Priority:           priority,
		CreatedDate:        ts,
		LastModified:       ts,
		VerificationStatus: StatusPending,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate checks the requirement against the quality criteria and returns
// every failure message. The result is nil for a valid requirement.
func (r *Requirement) Validate() []string {
	var errs []string

	if r.Description == "" {
		errs = append(errs, ErrMsgEmptyDescription)
	}
	if r.Title == "" {
		errs = append(errs, ErrMsgEmptyTitle)
	}
	if r.Priority < MinPriority || r.Priority > MaxPriority {
		errs = append(errs, ErrMsgPriorityRange)
	}
	if !r.MeetsSMART() {
		errs = append(errs, ErrMsgNotSMART)
	}

	return errs
}

// IsValid returns true if Validate reports no errors.
func (r *Requirement) IsValid() bool {
	return len(r.Validate()) == 0
}

// MeetsSMART returns true only if all five SMART flags are set.
func (r *Requirement) MeetsSMART() bool {
	return r.Specific && r.Measurable && r.Achievable && r.Relevant && r.TimeBound
}

// MissingSMART lists the SMART criteria that are not met, in S-M-A-R-T order.
func (r *Requirement) MissingSMART() []string {
	flags := []struct {
		name string
		ok   bool
	}{
		{"specific", r.Specific},
		{"measurable", r.Measurable},
		{"achievable", r.Achievable},
		{"relevant", r.Relevant},
		{"time_bound", r.TimeBound},
	}

	var missing []string
	for _, f := range flags {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Verify records a verification decision. A valid requirement becomes
// verified with the given notes and a fresh LastModified. An invalid one
// becomes rejected, its notes replaced by the validation errors; notes is
// discarded and LastModified is left alone.
func (r *Requirement) Verify(notes string) {
	errs := r.Validate()
	valid := len(errs) == 0

	event := EventReject
	if valid {
		event = EventApprove
	}
	r.VerificationStatus = r.nextStatus(event, valid)

	if valid {
		r.VerificationNotes = notes
		r.LastModified = now()
		return
	}
	r.VerificationNotes = rejectionNotesPrefix + strings.Join(errs, ", ")
}

func (r *Requirement) nextStatus(event string, valid bool) VerificationStatus {
	from := r.VerificationStatus
	if !from.IsValid() {
		from = StatusPending
	}

	if sm, err := NewVerificationStateMachine(from, r.ID, valid); err == nil {
		if next, err := sm.Fire(event); err == nil {
			return next
		}
	}

	// The table and the machine agree on every transition Verify can fire.
	next, _ := from.TransitionWith(event)
	return next
}
