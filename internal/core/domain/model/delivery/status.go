package delivery

import (
	"fmt"
	"slices"

	"grameego/internal/pkg/errs"
)

// Status is the driver-facing lifecycle of a request.
//
//	Pending ──claim──> Assigned ──> Picked ──> Delivered
//	   ^                  │  └─────────────────────^
//	   └────unassign──────┘
type Status int

const (
	Unknown Status = iota
	Pending
	Assigned
	Picked
	Delivered
)

// transitions is the complete table of legal moves on the driver axis.
// Staying on Picked or Delivered is allowed so that a repeated advance is
// idempotent rather than an error.
var transitions = map[Status][]Status{
	Pending:   {Assigned},
	Assigned:  {Pending, Picked, Delivered},
	Picked:    {Picked, Delivered},
	Delivered: {Delivered},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		Picked:    "Picked",
		Delivered: "Delivered",
	}
}

// ParseStatus maps the wire name ("Pending", "Assigned", ...) of a status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

// ValidateCanHaveDriver enforces that a driver is attached exactly when the
// status is past Pending.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}
	if !hasDriver && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}
	return nil
}

// Assign is the claim transition, legal only from Pending.
func (s Status) Assign() (Status, error) {
	if !s.CanTransitionTo(Assigned) {
		return Unknown, errs.NewConflictError("this request has already been taken")
	}
	return Assigned, nil
}

// Advance moves a claimed request forward to Picked or Delivered. Moving
// backwards, or naming any other target, is a validation failure.
func (s Status) Advance(target Status) (Status, error) {
	if target != Picked && target != Delivered {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"newStatus",
			fmt.Errorf("%s is not a valid target, expected Picked or Delivered", target),
		)
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"newStatus",
			fmt.Errorf("cannot move status backwards from %s to %s", s, target),
		)
	}
	return target, nil
}

// Release returns a claimed request to the pool. It is only legal before
// pickup.
func (s Status) Release() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"deliveryStatus",
			fmt.Errorf("can unassign only while Assigned, current status is %s", s),
		)
	}
	return Pending, nil
}

// ValidateCancel allows cancellation only before any driver took the job.
func (s Status) ValidateCancel() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryStatus",
			fmt.Errorf("only Pending requests can be cancelled, current status is %s", s),
		)
	}
	return nil
}
