package delivery

import (
	"fmt"
	"strings"

	"grameego/internal/pkg/errs"
)

// ConfirmationStatus is the shop-facing axis of a request. Rejected is
// terminal.
type ConfirmationStatus int

const (
	ConfirmationUnknown ConfirmationStatus = iota
	ConfirmationPending
	ConfirmationAccepted
	ConfirmationRejected
)

func getConfirmationStrings() map[ConfirmationStatus]string {
	return map[ConfirmationStatus]string{
		ConfirmationUnknown:  "Unknown",
		ConfirmationPending:  "Pending",
		ConfirmationAccepted: "Accepted",
		ConfirmationRejected: "Rejected",
	}
}

func ParseConfirmationStatus(s string) (ConfirmationStatus, error) {
	for status, name := range getConfirmationStrings() {
		if status != ConfirmationUnknown && name == s {
			return status, nil
		}
	}
	return ConfirmationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shopConfirmationStatus",
		fmt.Errorf("%q is not a valid confirmation status", s),
	)
}

func (c ConfirmationStatus) String() string {
	if s, ok := getConfirmationStrings()[c]; ok {
		return s
	}
	return "Unknown"
}

func (c ConfirmationStatus) Validate() error {
	if c < ConfirmationPending || c > ConfirmationRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"shopConfirmationStatus",
			fmt.Errorf("%d is not a valid confirmation status", c),
		)
	}
	return nil
}

// Apply computes the status that results from a shop decision. A shop may
// change its mind after accepting, never after rejecting.
func (c ConfirmationStatus) Apply(action ConfirmationAction) (ConfirmationStatus, error) {
	if err := action.Validate(); err != nil {
		return ConfirmationUnknown, err
	}
	if c == ConfirmationRejected {
		return ConfirmationUnknown, errs.NewConflictError("order already rejected by shop")
	}
	if action == Reject {
		return ConfirmationRejected, nil
	}
	return ConfirmationAccepted, nil
}

// ConfirmationAction is what a shop asks for.
type ConfirmationAction int

const (
	UnknownAction ConfirmationAction = iota
	Accept
	Reject
)

func ParseConfirmationAction(s string) (ConfirmationAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept":
		return Accept, nil
	case "reject":
		return Reject, nil
	default:
		return UnknownAction, errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%q is not valid, action must be 'accept' or 'reject'", s),
		)
	}
}

func (a ConfirmationAction) String() string {
	switch a {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case UnknownAction:
	}
	return "unknown"
}

func (a ConfirmationAction) Validate() error {
	if a != Accept && a != Reject {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}
