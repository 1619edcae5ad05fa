package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, services and controllers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAttendeeNotFound = errors.New("attendee not found")
	ErrUnknownCode      = errors.New("unknown code")
	ErrAlreadyRedeemed  = errors.New("code already redeemed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingContact   = errors.New("attendee has no email")
	ErrTransport        = errors.New("transport failure")
)

// AlreadyRedeemedError is returned when a code has already been consumed.
// It carries the original redemption so callers can show who used it and when.
type AlreadyRedeemedError struct {
	Original *Redemption
}

func (e *AlreadyRedeemedError) Error() string {
	if e.Original == nil {
		return ErrAlreadyRedeemed.Error()
	}
	return fmt.Sprintf("code already redeemed at %s", e.Original.UsedAt.Format("02/01/2006 15:04"))
}

// Is reports ErrAlreadyRedeemed so errors.Is works on wrapped values.
func (e *AlreadyRedeemedError) Is(target error) bool {
	return target == ErrAlreadyRedeemed
}
