package services

import "errors"

// Domain error kinds surfaced by the booking engine and review
// aggregator. Anything else coming out of a service call is a storage
// fault and is reported generically by the handlers.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrSlotConflict      = errors.New("time slot already booked")
	ErrDuplicateReview   = errors.New("service already reviewed by this customer")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
	ErrForbidden         = errors.New("not allowed to perform this operation")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("illegal status transition")
)
