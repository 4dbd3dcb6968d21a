package entity

import "errors"

var (
	// Space errors
	ErrSpaceNotFound = errors.New("space not found")
	ErrUnknownSlot   = errors.New("time slot is not offered by this space")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotBooked      = errors.New("time slot is already booked")
	ErrSlotUnavailable = errors.New("time slot is no longer available")

	// Draft errors
	ErrDraftIncomplete = errors.New("booking date and time slot must be set")
	ErrNoDraft         = errors.New("no booking draft in progress")

	// General errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAuthenticated = errors.New("not authenticated")
)
