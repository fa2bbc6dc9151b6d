package booking

import "errors"

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidStatus           = errors.New("invalid booking status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrWorkerUnavailable       = errors.New("worker is not available for bookings")
	ErrBookingTerminal         = errors.New("booking is already completed or cancelled")
	ErrStatusChanged           = errors.New("booking status changed concurrently")
	ErrSelfBooking             = errors.New("cannot book yourself")
)
