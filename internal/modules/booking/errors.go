package booking

import "errors"

var (
	ErrInvalidDuration          = errors.New("booking must be longer than 15 minutes")
	ErrRoomNotFound             = errors.New("room not found")
	ErrConflictingBooking       = errors.New("room is already booked for this time")
	ErrBookingNotFound          = errors.New("booking not found")
	ErrForbidden                = errors.New("you are not allowed to cancel this booking")
	ErrCancellationWindowClosed = errors.New("bookings cannot be cancelled less than 24 hours before they start")
)
