package booking

import (
	"errors"
	"fmt"

	bookingsRepo "rosa/database/repository/bookings"
	catalogRepo "rosa/database/repository/catalog"
)

// BookingError is a business failure the caller can show to the user.
// Errors compare equal (errors.Is) when their codes match.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Is(target error) bool {
	t, ok := target.(*BookingError)
	return ok && t.Code == e.Code
}

var (
	ErrValidation         = &BookingError{Code: "validation_error", Message: "invalid booking request"}
	ErrServiceNotFound    = &BookingError{Code: "service_not_found", Message: "service not found"}
	ErrNotFound           = &BookingError{Code: "booking_not_found", Message: "booking not found"}
	ErrCabinAlreadyBooked = &BookingError{Code: "cabin_already_booked", Message: "this cabin already has a booking for this service on this day"}
	ErrSlotTaken          = &BookingError{Code: "slot_taken", Message: "someone else just booked this slot"}
	ErrSlotClosed         = &BookingError{Code: "slot_closed", Message: "this slot is not open for booking"}
	ErrInvalidTransition  = &BookingError{Code: "invalid_transition", Message: "this action is not available for the slot's current state"}
)

// ErrStoreUnavailable marks failures caused by the booking store being
// unreachable. It is not a BookingError: callers should retry later.
var ErrStoreUnavailable = errors.New("booking store unavailable")

func newError(base *BookingError, format string, args ...interface{}) error {
	return &BookingError{Code: base.Code, Message: fmt.Sprintf(format, args...)}
}

// translateStoreError maps repository errors onto business errors; errors
// already of type *BookingError pass through, anything else is wrapped as a
// storage failure.
func translateStoreError(op string, err error) error {
	var be *BookingError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &be):
		return be
	case errors.Is(err, bookingsRepo.ErrCabinTaken):
		return ErrCabinAlreadyBooked
	case errors.Is(err, bookingsRepo.ErrAlreadyExists), errors.Is(err, bookingsRepo.ErrConflict):
		return ErrSlotTaken
	case errors.Is(err, bookingsRepo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, bookingsRepo.ErrUnavailable):
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: booking store failure: %w", op, err)
}
