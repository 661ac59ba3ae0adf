package errs

import "errors"

// Sentinel errors shared across the usecase layers. Handlers translate these
// into HTTP statuses; nothing below the handler layer knows about HTTP.
var (
	// Booking lifecycle
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrNotAvailable      = errors.New("dates not available")
	ErrExceedsMaxGuests  = errors.New("guest count exceeds property maximum")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
	ErrCannotCancel      = errors.New("booking can no longer be cancelled")
	ErrBookingNotPending = errors.New("booking is not pending")
	ErrNotConfirmed      = errors.New("booking is not confirmed")

	// Authorization
	ErrForbidden = errors.New("actor is not a party to this booking")

	// Payment & escrow
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotSuccessful = errors.New("payment is not successful")
	ErrEscrowNotFound       = errors.New("escrow record not found")
	ErrUpstreamUnavailable  = errors.New("payment gateway unavailable")

	// Input shape
	ErrValidation = errors.New("validation failed")

	// Unexpected store failures
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
