package request

import (
	"github.com/google/uuid"
)

type InitializePaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Email     string    `json:"email" binding:"required,email"`
}

// VerifyPaymentRequest is the webhook body; the redirect callback carries the
// reference in the path instead.
type VerifyPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}
