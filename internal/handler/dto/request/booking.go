package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    time.Time `json:"check_in" binding:"required"`
	CheckOut   time.Time `json:"check_out" binding:"required"`
	GuestCount int       `json:"guest_count" binding:"required,min=1"`
	GuestNotes *string   `json:"guest_notes,omitempty"`
}

func (r CreateBookingRequest) Notes() string {
	if r.GuestNotes == nil {
		return ""
	}
	return strings.TrimSpace(*r.GuestNotes)
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}
