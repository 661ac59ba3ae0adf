package response

import (
	"time"

	"shortstay/internal/usecase/commands"
	"shortstay/internal/usecase/queries"

	"github.com/google/uuid"
)

type PricingResponse struct {
	Subtotal    int64 `json:"subtotal"`
	CleaningFee int64 `json:"cleaningFee"`
	ServiceFee  int64 `json:"serviceFee"`
	Total       int64 `json:"total"`
}

type BookingCreatedResponse struct {
	ID              uuid.UUID       `json:"id"`
	Reference       string          `json:"reference"`
	Status          string          `json:"status"`
	Pricing         PricingResponse `json:"pricing"`
	PaymentDeadline time.Time       `json:"paymentDeadline"`
}

func FromBookingCreated(r *commands.BookingCreated) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:        r.ID,
		Reference: r.Reference,
		Status:    r.Status.String(),
		Pricing: PricingResponse{
			Subtotal:    r.Pricing.Subtotal,
			CleaningFee: r.Pricing.CleaningFee,
			ServiceFee:  r.Pricing.ServiceFee,
			Total:       r.Pricing.Total,
		},
		PaymentDeadline: r.PaymentDeadline,
	}
}

type BookingResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Reference          string          `json:"reference"`
	GuestID            uuid.UUID       `json:"guestId"`
	HostID             uuid.UUID       `json:"hostId"`
	PropertyID         uuid.UUID       `json:"propertyId"`
	PropertyName       string          `json:"propertyName"`
	CheckIn            time.Time       `json:"checkIn"`
	CheckOut           time.Time       `json:"checkOut"`
	Nights             int             `json:"nights"`
	GuestCount         int             `json:"guestCount"`
	Pricing            PricingResponse `json:"pricing"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"paymentStatus"`
	GuestNotes         *string         `json:"guestNotes,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:           v.ID,
		Reference:    v.Reference,
		GuestID:      v.GuestID,
		HostID:       v.HostID,
		PropertyID:   v.PropertyID,
		PropertyName: v.PropertyName,
		CheckIn:      v.CheckIn,
		CheckOut:     v.CheckOut,
		Nights:       v.Nights,
		GuestCount:   v.GuestCount,
		Pricing: PricingResponse{
			Subtotal:    v.Subtotal,
			CleaningFee: v.CleaningFee,
			ServiceFee:  v.ServiceFee,
			Total:       v.Total,
		},
		Status:             v.Status,
		PaymentStatus:      v.PaymentStatus,
		GuestNotes:         v.GuestNotes,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
	}
}

type CancellationResponse struct {
	RefundAmount   int64 `json:"refundAmount"`
	FullRefund     bool  `json:"fullRefund"`
	ProcessingDays int   `json:"processingDays"`
}

func FromCancellationResult(r *commands.CancellationResult) *CancellationResponse {
	return &CancellationResponse{
		RefundAmount:   r.RefundAmount,
		FullRefund:     r.FullRefund,
		ProcessingDays: r.ProcessingDays,
	}
}

type AvailabilityResponse struct {
	PropertyID uuid.UUID   `json:"propertyId"`
	CheckIn    time.Time   `json:"checkIn"`
	CheckOut   time.Time   `json:"checkOut"`
	Available  bool        `json:"available"`
	Conflicts  []time.Time `json:"conflicts,omitempty"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		PropertyID: v.PropertyID,
		CheckIn:    v.CheckIn,
		CheckOut:   v.CheckOut,
		Available:  v.Available,
		Conflicts:  v.Conflicts,
	}
}
