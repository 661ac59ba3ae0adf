package shared

import (
	"time"

	"shortstay/internal/domain/booking"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeBooking PaymentType = "BOOKING"
	PaymentTypeRefund  PaymentType = "REFUND"
)

type PaymentState string

const (
	PaymentStatePending PaymentState = "PENDING"
	PaymentStateSuccess PaymentState = "SUCCESS"
	PaymentStateFailed  PaymentState = "FAILED"
)

type EscrowState string

const (
	EscrowHeld     EscrowState = "HELD"
	EscrowReleased EscrowState = "RELEASED"
	EscrowRefunded EscrowState = "REFUNDED"
)

type PropertySnapshot struct {
	ID            uuid.UUID
	HostID        uuid.UUID
	Name          string
	MaxGuests     int
	PricePerNight int64
	CleaningFee   int64
}

type BookingSnapshot struct {
	ID                   uuid.UUID
	Reference            string
	GuestID              uuid.UUID
	HostID               uuid.UUID
	PropertyID           uuid.UUID
	CheckIn              time.Time
	CheckOut             time.Time
	Nights               int
	GuestCount           int
	Pricing              booking.Breakdown
	Status               booking.Status
	PaymentStatus        booking.PaymentStatus
	GuestNotes           string
	CancellationReason   *string
	CheckInReminderSent  bool
	CheckOutReminderSent bool
	CreatedAt            time.Time
}

type NewPayment struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	PayerID   uuid.UUID
	Type      PaymentType
	Gateway   string
	Amount    int64
	Currency  string
	Reference string
}

type PaymentSnapshot struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	PayerID          uuid.UUID
	Type             PaymentType
	Gateway          string
	Amount           int64
	Currency         string
	Reference        string
	GatewayReference *string
	Status           PaymentState
	CreatedAt        time.Time
}

type EscrowRecord struct {
	BookingID      uuid.UUID
	PaymentID      uuid.UUID
	TotalHeld      int64
	GuestFee       int64
	HostCommission int64
	HostPayout     int64
	ReleaseDate    time.Time
}

type EscrowSnapshot struct {
	BookingID      uuid.UUID
	PaymentID      uuid.UUID
	TotalHeld      int64
	GuestFee       int64
	HostCommission int64
	HostPayout     int64
	ReleaseDate    time.Time
	Status         EscrowState
}
