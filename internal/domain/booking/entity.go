package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrNoGuests         = errors.New("guest count must be positive")
	ErrTooManyGuests    = errors.New("guest count exceeds property maximum")
)

// PropertySpec is the slice of the property catalog a booking needs.
type PropertySpec struct {
	ID            uuid.UUID
	HostID        uuid.UUID
	MaxGuests     int
	PricePerNight int64
	CleaningFee   int64
}

type Booking struct {
	id         uuid.UUID
	reference  string
	guestID    uuid.UUID
	hostID     uuid.UUID
	propertyID uuid.UUID
	checkIn    time.Time
	checkOut   time.Time
	nights     int
	guestCount int
	pricing    Breakdown
	status     Status
	payStatus  PaymentStatus
	guestNotes string
	createdAt  time.Time
}

// NewBooking validates the stay request against the property and prices it.
// The result is always PENDING/PENDING; payment and confirmation move it on.
func NewBooking(ref string, guestID uuid.UUID, prop PropertySpec, checkIn, checkOut time.Time, guestCount int, notes string) (*Booking, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}
	if guestCount <= 0 {
		return nil, ErrNoGuests
	}
	if guestCount > prop.MaxGuests {
		return nil, ErrTooManyGuests
	}

	return &Booking{
		id:         uuid.New(),
		reference:  ref,
		guestID:    guestID,
		hostID:     prop.HostID,
		propertyID: prop.ID,
		checkIn:    checkIn,
		checkOut:   checkOut,
		nights:     nights,
		guestCount: guestCount,
		pricing:    Quote(prop.PricePerNight, prop.CleaningFee, nights),
		status:     StatusPending,
		payStatus:  PaymentPending,
		guestNotes: notes,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	ref string,
	guestID, hostID, propertyID uuid.UUID,
	checkIn, checkOut time.Time,
	guestCount int,
	pricing Breakdown,
	status Status,
	payStatus PaymentStatus,
	notes string,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		reference:  ref,
		guestID:    guestID,
		hostID:     hostID,
		propertyID: propertyID,
		checkIn:    checkIn,
		checkOut:   checkOut,
		nights:     Nights(checkIn, checkOut),
		guestCount: guestCount,
		pricing:    pricing,
		status:     status,
		payStatus:  payStatus,
		guestNotes: notes,
		createdAt:  createdAt,
	}
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) Reference() string           { return b.reference }
func (b *Booking) GuestID() uuid.UUID          { return b.guestID }
func (b *Booking) HostID() uuid.UUID           { return b.hostID }
func (b *Booking) PropertyID() uuid.UUID       { return b.propertyID }
func (b *Booking) CheckIn() time.Time          { return b.checkIn }
func (b *Booking) CheckOut() time.Time         { return b.checkOut }
func (b *Booking) Nights() int                 { return b.nights }
func (b *Booking) GuestCount() int             { return b.guestCount }
func (b *Booking) Pricing() Breakdown          { return b.pricing }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.payStatus }
func (b *Booking) GuestNotes() string          { return b.guestNotes }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
