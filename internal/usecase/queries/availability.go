package queries

import (
	"context"
	"time"

	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityView struct {
	PropertyID uuid.UUID   `json:"property_id"`
	CheckIn    time.Time   `json:"check_in"`
	CheckOut   time.Time   `json:"check_out"`
	Available  bool        `json:"available"`
	Conflicts  []time.Time `json:"conflicts,omitempty"`
}

// AvailabilityQueries answers the advisory pre-booking check. The answer can
// go stale the moment it is returned; the booking transaction is the only
// authority on whether dates are actually free.
type AvailabilityQueries interface {
	Check(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	availability shared.AvailabilityRepository
}

func NewAvailabilityQueries(availability shared.AvailabilityRepository) AvailabilityQueries {
	return &availabilityQueriesImpl{availability: availability}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error) {
	if !checkOut.After(checkIn) {
		return nil, errs.Mark(errs.New("check-out must be after check-in"), errs.ErrValidation)
	}
	conflicts, err := q.availability.Conflicts(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &AvailabilityView{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Available:  len(conflicts) == 0,
		Conflicts:  conflicts,
	}, nil
}
