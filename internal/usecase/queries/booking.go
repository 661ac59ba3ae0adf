package queries

import (
	"context"
	"time"

	"shortstay/internal/infra"
	"shortstay/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingView is the read model handed to callers. Full pricing detail is
// included because both parties to a booking may see it; access control
// happens in BookingQueries, not here.
type BookingView struct {
	ID                 uuid.UUID `json:"id"`
	Reference          string    `json:"reference"`
	GuestID            uuid.UUID `json:"guest_id"`
	HostID             uuid.UUID `json:"host_id"`
	PropertyID         uuid.UUID `json:"property_id"`
	PropertyName       string    `json:"property_name"`
	CheckIn            time.Time `json:"check_in"`
	CheckOut           time.Time `json:"check_out"`
	Nights             int       `json:"nights"`
	GuestCount         int       `json:"guest_count"`
	Subtotal           int64     `json:"subtotal"`
	CleaningFee        int64     `json:"cleaning_fee"`
	ServiceFee         int64     `json:"service_fee"`
	Total              int64     `json:"total"`
	Status             string    `json:"status"`
	PaymentStatus      string    `json:"payment_status"`
	GuestNotes         *string   `json:"guest_notes,omitempty"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingView, error)
}

type BookingQueries interface {
	// GetByID returns the booking only to its guest or host.
	GetByID(ctx context.Context, actor, id uuid.UUID) (*BookingView, error)
	// ListForUser returns bookings where the user is guest or host.
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view.GuestID != actor && view.HostID != actor {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	views, err := q.store.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
