package repository

import (
	"context"
	"errors"

	"shortstay/internal/infra"
	"shortstay/internal/infra/db"
	"shortstay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewColumns = `b.id, b.reference, b.guest_id, b.host_id, b.property_id, p.name,
	b.check_in, b.check_out, b.nights, b.guest_count,
	b.subtotal, b.cleaning_fee, b.service_fee, b.total,
	b.status, b.payment_status, b.guest_notes, b.cancellation_reason, b.created_at`

// BookingReadStore serves the query side: denormalized views for callers,
// no domain reconstruction.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+bookingViewColumns+`
		FROM bookings b JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingViewColumns+`
		FROM bookings b JOIN properties p ON p.id = b.property_id
		WHERE b.guest_id = $1 OR b.host_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for user", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking views", err)
	}
	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID, &view.Reference, &view.GuestID, &view.HostID, &view.PropertyID, &view.PropertyName,
		&view.CheckIn, &view.CheckOut, &view.Nights, &view.GuestCount,
		&view.Subtotal, &view.CleaningFee, &view.ServiceFee, &view.Total,
		&view.Status, &view.PaymentStatus, &view.GuestNotes, &view.CancellationReason, &view.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
