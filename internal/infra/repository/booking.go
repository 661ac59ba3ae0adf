package repository

import (
	"context"
	"errors"
	"time"

	"shortstay/internal/domain/booking"
	"shortstay/internal/infra"
	"shortstay/internal/infra/db"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, reference, guest_id, host_id, property_id, check_in, check_out,
	nights, guest_count, subtotal, cleaning_fee, service_fee, total,
	status, payment_status, guest_notes, cancellation_reason,
	checkin_reminder_sent, checkout_reminder_sent, created_at`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	p := b.Pricing()
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (
			id, reference, guest_id, host_id, property_id, check_in, check_out,
			nights, guest_count, subtotal, cleaning_fee, service_fee, total,
			status, payment_status, guest_notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		b.ID(), b.Reference(), b.GuestID(), b.HostID(), b.PropertyID(),
		b.CheckIn(), b.CheckOut(), b.Nights(), b.GuestCount(),
		p.Subtotal, p.CleaningFee, p.ServiceFee, p.Total,
		b.Status().String(), b.PaymentStatus().String(), b.GuestNotes(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	snap, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return snap, nil
}

func (r *BookingRepository) ConfirmIfPending(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $2, payment_status = $3
		WHERE id = $1 AND status = $4`,
		id, booking.StatusConfirmed.String(), booking.PaymentPaid.String(), booking.StatusPending.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to confirm booking", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID, status booking.Status, reason string, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $2, cancellation_reason = $3, cancelled_at = $4
		WHERE id = $1 AND status IN ($5, $6)`,
		id, status.String(), reason, at,
		booking.StatusPending.String(), booking.StatusConfirmed.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel booking", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $2, checked_in_at = $3
		WHERE id = $1 AND status = $4`,
		id, booking.StatusCheckedIn.String(), at, booking.StatusConfirmed.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark booking checked in", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $2, checked_out_at = $3
		WHERE id = $1 AND status IN ($4, $5)`,
		id, booking.StatusCompleted.String(), at,
		booking.StatusConfirmed.String(), booking.StatusCheckedIn.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark booking completed", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status booking.PaymentStatus) error {
	_, err := r.db.Exec(ctx, `UPDATE bookings SET payment_status = $2 WHERE id = $1`, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to set booking payment status", err)
	}
	return nil
}

func (r *BookingRepository) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]shared.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE status = $1 AND payment_status = $2 AND created_at < $3
		ORDER BY created_at
		LIMIT $4`,
		booking.StatusPending.String(), booking.PaymentPending.String(), createdBefore, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale pending bookings", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) ListFinishedStays(ctx context.Context, checkOutBefore time.Time, limit int) ([]shared.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE status IN ($1, $2) AND payment_status = $3 AND check_out <= $4
		ORDER BY check_out
		LIMIT $5`,
		booking.StatusConfirmed.String(), booking.StatusCheckedIn.String(),
		booking.PaymentPaid.String(), checkOutBefore, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list finished stays", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) ListDueReminders(ctx context.Context, kind shared.ReminderKind, day time.Time, limit int) ([]shared.BookingSnapshot, error) {
	var query string
	var status booking.Status
	switch kind {
	case shared.ReminderCheckIn:
		query = `SELECT ` + bookingColumns + ` FROM bookings
			WHERE status = $1 AND check_in = $2 AND checkin_reminder_sent = FALSE LIMIT $3`
		status = booking.StatusConfirmed
	case shared.ReminderCheckOut:
		query = `SELECT ` + bookingColumns + ` FROM bookings
			WHERE status = $1 AND check_out = $2 AND checkout_reminder_sent = FALSE LIMIT $3`
		status = booking.StatusCheckedIn
	default:
		return nil, infra.WrapRepoErr("unknown reminder kind "+string(kind), nil, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, status.String(), day, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due reminders", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, kind shared.ReminderKind) (bool, error) {
	column := "checkin_reminder_sent"
	if kind == shared.ReminderCheckOut {
		column = "checkout_reminder_sent"
	}

	// The conditional update is the at-most-once guard: a concurrent job run
	// sees zero rows affected and skips the notification.
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET `+column+` = TRUE WHERE id = $1 AND `+column+` = FALSE`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark reminder sent", err)
	}
	return tag.RowsAffected() > 0, nil
}

func collectBookings(rows pgx.Rows) ([]shared.BookingSnapshot, error) {
	defer rows.Close()

	var result []shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

func scanBooking(row pgx.Row) (*shared.BookingSnapshot, error) {
	var (
		snap          shared.BookingSnapshot
		status        string
		paymentStatus string
		notes         *string
	)
	err := row.Scan(
		&snap.ID, &snap.Reference, &snap.GuestID, &snap.HostID, &snap.PropertyID,
		&snap.CheckIn, &snap.CheckOut, &snap.Nights, &snap.GuestCount,
		&snap.Pricing.Subtotal, &snap.Pricing.CleaningFee, &snap.Pricing.ServiceFee, &snap.Pricing.Total,
		&status, &paymentStatus, &notes, &snap.CancellationReason,
		&snap.CheckInReminderSent, &snap.CheckOutReminderSent, &snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Status = booking.Status(status)
	snap.PaymentStatus = booking.PaymentStatus(paymentStatus)
	if notes != nil {
		snap.GuestNotes = *notes
	}
	return &snap, nil
}
