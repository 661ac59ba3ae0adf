package repository

import (
	"context"
	"errors"
	"time"

	"shortstay/internal/infra"
	"shortstay/internal/infra/db"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EscrowRepository struct {
	db db.DBTX
}

func NewEscrowRepository(dbtx db.DBTX) *EscrowRepository {
	return &EscrowRepository{db: dbtx}
}

// Open writes the booking's single escrow record. ON CONFLICT DO NOTHING
// makes retried confirmations harmless: the first write wins, duplicates
// report false.
func (r *EscrowRepository) Open(ctx context.Context, rec shared.EscrowRecord) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO escrows (booking_id, payment_id, total_held, guest_fee, host_commission, host_payout, release_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (booking_id) DO NOTHING`,
		rec.BookingID, rec.PaymentID, rec.TotalHeld, rec.GuestFee,
		rec.HostCommission, rec.HostPayout, rec.ReleaseDate, string(shared.EscrowHeld),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to open escrow", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EscrowRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) (*shared.EscrowSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT booking_id, payment_id, total_held, guest_fee, host_commission, host_payout, release_date, status
		FROM escrows WHERE booking_id = $1`, bookingID)

	var (
		snap   shared.EscrowSnapshot
		status string
	)
	err := row.Scan(&snap.BookingID, &snap.PaymentID, &snap.TotalHeld, &snap.GuestFee,
		&snap.HostCommission, &snap.HostPayout, &snap.ReleaseDate, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("escrow not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find escrow", err)
	}
	snap.Status = shared.EscrowState(status)
	return &snap, nil
}

func (r *EscrowRepository) Release(ctx context.Context, bookingID uuid.UUID, at time.Time) (*shared.EscrowSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE escrows SET status = $2, settled_at = $3
		WHERE booking_id = $1 AND status = $4
		RETURNING booking_id, payment_id, total_held, guest_fee, host_commission, host_payout, release_date, status`,
		bookingID, string(shared.EscrowReleased), at, string(shared.EscrowHeld),
	)

	var (
		snap   shared.EscrowSnapshot
		status string
	)
	err := row.Scan(&snap.BookingID, &snap.PaymentID, &snap.TotalHeld, &snap.GuestFee,
		&snap.HostCommission, &snap.HostPayout, &snap.ReleaseDate, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Not HELD: already released or refunded, or never opened.
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to release escrow", err)
	}
	snap.Status = shared.EscrowState(status)
	return &snap, nil
}

func (r *EscrowRepository) MarkRefunded(ctx context.Context, bookingID uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE escrows SET status = $2, settled_at = $3
		WHERE booking_id = $1 AND status = $4`,
		bookingID, string(shared.EscrowRefunded), at, string(shared.EscrowHeld),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark escrow refunded", err)
	}
	return tag.RowsAffected() > 0, nil
}
