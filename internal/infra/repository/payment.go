package repository

import (
	"context"
	"errors"

	"shortstay/internal/infra"
	"shortstay/internal/infra/db"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, booking_id, payer_id, type, gateway, amount, currency,
	reference, gateway_reference, status, created_at`

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p shared.NewPayment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, booking_id, payer_id, type, gateway, amount, currency, reference, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.BookingID, p.PayerID, string(p.Type), p.Gateway, p.Amount, p.Currency,
		p.Reference, string(shared.PaymentStatePending),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) FindByReference(ctx context.Context, ref string) (*shared.PaymentSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reference = $1`, ref)
	snap, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return snap, nil
}

func (r *PaymentRepository) MarkSucceeded(ctx context.Context, ref, gatewayRef string, rawResponse []byte) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = $2, gateway_reference = $3, gateway_response = $4, updated_at = now()
		WHERE reference = $1 AND status = $5`,
		ref, string(shared.PaymentStateSuccess), gatewayRef, rawResponse, string(shared.PaymentStatePending),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark payment succeeded", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, ref string, rawResponse []byte) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments SET status = $2, gateway_response = $3, updated_at = now()
		WHERE reference = $1 AND status = $4`,
		ref, string(shared.PaymentStateFailed), rawResponse, string(shared.PaymentStatePending),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark payment failed", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepository) FindSuccessfulCharge(ctx context.Context, bookingID uuid.UUID) (*shared.PaymentSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE booking_id = $1 AND type = $2 AND status = $3
		ORDER BY created_at DESC
		LIMIT 1`,
		bookingID, string(shared.PaymentTypeBooking), string(shared.PaymentStateSuccess),
	)
	snap, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("successful charge not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find successful charge", err)
	}
	return snap, nil
}

func scanPayment(row pgx.Row) (*shared.PaymentSnapshot, error) {
	var (
		snap    shared.PaymentSnapshot
		ptype   string
		pstatus string
	)
	err := row.Scan(
		&snap.ID, &snap.BookingID, &snap.PayerID, &ptype, &snap.Gateway,
		&snap.Amount, &snap.Currency, &snap.Reference, &snap.GatewayReference,
		&pstatus, &snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Type = shared.PaymentType(ptype)
	snap.Status = shared.PaymentState(pstatus)
	return &snap, nil
}
