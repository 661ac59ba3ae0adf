package repository

import (
	"context"
	"errors"

	"shortstay/internal/infra"
	"shortstay/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WalletRepository struct {
	db db.DBTX
}

func NewWalletRepository(dbtx db.DBTX) *WalletRepository {
	return &WalletRepository{db: dbtx}
}

// Credit upserts the balance and appends the ledger entry in two statements
// on the same DBTX. Callers run it inside a unit-of-work transaction so the
// pair commits or rolls back together; a balance without its ledger entry
// (or the reverse) cannot be observed.
func (r *WalletRepository) Credit(ctx context.Context, userID uuid.UUID, amount int64, description string, bookingID *uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO wallets (user_id, balance) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + $2, updated_at = now()
		RETURNING balance`,
		userID, amount,
	).Scan(&balance)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to credit wallet", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO wallet_transactions (id, user_id, type, amount, balance_after, description, booking_id)
		VALUES ($1, $2, 'CREDIT', $3, $4, $5, $6)`,
		uuid.New(), userID, amount, balance, description, bookingID,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to append wallet transaction", err)
	}
	return balance, nil
}

func (r *WalletRepository) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT balance FROM wallets WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil // no wallet row yet means an empty wallet
		}
		return 0, infra.WrapRepoErr("failed to read wallet balance", err)
	}
	return balance, nil
}
