package queries

import (
	"context"

	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
)

type WalletView struct {
	UserID   uuid.UUID `json:"user_id"`
	Balance  int64     `json:"balance"`
	Currency string    `json:"currency"`
}

type WalletQueries interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*WalletView, error)
}

type walletQueriesImpl struct {
	wallets shared.WalletRepository
}

func NewWalletQueries(wallets shared.WalletRepository) WalletQueries {
	return &walletQueriesImpl{wallets: wallets}
}

func (q *walletQueriesImpl) GetBalance(ctx context.Context, userID uuid.UUID) (*WalletView, error) {
	balance, err := q.wallets.Balance(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &WalletView{UserID: userID, Balance: balance, Currency: "NGN"}, nil
}
