package response

import (
	"shortstay/internal/usecase/commands"
	"shortstay/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentInitializedResponse struct {
	PaymentID        uuid.UUID `json:"paymentId"`
	Reference        string    `json:"reference"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Gateway          string    `json:"gateway"`
	AuthorizationURL string    `json:"authorizationUrl"`
	AccessCode       string    `json:"accessCode"`
	Sandbox          bool      `json:"sandbox"`
}

func FromPaymentInitialized(r *commands.PaymentInitialized) *PaymentInitializedResponse {
	return &PaymentInitializedResponse{
		PaymentID:        r.PaymentID,
		Reference:        r.Reference,
		Amount:           r.Amount,
		Currency:         r.Currency,
		Gateway:          r.Gateway,
		AuthorizationURL: r.AuthorizationURL,
		AccessCode:       r.AccessCode,
		Sandbox:          r.Sandbox,
	}
}

type VerificationResponse struct {
	BookingID       uuid.UUID `json:"bookingId"`
	Reference       string    `json:"reference"`
	AlreadyVerified bool      `json:"alreadyVerified"`
}

func FromVerificationResult(r *commands.VerificationResult) *VerificationResponse {
	return &VerificationResponse{
		BookingID:       r.BookingID,
		Reference:       r.Reference,
		AlreadyVerified: r.AlreadyVerified,
	}
}

type WalletResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Balance  int64     `json:"balance"`
	Currency string    `json:"currency"`
}

func FromWalletView(v *queries.WalletView) *WalletResponse {
	return &WalletResponse{UserID: v.UserID, Balance: v.Balance, Currency: v.Currency}
}
