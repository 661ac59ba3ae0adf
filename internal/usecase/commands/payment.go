package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shortstay/internal/domain/booking"
	"shortstay/internal/infra"
	"shortstay/internal/pkg/clock"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/pkg/reference"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
)

const currency = "NGN"

type InitializePaymentInput struct {
	ActorID    uuid.UUID
	BookingID  uuid.UUID
	PayerEmail string
}

type PaymentInitialized struct {
	PaymentID        uuid.UUID
	Reference        string
	Amount           int64
	Currency         string
	Gateway          string
	AuthorizationURL string
	AccessCode       string
	Sandbox          bool
}

type VerificationResult struct {
	BookingID       uuid.UUID
	Reference       string
	AlreadyVerified bool
}

type PaymentCommands interface {
	// Initialize creates the charge record and obtains the gateway redirect.
	Initialize(ctx context.Context, in InitializePaymentInput) (*PaymentInitialized, error)
	// Verify asks the gateway for the authoritative charge status and, on
	// success, confirms the booking and opens its escrow. Safe to replay:
	// callback and webhook may both land for the same reference.
	Verify(ctx context.Context, ref string) (*VerificationResult, error)
}

type paymentCommandsImpl struct {
	uow        shared.UnitOfWork
	gateway    shared.PaymentGateway
	confirmer  BookingConfirmer
	dispatcher shared.NotificationDispatcher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	gw shared.PaymentGateway,
	confirmer BookingConfirmer,
	dispatcher shared.NotificationDispatcher,
	clk clock.Clock,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:        uow,
		gateway:    gw,
		confirmer:  confirmer,
		dispatcher: dispatcher,
		clock:      clk,
		logger:     logger,
	}
}

func (c *paymentCommandsImpl) Initialize(ctx context.Context, in InitializePaymentInput) (*PaymentInitialized, error) {
	snap, err := c.uow.Bookings().FindByID(ctx, in.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.GuestID != in.ActorID {
		return nil, errs.ErrForbidden
	}
	if snap.Status != booking.StatusPending || snap.PaymentStatus != booking.PaymentPending {
		return nil, errs.Mark(errs.Newf("booking is %s/%s", snap.Status, snap.PaymentStatus), errs.ErrBookingNotPending)
	}

	now := c.clock.Now()
	payment := shared.NewPayment{
		ID:        uuid.New(),
		BookingID: snap.ID,
		PayerID:   snap.GuestID,
		Type:      shared.PaymentTypeBooking,
		Gateway:   c.gateway.Name(),
		Amount:    snap.Pricing.Total,
		Currency:  currency,
		Reference: reference.Payment(now),
	}
	if err := c.uow.Payments().Create(ctx, payment); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// The gateway round-trip happens after the row exists and outside any
	// transaction; a dangling PENDING row is harmless and expires with the
	// booking.
	auth, err := c.gateway.InitializeCharge(ctx, payment.Reference, payment.Amount, in.PayerEmail)
	if err != nil {
		// A gateway outage must not block the booking flow: the guest gets a
		// sandbox-marked handle and verification stays gateway-authoritative.
		c.logger.Warn("charge initialization failed, degrading to sandbox handle",
			"reference", payment.Reference, "gateway", c.gateway.Name(), "error", err.Error())
		auth = shared.SandboxAuthorization(payment.Reference)
	}

	c.logger.Info("payment initialized",
		"payment_id", payment.ID.String(),
		"booking_id", snap.ID.String(),
		"reference", payment.Reference,
		"amount", payment.Amount,
	)
	return &PaymentInitialized{
		PaymentID:        payment.ID,
		Reference:        payment.Reference,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Gateway:          c.gateway.Name(),
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
		Sandbox:          auth.Sandbox,
	}, nil
}

func (c *paymentCommandsImpl) Verify(ctx context.Context, ref string) (*VerificationResult, error) {
	pay, err := c.uow.Payments().FindByReference(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPaymentNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if pay.Status == shared.PaymentStateSuccess {
		return &VerificationResult{BookingID: pay.BookingID, Reference: ref, AlreadyVerified: true}, nil
	}
	if pay.Type != shared.PaymentTypeBooking {
		return nil, errs.Mark(errs.New("only charge payments are verifiable"), errs.ErrValidation)
	}

	status, err := c.gateway.VerifyCharge(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !status.Succeeded {
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Payments().MarkFailed(ctx, ref, status.Raw)
			return err
		})
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil, errs.Mark(errs.Newf("gateway reports charge %s as not successful", ref), errs.ErrPaymentNotSuccessful)
	}

	var alreadyVerified, needsReconcile bool
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Payments().MarkSucceeded(ctx, ref, status.GatewayRef, status.Raw)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !ok {
			// A concurrent verification of the same reference won the race.
			alreadyVerified = true
			return nil
		}

		err = c.confirmer.ConfirmPaid(ctx, tx, pay.BookingID, pay.ID)
		if errors.Is(err, errs.ErrBookingNotPending) {
			// The money arrived after the booking left PENDING (expired or
			// cancelled). Keep the payment marked successful and flag the
			// mismatch for reconciliation instead of rolling back.
			needsReconcile = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if alreadyVerified {
		return &VerificationResult{BookingID: pay.BookingID, Reference: ref, AlreadyVerified: true}, nil
	}
	if needsReconcile {
		c.logger.Error("payment succeeded for a booking that is no longer pending",
			"reference", ref, "booking_id", pay.BookingID.String())
		c.dispatcher.Notify(ctx, pay.PayerID, "payment.reconcile_required", map[string]any{
			"reference": ref,
		})
		return nil, errs.Mark(errs.Newf("booking %s is no longer pending", pay.BookingID), errs.ErrBookingNotPending)
	}

	c.logger.Info("payment verified and booking confirmed",
		"reference", ref, "booking_id", pay.BookingID.String())
	if snap, ferr := c.uow.Bookings().FindByID(ctx, pay.BookingID); ferr == nil {
		c.dispatcher.Notify(ctx, snap.GuestID, "payment.confirmed", map[string]any{
			"reference": snap.Reference,
			"amount":    pay.Amount,
		})
		c.dispatcher.Notify(ctx, snap.HostID, "booking.confirmed", map[string]any{
			"reference": snap.Reference,
			"check_in":  snap.CheckIn,
		})
	}
	return &VerificationResult{BookingID: pay.BookingID, Reference: ref}, nil
}

// releaseEscrowTx settles a HELD escrow to the host: the record flips to
// RELEASED and the payout lands in the host wallet, atomically with whatever
// lifecycle transition triggered it. A nil release (already settled or never
// opened) is a no-op.
func releaseEscrowTx(ctx context.Context, tx shared.Tx, snap *shared.BookingSnapshot, now time.Time) error {
	rel, err := tx.Escrows().Release(ctx, snap.ID, now)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if rel == nil {
		return nil
	}
	_, err = tx.Wallets().Credit(ctx, snap.HostID, rel.HostPayout, "Payout for booking "+snap.Reference, &snap.ID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// refundEscrowTx returns a cancelled booking's funds to the guest: the escrow
// flips to REFUNDED, a REFUND payment records the money movement, and the
// booking's payment status follows.
func refundEscrowTx(ctx context.Context, tx shared.Tx, snap *shared.BookingSnapshot, amount int64, now time.Time) error {
	charge, err := tx.Payments().FindSuccessfulCharge(ctx, snap.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrPaymentNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	ok, err := tx.Escrows().MarkRefunded(ctx, snap.ID, now)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return errs.Mark(errs.Newf("escrow for booking %s is not held", snap.ID), errs.ErrEscrowNotFound)
	}

	refund := shared.NewPayment{
		ID:        uuid.New(),
		BookingID: snap.ID,
		PayerID:   charge.PayerID,
		Type:      shared.PaymentTypeRefund,
		Gateway:   charge.Gateway,
		Amount:    amount,
		Currency:  charge.Currency,
		Reference: reference.Payment(now),
	}
	if err := tx.Payments().Create(ctx, refund); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Bookings().SetPaymentStatus(ctx, snap.ID, booking.PaymentRefunded); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
