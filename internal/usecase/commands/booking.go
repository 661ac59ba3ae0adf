// Package commands holds the write-side use cases. Every state mutation goes
// through the unit of work; gateway and notification round-trips stay outside
// transaction boundaries.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shortstay/internal/domain/booking"
	"shortstay/internal/domain/settlement"
	"shortstay/internal/infra"
	"shortstay/internal/pkg/clock"
	"shortstay/internal/pkg/config"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/pkg/reference"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
)

const batchLimit = 100

type CreateBookingInput struct {
	GuestID    uuid.UUID
	PropertyID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
	GuestNotes string
}

type BookingCreated struct {
	ID              uuid.UUID
	Reference       string
	Pricing         booking.Breakdown
	Status          booking.Status
	PaymentDeadline time.Time
}

type CancellationResult struct {
	RefundAmount   int64
	FullRefund     bool
	ProcessingDays int
}

// ConflictError lists the requested days that are already booked. It travels
// with ErrNotAvailable so the handler can tell the guest which dates to move.
type ConflictError struct {
	Dates []time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d of the requested days are taken", len(e.Dates))
}

type BookingCommands interface {
	BookingConfirmer

	Create(ctx context.Context, in CreateBookingInput) (*BookingCreated, error)
	// Cancel applies the cancellation policy as of the moment of the call and
	// frees the booked dates.
	Cancel(ctx context.Context, actor, bookingID uuid.UUID, reason string) (*CancellationResult, error)
	// CheckIn is a host action; it also releases the escrow to the host.
	CheckIn(ctx context.Context, actor, bookingID uuid.UUID) error

	// Batch operations driven by the job scheduler. Each returns the number of
	// bookings it transitioned; a row that fails is logged and skipped so the
	// rest of the batch still runs, with an aggregate error at the end.
	ExpireStalePending(ctx context.Context) (int, error)
	CompleteFinishedStays(ctx context.Context) (int, error)
	SendStayReminders(ctx context.Context) (int, error)
}

// BookingConfirmer is the slice of booking commands the payment verification
// flow runs inside its own transaction.
type BookingConfirmer interface {
	// ConfirmPaid flips a PENDING booking to CONFIRMED/PAID and opens its
	// escrow. Returns ErrBookingNotPending when the booking has already left
	// PENDING (expired, cancelled, or a replayed verification).
	ConfirmPaid(ctx context.Context, tx shared.Tx, bookingID, paymentID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow        shared.UnitOfWork
	catalog    shared.PropertyCatalog
	dispatcher shared.NotificationDispatcher
	clock      clock.Clock
	cfg        config.BookingConfig
	loc        *time.Location
	logger     *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	catalog shared.PropertyCatalog,
	dispatcher shared.NotificationDispatcher,
	clk clock.Clock,
	cfg config.BookingConfig,
	loc *time.Location,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:        uow,
		catalog:    catalog,
		dispatcher: dispatcher,
		clock:      clk,
		cfg:        cfg,
		loc:        loc,
		logger:     logger,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*BookingCreated, error) {
	prop, err := c.catalog.GetProperty(ctx, in.PropertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPropertyNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := c.clock.Now()
	checkIn := clock.StartOfDay(in.CheckIn, c.loc)
	checkOut := clock.StartOfDay(in.CheckOut, c.loc)
	if checkIn.Before(clock.StartOfDay(now, c.loc)) {
		return nil, errs.Mark(errs.New("check-in date is in the past"), errs.ErrValidation)
	}

	b, err := booking.NewBooking(
		reference.Booking(now),
		in.GuestID,
		booking.PropertySpec{
			ID:            prop.ID,
			HostID:        prop.HostID,
			MaxGuests:     prop.MaxGuests,
			PricePerNight: prop.PricePerNight,
			CleaningFee:   prop.CleaningFee,
		},
		checkIn, checkOut, in.GuestCount, in.GuestNotes,
	)
	if err != nil {
		if errors.Is(err, booking.ErrTooManyGuests) {
			return nil, errs.Mark(err, errs.ErrExceedsMaxGuests)
		}
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		conflicts, err := tx.Availability().Reserve(ctx, prop.ID, checkIn, checkOut)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return errs.Mark(&ConflictError{Dates: conflicts}, errs.ErrNotAvailable)
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking created",
		"booking_id", b.ID().String(),
		"reference", b.Reference(),
		"property_id", prop.ID.String(),
		"total", b.Pricing().Total,
	)
	c.dispatcher.Notify(ctx, in.GuestID, "booking.created", map[string]any{
		"reference": b.Reference(),
		"total":     b.Pricing().Total,
	})
	c.dispatcher.Notify(ctx, prop.HostID, "booking.requested", map[string]any{
		"reference": b.Reference(),
		"check_in":  checkIn,
	})

	return &BookingCreated{
		ID:              b.ID(),
		Reference:       b.Reference(),
		Pricing:         b.Pricing(),
		Status:          b.Status(),
		PaymentDeadline: now.Add(c.cfg.PaymentTimeout),
	}, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor, bookingID uuid.UUID, reason string) (*CancellationResult, error) {
	now := c.clock.Now()

	var result CancellationResult
	var snap *shared.BookingSnapshot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		snap, err = tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBookingNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.GuestID != actor {
			return errs.ErrForbidden
		}
		if snap.Status == booking.StatusCancelled {
			return errs.ErrAlreadyCancelled
		}
		if snap.Status != booking.StatusPending && snap.Status != booking.StatusConfirmed {
			return errs.Mark(errs.Newf("booking is %s", snap.Status), errs.ErrCannotCancel)
		}

		ok, err := tx.Bookings().MarkCancelled(ctx, bookingID, booking.StatusCancelled, reason, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !ok {
			// Lost a race with another cancel or the expiry job.
			return errs.ErrCannotCancel
		}

		if err := tx.Availability().Free(ctx, snap.PropertyID, snap.CheckIn, snap.CheckOut); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if snap.PaymentStatus != booking.PaymentPaid {
			return nil
		}

		decision := booking.RefundForCancellation(
			snap.Pricing.Total, snap.CheckIn, now,
			c.cfg.FreeCancellationWindow, c.cfg.RefundProcessingDays,
		)
		result = CancellationResult{
			RefundAmount:   decision.Amount,
			FullRefund:     decision.FullRefund,
			ProcessingDays: decision.ProcessingDays,
		}
		if decision.FullRefund {
			return refundEscrowTx(ctx, tx, snap, decision.Amount, now)
		}
		// Inside the free-cancellation window nothing comes back to the guest;
		// the held funds settle to the host immediately.
		return releaseEscrowTx(ctx, tx, snap, now)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking cancelled",
		"booking_id", bookingID.String(),
		"reference", snap.Reference,
		"refund_amount", result.RefundAmount,
	)
	c.dispatcher.Notify(ctx, snap.GuestID, "booking.cancelled", map[string]any{
		"reference":       snap.Reference,
		"refund_amount":   result.RefundAmount,
		"processing_days": result.ProcessingDays,
	})
	c.dispatcher.Notify(ctx, snap.HostID, "booking.cancelled_by_guest", map[string]any{
		"reference": snap.Reference,
	})
	return &result, nil
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, actor, bookingID uuid.UUID) error {
	now := c.clock.Now()

	var snap *shared.BookingSnapshot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		snap, err = tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBookingNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.HostID != actor {
			return errs.ErrForbidden
		}

		ok, err := tx.Bookings().MarkCheckedIn(ctx, bookingID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !ok {
			return errs.Mark(errs.Newf("booking is %s", snap.Status), errs.ErrNotConfirmed)
		}

		// The stay has started; the hold has served its purpose.
		return releaseEscrowTx(ctx, tx, snap, now)
	})
	if err != nil {
		return err
	}

	c.logger.Info("guest checked in", "booking_id", bookingID.String(), "reference", snap.Reference)
	c.dispatcher.Notify(ctx, snap.GuestID, "booking.checked_in", map[string]any{
		"reference": snap.Reference,
	})
	return nil
}

func (c *bookingCommandsImpl) ConfirmPaid(ctx context.Context, tx shared.Tx, bookingID, paymentID uuid.UUID) error {
	snap, err := tx.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrBookingNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	ok, err := tx.Bookings().ConfirmIfPending(ctx, bookingID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return errs.Mark(errs.Newf("booking is %s", snap.Status), errs.ErrBookingNotPending)
	}

	split := settlement.Compute(snap.Pricing)
	_, err = tx.Escrows().Open(ctx, shared.EscrowRecord{
		BookingID:      bookingID,
		PaymentID:      paymentID,
		TotalHeld:      split.TotalHeld,
		GuestFee:       split.GuestFee,
		HostCommission: split.HostCommission,
		HostPayout:     split.HostPayout,
		ReleaseDate:    snap.CheckIn,
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// ExpireStalePending cancels unpaid bookings past the payment timeout and
// frees their dates. Each booking gets its own transaction so one bad row
// cannot poison the batch.
func (c *bookingCommandsImpl) ExpireStalePending(ctx context.Context) (int, error) {
	now := c.clock.Now()
	cutoff := now.Add(-c.cfg.PaymentTimeout)

	stale, err := c.uow.Bookings().ListStalePending(ctx, cutoff, batchLimit)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	expired, failed := 0, 0
	for _, snap := range stale {
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			ok, err := tx.Bookings().MarkCancelled(ctx, snap.ID, booking.StatusExpired, "Payment timeout", now)
			if err != nil {
				return err
			}
			if !ok {
				// Paid or cancelled between the list and this transaction.
				return nil
			}
			if err := tx.Availability().Free(ctx, snap.PropertyID, snap.CheckIn, snap.CheckOut); err != nil {
				return err
			}
			expired++
			c.dispatcher.Notify(ctx, snap.GuestID, "booking.expired", map[string]any{
				"reference": snap.Reference,
			})
			return nil
		})
		if err != nil {
			failed++
			c.logger.Error("failed to expire booking",
				"booking_id", snap.ID.String(), "error", err.Error())
		}
	}
	if expired > 0 {
		c.logger.Info("expired stale bookings", "count", expired)
	}
	if failed > 0 {
		return expired, errs.Mark(errs.Newf("%d of %d stale bookings failed to expire", failed, len(stale)), errs.ErrDatabaseOperationFailed)
	}
	return expired, nil
}

// CompleteFinishedStays moves paid bookings whose check-out date has passed to
// COMPLETED and releases any escrow still held, covering bookings where the
// host never recorded a check-in.
func (c *bookingCommandsImpl) CompleteFinishedStays(ctx context.Context) (int, error) {
	now := c.clock.Now()
	today := clock.StartOfDay(now, c.loc)

	finished, err := c.uow.Bookings().ListFinishedStays(ctx, today, batchLimit)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	completed, failed := 0, 0
	for _, snap := range finished {
		snap := snap
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			ok, err := tx.Bookings().MarkCompleted(ctx, snap.ID, now)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := releaseEscrowTx(ctx, tx, &snap, now); err != nil {
				return err
			}
			completed++
			c.dispatcher.Notify(ctx, snap.HostID, "booking.completed", map[string]any{
				"reference": snap.Reference,
			})
			return nil
		})
		if err != nil {
			failed++
			c.logger.Error("failed to complete stay",
				"booking_id", snap.ID.String(), "error", err.Error())
		}
	}
	if completed > 0 {
		c.logger.Info("completed finished stays", "count", completed)
	}
	if failed > 0 {
		return completed, errs.Mark(errs.Newf("%d of %d finished stays failed to complete", failed, len(finished)), errs.ErrDatabaseOperationFailed)
	}
	return completed, nil
}

// SendStayReminders notifies guests whose check-in or check-out falls today.
// The reminder flag is flipped in its own transaction before the notification
// goes out, so a reminder is sent at most once even across concurrent runs.
func (c *bookingCommandsImpl) SendStayReminders(ctx context.Context) (int, error) {
	today := clock.StartOfDay(c.clock.Now(), c.loc)

	sent, failed := 0, 0
	for _, kind := range []shared.ReminderKind{shared.ReminderCheckIn, shared.ReminderCheckOut} {
		due, err := c.uow.Bookings().ListDueReminders(ctx, kind, today, batchLimit)
		if err != nil {
			return sent, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		for _, snap := range due {
			var flipped bool
			err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				var err error
				flipped, err = tx.Bookings().MarkReminderSent(ctx, snap.ID, kind)
				return err
			})
			if err != nil {
				failed++
				c.logger.Error("failed to mark reminder sent",
					"booking_id", snap.ID.String(), "kind", string(kind), "error", err.Error())
				continue
			}
			if !flipped {
				continue
			}

			template := "booking.checkin_reminder"
			if kind == shared.ReminderCheckOut {
				template = "booking.checkout_reminder"
			}
			c.dispatcher.Notify(ctx, snap.GuestID, template, map[string]any{
				"reference": snap.Reference,
				"check_in":  snap.CheckIn,
				"check_out": snap.CheckOut,
			})
			sent++
		}
	}
	if sent > 0 {
		c.logger.Info("stay reminders sent", "count", sent)
	}
	if failed > 0 {
		return sent, errs.Mark(errs.Newf("%d reminder updates failed", failed), errs.ErrDatabaseOperationFailed)
	}
	return sent, nil
}
