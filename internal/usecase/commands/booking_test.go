//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"shortstay/internal/domain/booking"
	"shortstay/internal/infra"
	"shortstay/internal/pkg/clock"
	"shortstay/internal/pkg/config"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/commands"
	"shortstay/internal/usecase/shared"
	sharedmock "shortstay/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type bookingFixture struct {
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	bookings     *sharedmock.MockBookingRepository
	availability *sharedmock.MockAvailabilityRepository
	payments     *sharedmock.MockPaymentRepository
	escrows      *sharedmock.MockEscrowRepository
	wallets      *sharedmock.MockWalletRepository
	catalog      *sharedmock.MockPropertyCatalog
	dispatcher   *sharedmock.MockNotificationDispatcher
	clk          *clock.MockClock
	cmds         commands.BookingCommands
}

func newBookingFixture(t *testing.T) *bookingFixture {
	ctrl := gomock.NewController(t)

	f := &bookingFixture{
		uow:          sharedmock.NewMockUnitOfWork(ctrl),
		tx:           sharedmock.NewMockTx(ctrl),
		bookings:     sharedmock.NewMockBookingRepository(ctrl),
		availability: sharedmock.NewMockAvailabilityRepository(ctrl),
		payments:     sharedmock.NewMockPaymentRepository(ctrl),
		escrows:      sharedmock.NewMockEscrowRepository(ctrl),
		wallets:      sharedmock.NewMockWalletRepository(ctrl),
		catalog:      sharedmock.NewMockPropertyCatalog(ctrl),
		dispatcher:   sharedmock.NewMockNotificationDispatcher(ctrl),
		clk:          clock.NewMockClock(testNow),
	}

	f.tx.EXPECT().Bookings().Return(f.bookings).AnyTimes()
	f.tx.EXPECT().Availability().Return(f.availability).AnyTimes()
	f.tx.EXPECT().Payments().Return(f.payments).AnyTimes()
	f.tx.EXPECT().Escrows().Return(f.escrows).AnyTimes()
	f.tx.EXPECT().Wallets().Return(f.wallets).AnyTimes()
	f.uow.EXPECT().Bookings().Return(f.bookings).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.cmds = commands.NewBookingCommands(
		f.uow, f.catalog, f.dispatcher, f.clk,
		config.NewTestConfig().Booking, time.UTC, logger,
	)
	return f
}

func (f *bookingFixture) expectWithin() {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		},
	).AnyTimes()
}

func testProperty() *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:            uuid.New(),
		HostID:        uuid.New(),
		Name:          "Lekki Loft",
		MaxGuests:     4,
		PricePerNight: 45_000,
		CleaningFee:   5_000,
	}
}

func confirmedBooking(guestID, hostID uuid.UUID, checkIn time.Time) *shared.BookingSnapshot {
	checkOut := checkIn.AddDate(0, 0, 2)
	return &shared.BookingSnapshot{
		ID:            uuid.New(),
		Reference:     "BKG-260301-X7KQ2M",
		GuestID:       guestID,
		HostID:        hostID,
		PropertyID:    uuid.New(),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        2,
		GuestCount:    2,
		Pricing:       booking.Quote(45_000, 5_000, 2),
		Status:        booking.StatusConfirmed,
		PaymentStatus: booking.PaymentPaid,
		CreatedAt:     testNow.Add(-24 * time.Hour),
	}
}

func TestCreateBooking(t *testing.T) {
	guestID := uuid.New()
	checkIn := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)

	input := func(prop *shared.PropertySnapshot) commands.CreateBookingInput {
		return commands.CreateBookingInput{
			GuestID:    guestID,
			PropertyID: prop.ID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			GuestCount: 2,
			GuestNotes: "late arrival",
		}
	}

	t.Run("reserves dates and prices the stay", func(t *testing.T) {
		f := newBookingFixture(t)
		prop := testProperty()

		f.catalog.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		f.expectWithin()
		f.availability.EXPECT().Reserve(gomock.Any(), prop.ID, checkIn, checkOut).Return(nil, nil)
		f.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), guestID, "booking.created", gomock.Any())
		f.dispatcher.EXPECT().Notify(gomock.Any(), prop.HostID, "booking.requested", gomock.Any())

		result, err := f.cmds.Create(context.Background(), input(prop))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(result.Reference, "BKG-"))
		assert.Equal(t, booking.StatusPending, result.Status)
		assert.Equal(t, int64(101_750), result.Pricing.Total)
		assert.Equal(t, testNow.Add(30*time.Minute), result.PaymentDeadline)
	})

	t.Run("taken dates abort the transaction and name the conflicts", func(t *testing.T) {
		f := newBookingFixture(t)
		prop := testProperty()

		f.catalog.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		f.expectWithin()
		f.availability.EXPECT().Reserve(gomock.Any(), prop.ID, checkIn, checkOut).
			Return([]time.Time{checkIn}, nil)

		_, err := f.cmds.Create(context.Background(), input(prop))
		assert.ErrorIs(t, err, errs.ErrNotAvailable)

		var conflict *commands.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, []time.Time{checkIn}, conflict.Dates)
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newBookingFixture(t)
		prop := testProperty()

		f.catalog.EXPECT().GetProperty(gomock.Any(), prop.ID).
			Return(nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound))

		_, err := f.cmds.Create(context.Background(), input(prop))
		assert.ErrorIs(t, err, errs.ErrPropertyNotFound)
	})

	t.Run("too many guests never touches the ledger", func(t *testing.T) {
		f := newBookingFixture(t)
		prop := testProperty()

		f.catalog.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)

		in := input(prop)
		in.GuestCount = prop.MaxGuests + 1
		_, err := f.cmds.Create(context.Background(), in)
		assert.ErrorIs(t, err, errs.ErrExceedsMaxGuests)
	})

	t.Run("check-in in the past", func(t *testing.T) {
		f := newBookingFixture(t)
		prop := testProperty()

		f.catalog.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)

		in := input(prop)
		in.CheckIn = testNow.AddDate(0, 0, -2)
		in.CheckOut = testNow.AddDate(0, 0, 1)
		_, err := f.cmds.Create(context.Background(), in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("full refund outside the window", func(t *testing.T) {
		f := newBookingFixture(t)
		guestID := uuid.New()
		snap := confirmedBooking(guestID, uuid.New(), testNow.AddDate(0, 0, 3))

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().MarkCancelled(gomock.Any(), snap.ID, booking.StatusCancelled, "change of plans", testNow).Return(true, nil)
		f.availability.EXPECT().Free(gomock.Any(), snap.PropertyID, snap.CheckIn, snap.CheckOut).Return(nil)
		f.payments.EXPECT().FindSuccessfulCharge(gomock.Any(), snap.ID).Return(&shared.PaymentSnapshot{
			ID:        uuid.New(),
			BookingID: snap.ID,
			PayerID:   guestID,
			Type:      shared.PaymentTypeBooking,
			Gateway:   "paystack",
			Amount:    snap.Pricing.Total,
			Currency:  "NGN",
			Reference: "PAY-260228-N4TW8C",
			Status:    shared.PaymentStateSuccess,
		}, nil)
		f.escrows.EXPECT().MarkRefunded(gomock.Any(), snap.ID, testNow).Return(true, nil)
		f.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p shared.NewPayment) error {
				assert.Equal(t, shared.PaymentTypeRefund, p.Type)
				assert.Equal(t, snap.Pricing.Total, p.Amount)
				assert.Equal(t, guestID, p.PayerID)
				return nil
			})
		f.bookings.EXPECT().SetPaymentStatus(gomock.Any(), snap.ID, booking.PaymentRefunded).Return(nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), guestID, "booking.cancelled", gomock.Any())
		f.dispatcher.EXPECT().Notify(gomock.Any(), snap.HostID, "booking.cancelled_by_guest", gomock.Any())

		result, err := f.cmds.Cancel(context.Background(), guestID, snap.ID, "change of plans")
		require.NoError(t, err)

		assert.True(t, result.FullRefund)
		assert.Equal(t, snap.Pricing.Total, result.RefundAmount)
		assert.Equal(t, 7, result.ProcessingDays)
	})

	t.Run("late cancel forfeits the refund and pays the host", func(t *testing.T) {
		f := newBookingFixture(t)
		guestID := uuid.New()
		hostID := uuid.New()
		snap := confirmedBooking(guestID, hostID, testNow.Add(6*time.Hour))

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().MarkCancelled(gomock.Any(), snap.ID, booking.StatusCancelled, "too late", testNow).Return(true, nil)
		f.availability.EXPECT().Free(gomock.Any(), snap.PropertyID, snap.CheckIn, snap.CheckOut).Return(nil)
		f.escrows.EXPECT().Release(gomock.Any(), snap.ID, testNow).Return(&shared.EscrowSnapshot{
			BookingID:  snap.ID,
			HostPayout: 78_750,
			Status:     shared.EscrowReleased,
		}, nil)
		f.wallets.EXPECT().Credit(gomock.Any(), hostID, int64(78_750), gomock.Any(), gomock.Any()).Return(int64(78_750), nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		result, err := f.cmds.Cancel(context.Background(), guestID, snap.ID, "too late")
		require.NoError(t, err)

		assert.False(t, result.FullRefund)
		assert.Zero(t, result.RefundAmount)
	})

	t.Run("unpaid booking frees dates without settlement", func(t *testing.T) {
		f := newBookingFixture(t)
		guestID := uuid.New()
		snap := confirmedBooking(guestID, uuid.New(), testNow.AddDate(0, 0, 3))
		snap.Status = booking.StatusPending
		snap.PaymentStatus = booking.PaymentPending

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().MarkCancelled(gomock.Any(), snap.ID, booking.StatusCancelled, "mind changed", testNow).Return(true, nil)
		f.availability.EXPECT().Free(gomock.Any(), snap.PropertyID, snap.CheckIn, snap.CheckOut).Return(nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		result, err := f.cmds.Cancel(context.Background(), guestID, snap.ID, "mind changed")
		require.NoError(t, err)
		assert.Zero(t, result.RefundAmount)
	})

	t.Run("only the guest may cancel", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedBooking(uuid.New(), uuid.New(), testNow.AddDate(0, 0, 3))

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := f.cmds.Cancel(context.Background(), snap.HostID, snap.ID, "host cannot cancel")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newBookingFixture(t)
		guestID := uuid.New()
		snap := confirmedBooking(guestID, uuid.New(), testNow.AddDate(0, 0, 3))
		snap.Status = booking.StatusCancelled

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := f.cmds.Cancel(context.Background(), guestID, snap.ID, "again")
		assert.ErrorIs(t, err, errs.ErrAlreadyCancelled)
	})

	t.Run("checked-in or completed stay cannot be cancelled", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusCheckedIn, booking.StatusCompleted} {
			f := newBookingFixture(t)
			guestID := uuid.New()
			snap := confirmedBooking(guestID, uuid.New(), testNow.AddDate(0, 0, -5))
			snap.Status = status

			f.expectWithin()
			f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)

			_, err := f.cmds.Cancel(context.Background(), guestID, snap.ID, "too late")
			assert.ErrorIs(t, err, errs.ErrCannotCancel, "status %s", status)
		}
	})
}

func TestCheckIn(t *testing.T) {
	t.Run("host check-in releases the escrow", func(t *testing.T) {
		f := newBookingFixture(t)
		hostID := uuid.New()
		snap := confirmedBooking(uuid.New(), hostID, testNow)

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().MarkCheckedIn(gomock.Any(), snap.ID, testNow).Return(true, nil)
		f.escrows.EXPECT().Release(gomock.Any(), snap.ID, testNow).Return(&shared.EscrowSnapshot{
			BookingID:  snap.ID,
			HostPayout: 78_750,
			Status:     shared.EscrowReleased,
		}, nil)
		f.wallets.EXPECT().Credit(gomock.Any(), hostID, int64(78_750), gomock.Any(), gomock.Any()).Return(int64(78_750), nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), snap.GuestID, "booking.checked_in", gomock.Any())

		err := f.cmds.CheckIn(context.Background(), hostID, snap.ID)
		assert.NoError(t, err)
	})

	t.Run("guest cannot check themselves in", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedBooking(uuid.New(), uuid.New(), testNow)

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)

		err := f.cmds.CheckIn(context.Background(), snap.GuestID, snap.ID)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("pending booking rejects check-in", func(t *testing.T) {
		f := newBookingFixture(t)
		hostID := uuid.New()
		snap := confirmedBooking(uuid.New(), hostID, testNow)
		snap.Status = booking.StatusPending

		f.expectWithin()
		f.bookings.EXPECT().FindByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().MarkCheckedIn(gomock.Any(), snap.ID, testNow).Return(false, nil)

		err := f.cmds.CheckIn(context.Background(), hostID, snap.ID)
		assert.ErrorIs(t, err, errs.ErrNotConfirmed)
	})
}

func stalePendingBookings() []shared.BookingSnapshot {
	stale := []shared.BookingSnapshot{
		*confirmedBooking(uuid.New(), uuid.New(), testNow.AddDate(0, 0, 5)),
		*confirmedBooking(uuid.New(), uuid.New(), testNow.AddDate(0, 0, 9)),
	}
	for i := range stale {
		stale[i].Status = booking.StatusPending
		stale[i].PaymentStatus = booking.PaymentPending
	}
	return stale
}

func TestExpireStalePending(t *testing.T) {
	cutoff := testNow.Add(-30 * time.Minute)

	t.Run("expires every stale booking", func(t *testing.T) {
		f := newBookingFixture(t)
		stale := stalePendingBookings()

		f.bookings.EXPECT().ListStalePending(gomock.Any(), cutoff, gomock.Any()).Return(stale, nil)
		f.expectWithin()
		for _, snap := range stale {
			f.bookings.EXPECT().MarkCancelled(gomock.Any(), snap.ID, booking.StatusExpired, "Payment timeout", testNow).Return(true, nil)
			f.availability.EXPECT().Free(gomock.Any(), snap.PropertyID, snap.CheckIn, snap.CheckOut).Return(nil)
			f.dispatcher.EXPECT().Notify(gomock.Any(), snap.GuestID, "booking.expired", gomock.Any())
		}

		count, err := f.cmds.ExpireStalePending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("a bad row does not abort the batch", func(t *testing.T) {
		f := newBookingFixture(t)
		stale := stalePendingBookings()

		f.bookings.EXPECT().ListStalePending(gomock.Any(), cutoff, gomock.Any()).Return(stale, nil)
		f.expectWithin()
		f.bookings.EXPECT().MarkCancelled(gomock.Any(), stale[0].ID, booking.StatusExpired, "Payment timeout", testNow).
			Return(false, errs.New("row corrupt"))
		f.bookings.EXPECT().MarkCancelled(gomock.Any(), stale[1].ID, booking.StatusExpired, "Payment timeout", testNow).Return(true, nil)
		f.availability.EXPECT().Free(gomock.Any(), stale[1].PropertyID, stale[1].CheckIn, stale[1].CheckOut).Return(nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), stale[1].GuestID, "booking.expired", gomock.Any())

		count, err := f.cmds.ExpireStalePending(context.Background())
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
		assert.Equal(t, 1, count, "the healthy booking must still expire")
	})
}

func TestCompleteFinishedStays(t *testing.T) {
	t.Run("completes a checked-in stay", func(t *testing.T) {
		f := newBookingFixture(t)

		snap := confirmedBooking(uuid.New(), uuid.New(), testNow.AddDate(0, 0, -4))
		snap.Status = booking.StatusCheckedIn

		f.bookings.EXPECT().ListFinishedStays(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]shared.BookingSnapshot{*snap}, nil)
		f.expectWithin()
		f.bookings.EXPECT().MarkCompleted(gomock.Any(), snap.ID, testNow).Return(true, nil)
		// Escrow was already released at check-in; the completion pass is a no-op.
		f.escrows.EXPECT().Release(gomock.Any(), snap.ID, testNow).Return(nil, nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), snap.HostID, "booking.completed", gomock.Any())

		count, err := f.cmds.CompleteFinishedStays(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("a failing release does not abort the batch", func(t *testing.T) {
		f := newBookingFixture(t)

		broken := confirmedBooking(uuid.New(), uuid.New(), testNow.AddDate(0, 0, -4))
		broken.Status = booking.StatusCheckedIn
		healthy := confirmedBooking(uuid.New(), uuid.New(), testNow.AddDate(0, 0, -3))
		healthy.Status = booking.StatusCheckedIn

		f.bookings.EXPECT().ListFinishedStays(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]shared.BookingSnapshot{*broken, *healthy}, nil)
		f.expectWithin()
		f.bookings.EXPECT().MarkCompleted(gomock.Any(), broken.ID, testNow).Return(true, nil)
		f.escrows.EXPECT().Release(gomock.Any(), broken.ID, testNow).Return(nil, errs.New("escrow row locked"))
		f.bookings.EXPECT().MarkCompleted(gomock.Any(), healthy.ID, testNow).Return(true, nil)
		f.escrows.EXPECT().Release(gomock.Any(), healthy.ID, testNow).Return(nil, nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), healthy.HostID, "booking.completed", gomock.Any())

		count, err := f.cmds.CompleteFinishedStays(context.Background())
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
		assert.Equal(t, 1, count)
	})
}

func TestSendStayReminders(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("notifies arrivals and departures once", func(t *testing.T) {
		f := newBookingFixture(t)

		arriving := confirmedBooking(uuid.New(), uuid.New(), today)
		leaving := confirmedBooking(uuid.New(), uuid.New(), today.AddDate(0, 0, -2))
		leaving.Status = booking.StatusCheckedIn
		alreadySent := confirmedBooking(uuid.New(), uuid.New(), today)

		f.bookings.EXPECT().ListDueReminders(gomock.Any(), shared.ReminderCheckIn, today, gomock.Any()).
			Return([]shared.BookingSnapshot{*arriving, *alreadySent}, nil)
		f.bookings.EXPECT().ListDueReminders(gomock.Any(), shared.ReminderCheckOut, today, gomock.Any()).
			Return([]shared.BookingSnapshot{*leaving}, nil)
		f.expectWithin()
		f.bookings.EXPECT().MarkReminderSent(gomock.Any(), arriving.ID, shared.ReminderCheckIn).Return(true, nil)
		// A concurrent run flipped this one first; no duplicate notification.
		f.bookings.EXPECT().MarkReminderSent(gomock.Any(), alreadySent.ID, shared.ReminderCheckIn).Return(false, nil)
		f.bookings.EXPECT().MarkReminderSent(gomock.Any(), leaving.ID, shared.ReminderCheckOut).Return(true, nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), arriving.GuestID, "booking.checkin_reminder", gomock.Any())
		f.dispatcher.EXPECT().Notify(gomock.Any(), leaving.GuestID, "booking.checkout_reminder", gomock.Any())

		count, err := f.cmds.SendStayReminders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("a failing flip skips only that booking", func(t *testing.T) {
		f := newBookingFixture(t)

		broken := confirmedBooking(uuid.New(), uuid.New(), today)
		healthy := confirmedBooking(uuid.New(), uuid.New(), today)

		f.bookings.EXPECT().ListDueReminders(gomock.Any(), shared.ReminderCheckIn, today, gomock.Any()).
			Return([]shared.BookingSnapshot{*broken, *healthy}, nil)
		f.bookings.EXPECT().ListDueReminders(gomock.Any(), shared.ReminderCheckOut, today, gomock.Any()).
			Return(nil, nil)
		f.expectWithin()
		f.bookings.EXPECT().MarkReminderSent(gomock.Any(), broken.ID, shared.ReminderCheckIn).
			Return(false, errs.New("row corrupt"))
		f.bookings.EXPECT().MarkReminderSent(gomock.Any(), healthy.ID, shared.ReminderCheckIn).Return(true, nil)
		f.dispatcher.EXPECT().Notify(gomock.Any(), healthy.GuestID, "booking.checkin_reminder", gomock.Any())

		count, err := f.cmds.SendStayReminders(context.Background())
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
		assert.Equal(t, 1, count)
	})
}
