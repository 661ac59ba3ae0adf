package shared

import (
	"context"
	"time"

	"shortstay/internal/domain/booking"
	"shortstay/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork owns transaction boundaries. Commands do all state mutation
// through Within; the pool-scoped repositories on the interface itself are
// for single reads that need no transactional consistency.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Pool-scoped repositories for reads outside a transaction
	Bookings() BookingRepository
	Payments() PaymentRepository
	Escrows() EscrowRepository
	Wallets() WalletRepository
	Availability() AvailabilityRepository
}

type Tx interface {
	Bookings() BookingRepository
	Availability() AvailabilityRepository
	Payments() PaymentRepository
	Escrows() EscrowRepository
	Wallets() WalletRepository
	DB() db.DBTX
}

type ReminderKind string

const (
	ReminderCheckIn  ReminderKind = "CHECK_IN"
	ReminderCheckOut ReminderKind = "CHECK_OUT"
)

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// ConfirmIfPending flips PENDING/PENDING to CONFIRMED/PAID. Returns false
	// when the booking is no longer PENDING (expired, cancelled, replayed).
	ConfirmIfPending(ctx context.Context, id uuid.UUID) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, status booking.Status, reason string, at time.Time) (bool, error)
	MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status booking.PaymentStatus) error
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]BookingSnapshot, error)
	ListFinishedStays(ctx context.Context, checkOutBefore time.Time, limit int) ([]BookingSnapshot, error)
	ListDueReminders(ctx context.Context, kind ReminderKind, day time.Time, limit int) ([]BookingSnapshot, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, kind ReminderKind) (bool, error)
}

type AvailabilityRepository interface {
	// Reserve books every day in [checkIn, checkOut). A non-empty conflict
	// list means nothing was (or stays) reserved; inside a transaction the
	// caller's rollback undoes any days written before the conflict surfaced.
	Reserve(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) ([]time.Time, error)
	Free(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) error
	// Conflicts is the advisory read behind the availability check endpoint.
	Conflicts(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) ([]time.Time, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p NewPayment) error
	FindByReference(ctx context.Context, ref string) (*PaymentSnapshot, error)
	// MarkSucceeded is conditional on the payment still being PENDING so a
	// webhook replay can never double-apply.
	MarkSucceeded(ctx context.Context, ref, gatewayRef string, rawResponse []byte) (bool, error)
	MarkFailed(ctx context.Context, ref string, rawResponse []byte) (bool, error)
	FindSuccessfulCharge(ctx context.Context, bookingID uuid.UUID) (*PaymentSnapshot, error)
}

type EscrowRepository interface {
	// Open inserts the booking's single escrow record; returns false without
	// error when one already exists (idempotent retry of a confirm).
	Open(ctx context.Context, rec EscrowRecord) (bool, error)
	FindByBooking(ctx context.Context, bookingID uuid.UUID) (*EscrowSnapshot, error)
	// Release transitions HELD to RELEASED and returns the released record;
	// nil when the record was not HELD (already settled or never opened).
	Release(ctx context.Context, bookingID uuid.UUID, at time.Time) (*EscrowSnapshot, error)
	MarkRefunded(ctx context.Context, bookingID uuid.UUID, at time.Time) (bool, error)
}

type WalletRepository interface {
	// Credit mutates the balance and appends the ledger entry together; call
	// it inside a transaction. Returns the balance after the credit.
	Credit(ctx context.Context, userID uuid.UUID, amount int64, description string, bookingID *uuid.UUID) (int64, error)
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
}
