//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"shortstay/internal/infra/repository"
	"shortstay/internal/infra/uow"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDatesTaken = errs.New("dates taken")

func TestReserveClosesDoubleBookingRace(t *testing.T) {
	pool := newTestPool(t)
	propertyID := insertProperty(t, pool, uuid.New())
	u := uow.NewPostgresUoW(pool)

	checkIn := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)

	reserve := func() error {
		return u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			conflicts, err := tx.Availability().Reserve(ctx, propertyID, checkIn, checkOut)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return errDatesTaken
			}
			return nil
		})
	}

	const contenders = 8
	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- reserve()
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, errDatesTaken):
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one contender may win the dates")
	assert.Equal(t, contenders-1, lost)

	// The winner's days are all BOOKED.
	repo := repository.NewAvailabilityRepository(pool)
	conflicts, err := repo.Conflicts(context.Background(), propertyID, checkIn, checkOut)
	require.NoError(t, err)
	assert.Len(t, conflicts, 3)
}

func TestFreeRestoresAvailability(t *testing.T) {
	pool := newTestPool(t)
	propertyID := insertProperty(t, pool, uuid.New())
	repo := repository.NewAvailabilityRepository(pool)
	ctx := context.Background()

	checkIn := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	conflicts, err := repo.Reserve(ctx, propertyID, checkIn, checkOut)
	require.NoError(t, err)
	require.Empty(t, conflicts)

	// Reserving again reports every day as taken.
	conflicts, err = repo.Reserve(ctx, propertyID, checkIn, checkOut)
	require.NoError(t, err)
	assert.Len(t, conflicts, 3)

	require.NoError(t, repo.Free(ctx, propertyID, checkIn, checkOut))

	conflicts, err = repo.Reserve(ctx, propertyID, checkIn, checkOut)
	require.NoError(t, err)
	assert.Empty(t, conflicts, "freed days must be reservable again")
}

func TestReservePartialOverlap(t *testing.T) {
	pool := newTestPool(t)
	propertyID := insertProperty(t, pool, uuid.New())
	repo := repository.NewAvailabilityRepository(pool)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	conflicts, err := repo.Reserve(ctx, propertyID, day(10), day(12))
	require.NoError(t, err)
	require.Empty(t, conflicts)

	// [11,14) overlaps the booked [10,12) on the 11th only.
	conflicts, err = repo.Reserve(ctx, propertyID, day(11), day(14))
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, day(11).Format("2006-01-02"), conflicts[0].Format("2006-01-02"))

	// Back-to-back stays share the boundary day: check-out on the 12th does
	// not block a check-in on the 12th.
	conflicts, err = repo.Reserve(ctx, propertyID, day(12), day(14))
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
