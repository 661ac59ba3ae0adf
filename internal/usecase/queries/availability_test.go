//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/queries"
	sharedmock "shortstay/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCheck(t *testing.T) {
	propertyID := uuid.New()
	checkIn := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)

	t.Run("free range reports available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sharedmock.NewMockAvailabilityRepository(ctrl)
		repo.EXPECT().Conflicts(gomock.Any(), propertyID, checkIn, checkOut).Return(nil, nil)

		q := queries.NewAvailabilityQueries(repo)
		view, err := q.Check(context.Background(), propertyID, checkIn, checkOut)

		require.NoError(t, err)
		assert.True(t, view.Available)
		assert.Empty(t, view.Conflicts)
	})

	t.Run("taken days surface as conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sharedmock.NewMockAvailabilityRepository(ctrl)
		taken := []time.Time{checkIn, checkIn.AddDate(0, 0, 1)}
		repo.EXPECT().Conflicts(gomock.Any(), propertyID, checkIn, checkOut).Return(taken, nil)

		q := queries.NewAvailabilityQueries(repo)
		view, err := q.Check(context.Background(), propertyID, checkIn, checkOut)

		require.NoError(t, err)
		assert.False(t, view.Available)
		assert.Equal(t, taken, view.Conflicts)
	})

	t.Run("inverted range is rejected without touching the ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sharedmock.NewMockAvailabilityRepository(ctrl)

		q := queries.NewAvailabilityQueries(repo)
		_, err := q.Check(context.Background(), propertyID, checkOut, checkIn)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}
