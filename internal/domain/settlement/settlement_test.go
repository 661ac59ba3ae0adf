//go:build unit

package settlement_test

import (
	"testing"

	"shortstay/internal/domain/booking"
	"shortstay/internal/domain/settlement"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Run("splits the documented example", func(t *testing.T) {
		// Two nights at 45,000 plus a 5,000 cleaning fee.
		pricing := booking.Quote(45_000, 5_000, 2)

		got := settlement.Compute(pricing)

		assert.Equal(t, int64(101_750), got.TotalHeld)
		assert.Equal(t, int64(6_750), got.GuestFee)
		assert.Equal(t, int64(11_250), got.HostCommission)
		assert.Equal(t, int64(78_750), got.HostPayout)
	})

	t.Run("payout plus commission equals subtotal", func(t *testing.T) {
		cases := []struct {
			pricePerNight, cleaningFee int64
			nights                     int
		}{
			{45_000, 5_000, 2},
			{1, 0, 1},
			{9_999, 2_500, 7},
			{120_000, 15_000, 28},
			{7, 3, 3},
		}
		for _, c := range cases {
			pricing := booking.Quote(c.pricePerNight, c.cleaningFee, c.nights)
			got := settlement.Compute(pricing)

			assert.Equal(t, pricing.Subtotal, got.HostPayout+got.HostCommission,
				"split must conserve the subtotal for %+v", c)
			assert.Equal(t, pricing.Total, got.TotalHeld)
			assert.Equal(t, pricing.ServiceFee, got.GuestFee)
		}
	})

	t.Run("commission ignores cleaning and service fees", func(t *testing.T) {
		lean := settlement.Compute(booking.Quote(40_000, 0, 2))
		padded := settlement.Compute(booking.Quote(40_000, 50_000, 2))

		assert.Equal(t, lean.HostCommission, padded.HostCommission)
	})
}
