//go:build unit

package booking_test

import (
	"testing"
	"time"

	"shortstay/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{name: "single night", checkIn: day(10), checkOut: day(11), want: 1},
		{name: "week stay", checkIn: day(10), checkOut: day(17), want: 7},
		{name: "same day", checkIn: day(10), checkOut: day(10), want: 0},
		{name: "reversed range", checkIn: day(12), checkOut: day(10), want: -2},
		{
			name:     "clock times do not add a night",
			checkIn:  time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestQuote(t *testing.T) {
	t.Run("two nights with cleaning fee", func(t *testing.T) {
		got := booking.Quote(45_000, 5_000, 2)

		expected := booking.Breakdown{
			Subtotal:    90_000,
			CleaningFee: 5_000,
			ServiceFee:  6_750,
			Total:       101_750,
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("Breakdown mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("service fee excludes cleaning fee", func(t *testing.T) {
		withCleaning := booking.Quote(10_000, 99_999, 3)
		withoutCleaning := booking.Quote(10_000, 0, 3)

		assert.Equal(t, withoutCleaning.ServiceFee, withCleaning.ServiceFee)
	})

	t.Run("total always sums its parts", func(t *testing.T) {
		cases := []struct {
			pricePerNight, cleaningFee int64
			nights                     int
		}{
			{45_000, 5_000, 2},
			{1, 0, 1},
			{33_333, 7_500, 13},
			{100_000, 25_000, 30},
		}
		for _, c := range cases {
			got := booking.Quote(c.pricePerNight, c.cleaningFee, c.nights)
			assert.Equal(t, got.Subtotal+got.CleaningFee+got.ServiceFee, got.Total)
		}
	})

	t.Run("fee truncates toward zero", func(t *testing.T) {
		// 1,333 * 750 / 10,000 = 99.975 -> 99
		got := booking.Quote(1_333, 0, 1)
		assert.Equal(t, int64(99), got.ServiceFee)
	})
}
