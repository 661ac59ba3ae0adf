package booking

import "time"

// Service fee charged to the guest on top of the stay price, in basis points.
const ServiceFeeBps = 750 // 7.5%

// Breakdown is the pricing of a booking. Amounts are in the platform
// currency's minor unit; Total = Subtotal + CleaningFee + ServiceFee holds by
// construction and is re-checked by a database constraint.
type Breakdown struct {
	Subtotal    int64
	CleaningFee int64
	ServiceFee  int64
	Total       int64
}

// Nights returns the calendar-day difference between check-in and check-out.
// There is no partial-day billing: a 14:00 check-in and 10:00 check-out the
// next day is one night.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in) / (24 * time.Hour))
}

// Quote prices a stay: nightly rate times nights, plus the property's
// cleaning fee, plus the platform service fee on the subtotal only.
func Quote(pricePerNight, cleaningFee int64, nights int) Breakdown {
	subtotal := pricePerNight * int64(nights)
	serviceFee := subtotal * ServiceFeeBps / 10000
	return Breakdown{
		Subtotal:    subtotal,
		CleaningFee: cleaningFee,
		ServiceFee:  serviceFee,
		Total:       subtotal + cleaningFee + serviceFee,
	}
}
