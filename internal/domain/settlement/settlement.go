// Package settlement holds the escrow split math in one place so the
// commission/payout invariant cannot drift between the confirm, release and
// refund paths.
package settlement

import "shortstay/internal/domain/booking"

// Platform commission charged to the host, in basis points of the subtotal.
// The guest-paid service fee is platform revenue already and is excluded.
const HostCommissionBps = 1250 // 12.5%

// Split is the settlement of one booking's escrow.
// HostPayout + HostCommission == Subtotal for every input.
type Split struct {
	TotalHeld      int64
	GuestFee       int64
	HostCommission int64
	HostPayout     int64
}

// Compute derives the escrow split from a booking's pricing breakdown.
func Compute(p booking.Breakdown) Split {
	commission := p.Subtotal * HostCommissionBps / 10000
	return Split{
		TotalHeld:      p.Total,
		GuestFee:       p.ServiceFee,
		HostCommission: commission,
		HostPayout:     p.Subtotal - commission,
	}
}
