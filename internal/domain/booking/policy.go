package booking

import "time"

// RefundDecision is the outcome of applying the cancellation policy.
type RefundDecision struct {
	Amount         int64
	FullRefund     bool
	ProcessingDays int
}

// RefundForCancellation applies the cancellation policy: full refund when at
// least the free-cancellation window remains before check-in, nothing
// otherwise. A pure function of (checkIn - now); the moment of the call is
// what counts, not when the booking was created.
func RefundForCancellation(total int64, checkIn, now time.Time, window time.Duration, processingDays int) RefundDecision {
	if checkIn.Sub(now) >= window {
		return RefundDecision{Amount: total, FullRefund: true, ProcessingDays: processingDays}
	}
	return RefundDecision{Amount: 0, FullRefund: false, ProcessingDays: 0}
}
