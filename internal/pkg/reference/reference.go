// Package reference generates the human-readable codes guests and hosts see
// on bookings and payment receipts.
package reference

import (
	"crypto/rand"
	"fmt"
	"time"
)

// No vowels or easily-confused glyphs (0/O, 1/I) so codes survive being read
// out over the phone.
const alphabet = "23456789BCDFGHJKMNPQRSTVWXZ"

func generate(prefix string, now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unheard of; fall back to a
		// timestamp-only code rather than erroring a booking flow.
		return fmt.Sprintf("%s-%s", prefix, now.Format("20060102150405"))
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102"), string(buf))
}

// Booking returns a code like "BKG-260901-X7KQ2M".
func Booking(now time.Time) string {
	return generate("BKG", now)
}

// Payment returns a code like "PAY-260901-N4TW8C".
func Payment(now time.Time) string {
	return generate("PAY", now)
}
