package timeutil

import "time"

// Now returns the current time in UTC. All timestamps (OTP expiry,
// created_at columns, JWT claims) are stored and compared in UTC.
func Now() time.Time {
	return time.Now().UTC()
}
