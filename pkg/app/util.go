package app

import "time"

// nextDelay aligns the decision loop to wall clock interval marks so
// restarts keep the cycle cadence predictable.
func nextDelay(interval time.Duration) time.Duration {
	now := time.Now()
	return now.Truncate(interval).Add(interval).Sub(now)
}
