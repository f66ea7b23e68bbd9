package consumer

import "time"

// SetBackoff shortens the retry waits for tests and returns a restore func.
func SetBackoff(min, max time.Duration) func() {
	prevMin, prevMax := minBackoff, maxBackoff
	minBackoff, maxBackoff = min, max
	return func() { minBackoff, maxBackoff = prevMin, prevMax }
}
