package kafka

import "time"

var ConsumeFrom = consume

// SetRetryDelays shortens the consumer backoff for tests and returns a restore func.
func SetRetryDelays(initial, maxDelay time.Duration) func() {
	prevInitial, prevMax := consumeRetryDelay, consumeMaxRetryDelay
	consumeRetryDelay, consumeMaxRetryDelay = initial, maxDelay

	return func() {
		consumeRetryDelay, consumeMaxRetryDelay = prevInitial, prevMax
	}
}
