package das

import "time"

// retryStrategy defines a backoff strategy for retries.
type retryStrategy struct {
	// attempts delays will follow durations stored in backoffIntervals
	backoffIntervals []time.Duration
}

// newRetryStrategy creates and initializes a new retry strategy.
func newRetryStrategy(backoffIntervals []time.Duration) retryStrategy {
	return retryStrategy{backoffIntervals: backoffIntervals}
}

// nextRetry creates a retry attempt with a backoff delay based on the retry strategy.
// It takes the previous retry attempt and the time of the last attempt as inputs and returns a
// retry instance and a boolean value indicating whether the retries amount have exceeded.
func (s retryStrategy) nextRetry(lastRetry retryAttempt, lastAttempt time.Time,
) (retry retryAttempt, retriesExceeded bool) {
	lastRetry.count++

	if len(s.backoffIntervals) == 0 {
		return lastRetry, false
	}

	if lastRetry.count > len(s.backoffIntervals) {
		// try count exceeded backoff try limit
		lastRetry.after = lastAttempt.Add(s.backoffIntervals[len(s.backoffIntervals)-1])
		return lastRetry, true
	}

	lastRetry.after = lastAttempt.Add(s.backoffIntervals[lastRetry.count-1])
	return lastRetry, false
}

// exponentialBackoff generates an array of time.Duration values using an exponential backoff
// strategy.
func exponentialBackoff(baseInterval time.Duration, factor, amount int) []time.Duration {
	backoff := make([]time.Duration, 0, amount)
	next := baseInterval
	for i := 0; i < amount; i++ {
		backoff = append(backoff, next)
		next *= time.Duration(factor)
	}
	return backoff
}
