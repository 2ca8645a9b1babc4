package rate

import "errors"

var (
	// ErrRateLimited is returned when a login counter exceeds its budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable is returned when the backing Redis cannot be reached.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
