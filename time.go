package jwt

import (
	"time"
)

// Clock supplies the current time for iat stamping and expiry checks.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the host clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// FixedClockMillis always reports the given milliseconds since the epoch.
func FixedClockMillis(ms int64) Clock {
	return FixedClock(time.UnixMilli(ms))
}

// UnixMillis converts t to the millisecond form used by iat and exp.
func UnixMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// ExpiresIn returns the exp value for a token that lives for ttl from now.
func ExpiresIn(clock Clock, ttl time.Duration) int64 {
	if clock == nil {
		clock = SystemClock
	}
	return clock.Now().Add(ttl).UnixMilli()
}
