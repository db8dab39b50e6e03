package contract

import "time"

// UnixTime renders a stored timestamp as unix seconds, 0 when unset.
func UnixTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func UnixTimePtr(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return UnixTime(*t)
}

// FromUnixMillis reads the provider's transaction time.
func FromUnixMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// FromUnix reads statement bounds.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
