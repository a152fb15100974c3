package field

import "time"

// Timestamp is a point in time split into whole seconds since the Unix epoch
// and a nanosecond remainder, matching the 12-byte atom form
// (seconds as i64, nanos as u32, both big-endian).
type Timestamp struct {
	Seconds int64
	Nanos   uint32
}

// TimestampFromTime converts a time.Time to a Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		Nanos:   uint32(t.Nanosecond()), //nolint:gosec
	}
}

// Time converts the Timestamp back to a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}
