package accumulate

import (
	"fmt"
	"time"
)

// Bucket is a time-bucket granularity for the time_buckets query shape.
type Bucket int

const (
	Minute Bucket = iota
	Hour
	Day
)

// ParseBucket maps a query's bucket string onto a Bucket.
func ParseBucket(s string) (Bucket, error) {
	switch s {
	case "", "minute":
		return Minute, nil
	case "hour":
		return Hour, nil
	case "day":
		return Day, nil
	default:
		return Minute, fmt.Errorf("unknown bucket %q", s)
	}
}

// Truncate rounds t down to the start of its bucket.
func Truncate(t time.Time, b Bucket) time.Time {
	switch b {
	case Hour:
		return t.Truncate(time.Hour)
	case Day:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	default:
		return t.Truncate(time.Minute)
	}
}

// TimeBuckets is the accumulator for the time_buckets query shape: a
// mapping from a truncated-timestamp key to a count.
type TimeBuckets struct {
	Values map[int64]uint64 // key: Unix seconds of the truncated bucket start
}

// NewTimeBuckets returns an empty TimeBuckets ready to accumulate.
func NewTimeBuckets() *TimeBuckets {
	return &TimeBuckets{Values: make(map[int64]uint64)}
}

// Add records one sample at timestamp t, truncated to bucket b.
func (tb *TimeBuckets) Add(t time.Time, b Bucket) {
	tb.Values[Truncate(t, b).Unix()]++
}

// Merge sums values by bucket key.
func (tb *TimeBuckets) Merge(other *TimeBuckets) {
	for k, v := range other.Values {
		tb.Values[k] += v
	}
}
