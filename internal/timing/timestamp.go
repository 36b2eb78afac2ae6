// Package timing holds the fixed-point timestamps used for judgement.
//
// Time is counted in hundredths of a millisecond. There are two domains:
// map time, which is the authoritative time of the chart, and game time,
// which is derived from the audio clock and shifted by the global offset.
// The two never mix without going through a Converter.
package timing

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// UnitsPerMilli is the number of fixed-point units in one millisecond.
const UnitsPerMilli = 100

var ErrOverflow = errors.New("timestamp overflow")

// Timestamp is an absolute point in time in 1/100 ms units.
type Timestamp int32

// TimestampDifference is a signed duration in 1/100 ms units.
type TimestampDifference int32

func milliHundreds(millis int32) (int32, error) {
	v := int64(millis) * UnitsPerMilli
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%d ms: %w", millis, ErrOverflow)
	}
	return int32(v), nil
}

func mustMilliHundreds(millis int32) int32 {
	v, err := milliHundreds(millis)
	if nil != err {
		panic(err)
	}
	return v
}

func durationHundreds(d time.Duration) (int32, error) {
	v := d / (time.Millisecond / UnitsPerMilli)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%v: %w", d, ErrOverflow)
	}
	return int32(v), nil
}

// FromMillis panics if millis does not fit once scaled.
func FromMillis(millis int32) Timestamp {
	return Timestamp(mustMilliHundreds(millis))
}

func CheckedFromMillis(millis int32) (Timestamp, error) {
	v, err := milliHundreds(millis)
	return Timestamp(v), err
}

func (t Timestamp) Millis() int32 {
	return int32(t) / UnitsPerMilli
}

func (t Timestamp) MilliHundreds() int32 {
	return int32(t)
}

func (t Timestamp) Add(d TimestampDifference) Timestamp {
	return t + Timestamp(d)
}

func (t Timestamp) Sub(u Timestamp) TimestampDifference {
	return TimestampDifference(t - u)
}

func (t Timestamp) SubDifference(d TimestampDifference) Timestamp {
	return t - Timestamp(d)
}

func (t Timestamp) String() string {
	return format(int32(t))
}

// DifferenceFromMillis panics if millis does not fit once scaled.
func DifferenceFromMillis(millis int32) TimestampDifference {
	return TimestampDifference(mustMilliHundreds(millis))
}

func CheckedDifferenceFromMillis(millis int32) (TimestampDifference, error) {
	v, err := milliHundreds(millis)
	return TimestampDifference(v), err
}

func (d TimestampDifference) Millis() int32 {
	return int32(d) / UnitsPerMilli
}

func (d TimestampDifference) MilliHundreds() int32 {
	return int32(d)
}

func (d TimestampDifference) Add(e TimestampDifference) TimestampDifference {
	return d + e
}

func (d TimestampDifference) Sub(e TimestampDifference) TimestampDifference {
	return d - e
}

func (d TimestampDifference) Duration() time.Duration {
	return time.Duration(d) * (time.Millisecond / UnitsPerMilli)
}

func (d TimestampDifference) String() string {
	return format(int32(d))
}

// format renders hundredths of a millisecond as "-12.34ms".
func format(v int32) string {
	sign := ""
	abs := int64(v)
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	return fmt.Sprintf("%s%d.%02dms", sign, abs/UnitsPerMilli, abs%UnitsPerMilli)
}
