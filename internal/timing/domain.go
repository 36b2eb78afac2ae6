package timing

import "time"

// MapTimestamp is a point in chart time.
type MapTimestamp struct {
	ts Timestamp
}

// MapTimestampDifference is a duration in chart time.
type MapTimestampDifference struct {
	d TimestampDifference
}

// GameTimestamp is a point in playback time. Input events carry these.
type GameTimestamp struct {
	ts Timestamp
}

// GameTimestampDifference is a duration in playback time.
type GameTimestampDifference struct {
	d TimestampDifference
}

func MapFromMillis(millis int32) MapTimestamp {
	return MapTimestamp{FromMillis(millis)}
}

func MapFromMilliHundreds(v int32) MapTimestamp {
	return MapTimestamp{Timestamp(v)}
}

func MapFromDuration(d time.Duration) (MapTimestamp, error) {
	v, err := durationHundreds(d)
	return MapTimestamp{Timestamp(v)}, err
}

func (t MapTimestamp) Millis() int32              { return t.ts.Millis() }
func (t MapTimestamp) MilliHundreds() int32       { return t.ts.MilliHundreds() }
func (t MapTimestamp) Before(u MapTimestamp) bool { return t.ts < u.ts }
func (t MapTimestamp) After(u MapTimestamp) bool  { return t.ts > u.ts }
func (t MapTimestamp) Compare(u MapTimestamp) int { return compare(t.ts, u.ts) }
func (t MapTimestamp) String() string             { return t.ts.String() }
func (t MapTimestamp) Sub(u MapTimestamp) MapTimestampDifference {
	return MapTimestampDifference{t.ts.Sub(u.ts)}
}

func (t MapTimestamp) Add(d MapTimestampDifference) MapTimestamp {
	return MapTimestamp{t.ts.Add(d.d)}
}

func (t MapTimestamp) SubDifference(d MapTimestampDifference) MapTimestamp {
	return MapTimestamp{t.ts.SubDifference(d.d)}
}

func (t MapTimestamp) ToGame(c Converter) GameTimestamp {
	return c.MapToGame(t)
}

func MapDifferenceFromMillis(millis int32) MapTimestampDifference {
	return MapTimestampDifference{DifferenceFromMillis(millis)}
}

func MapDifferenceFromMilliHundreds(v int32) MapTimestampDifference {
	return MapTimestampDifference{TimestampDifference(v)}
}

func (d MapTimestampDifference) Millis() int32        { return d.d.Millis() }
func (d MapTimestampDifference) MilliHundreds() int32 { return d.d.MilliHundreds() }
func (d MapTimestampDifference) String() string       { return d.d.String() }
func (d MapTimestampDifference) Compare(e MapTimestampDifference) int {
	return compare(d.d, e.d)
}

func (d MapTimestampDifference) Add(e MapTimestampDifference) MapTimestampDifference {
	return MapTimestampDifference{d.d.Add(e.d)}
}

func (d MapTimestampDifference) Sub(e MapTimestampDifference) MapTimestampDifference {
	return MapTimestampDifference{d.d.Sub(e.d)}
}

func (d MapTimestampDifference) ToGame(c Converter) GameTimestampDifference {
	return c.MapToGameDifference(d)
}

func GameFromMillis(millis int32) GameTimestamp {
	return GameTimestamp{FromMillis(millis)}
}

func GameFromMilliHundreds(v int32) GameTimestamp {
	return GameTimestamp{Timestamp(v)}
}

func GameFromDuration(d time.Duration) (GameTimestamp, error) {
	v, err := durationHundreds(d)
	return GameTimestamp{Timestamp(v)}, err
}

func (t GameTimestamp) Millis() int32               { return t.ts.Millis() }
func (t GameTimestamp) MilliHundreds() int32        { return t.ts.MilliHundreds() }
func (t GameTimestamp) Before(u GameTimestamp) bool { return t.ts < u.ts }
func (t GameTimestamp) After(u GameTimestamp) bool  { return t.ts > u.ts }
func (t GameTimestamp) Compare(u GameTimestamp) int { return compare(t.ts, u.ts) }
func (t GameTimestamp) String() string              { return t.ts.String() }
func (t GameTimestamp) Sub(u GameTimestamp) GameTimestampDifference {
	return GameTimestampDifference{t.ts.Sub(u.ts)}
}

func (t GameTimestamp) Add(d GameTimestampDifference) GameTimestamp {
	return GameTimestamp{t.ts.Add(d.d)}
}

func (t GameTimestamp) SubDifference(d GameTimestampDifference) GameTimestamp {
	return GameTimestamp{t.ts.SubDifference(d.d)}
}

func (t GameTimestamp) ToMap(c Converter) MapTimestamp {
	return c.GameToMap(t)
}

func GameDifferenceFromMillis(millis int32) GameTimestampDifference {
	return GameTimestampDifference{DifferenceFromMillis(millis)}
}

func GameDifferenceFromMilliHundreds(v int32) GameTimestampDifference {
	return GameTimestampDifference{TimestampDifference(v)}
}

func GameDifferenceFromDuration(d time.Duration) (GameTimestampDifference, error) {
	v, err := durationHundreds(d)
	return GameTimestampDifference{TimestampDifference(v)}, err
}

func (d GameTimestampDifference) Millis() int32           { return d.d.Millis() }
func (d GameTimestampDifference) MilliHundreds() int32    { return d.d.MilliHundreds() }
func (d GameTimestampDifference) Duration() time.Duration { return d.d.Duration() }
func (d GameTimestampDifference) String() string          { return d.d.String() }
func (d GameTimestampDifference) Compare(e GameTimestampDifference) int {
	return compare(d.d, e.d)
}

func (d GameTimestampDifference) Add(e GameTimestampDifference) GameTimestampDifference {
	return GameTimestampDifference{d.d.Add(e.d)}
}

func (d GameTimestampDifference) Sub(e GameTimestampDifference) GameTimestampDifference {
	return GameTimestampDifference{d.d.Sub(e.d)}
}

// Abs returns the magnitude of d.
func (d GameTimestampDifference) Abs() GameTimestampDifference {
	if d.d < 0 {
		return GameTimestampDifference{-d.d}
	}
	return d
}

func (d GameTimestampDifference) ToMap(c Converter) MapTimestampDifference {
	return c.GameToMapDifference(d)
}

func compare[T ~int32](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
