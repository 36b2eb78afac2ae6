package timing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMillis(t *testing.T) {
	assert.Equal(t, Timestamp(0), FromMillis(0))
	assert.Equal(t, Timestamp(7600), FromMillis(76))
	assert.Equal(t, Timestamp(-100), FromMillis(-1))
	assert.Equal(t, TimestampDifference(100000), DifferenceFromMillis(1000))
}

func TestFromMillisOverflow(t *testing.T) {
	limit := int32(math.MaxInt32 / UnitsPerMilli)

	_, err := CheckedFromMillis(limit)
	require.NoError(t, err)

	_, err = CheckedFromMillis(limit + 1)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = CheckedDifferenceFromMillis(-limit - 1)
	require.ErrorIs(t, err, ErrOverflow)

	assert.Panics(t, func() { FromMillis(math.MaxInt32) })
	assert.Panics(t, func() { GameFromMillis(math.MinInt32) })
	assert.Panics(t, func() { MapDifferenceFromMillis(limit + 1) })
}

var millisTests = map[int32]int32{
	0:     0,
	99:    0,
	100:   1,
	199:   1,
	-99:   0,
	-100:  -1,
	-150:  -1,
	12345: 123,
}

func TestMillisTruncatesTowardZero(t *testing.T) {
	for in, expected := range millisTests {
		assert.Equal(t, expected, MapFromMilliHundreds(in).Millis(), "input %d", in)
		assert.Equal(t, expected, GameDifferenceFromMilliHundreds(in).Millis(), "input %d", in)
	}
}

func TestOrderingUsesFullPrecision(t *testing.T) {
	a, b := MapFromMilliHundreds(101), MapFromMilliHundreds(150)
	require.Equal(t, a.Millis(), b.Millis())
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
}

func TestArithmetic(t *testing.T) {
	start := GameFromMillis(1000)
	window := GameDifferenceFromMillis(76)

	assert.Equal(t, GameFromMillis(1076), start.Add(window))
	assert.Equal(t, GameFromMillis(924), start.SubDifference(window))
	assert.Equal(t, GameDifferenceFromMillis(-76), GameFromMillis(924).Sub(start))
	assert.Equal(t, GameDifferenceFromMillis(152), window.Add(window))
	assert.Equal(t, GameDifferenceFromMillis(0), window.Sub(window))
	assert.Equal(t, window, GameDifferenceFromMillis(-76).Abs())
}

func TestDuration(t *testing.T) {
	d, err := GameDifferenceFromDuration(1500 * time.Microsecond)
	require.NoError(t, err)
	assert.Equal(t, int32(150), d.MilliHundreds())
	assert.Equal(t, 1500*time.Microsecond, d.Duration())

	_, err = GameFromDuration(100 * time.Hour)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.34ms", MapFromMilliHundreds(1234).String())
	assert.Equal(t, "-0.05ms", GameDifferenceFromMilliHundreds(-5).String())
	assert.Equal(t, "76.00ms", GameDifferenceFromMillis(76).String())
}
