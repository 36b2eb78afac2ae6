// Package scroll turns time differences into on-screen positions.
package scroll

import (
	"errors"
	"fmt"
	"math"

	"git.lost.host/meutraa/ycore/internal/timing"
)

// Speed is the player's scroll speed setting.
type Speed uint8

// Position is a linear distance along the lane in arbitrary units.
type Position int64

// Multiplier scales the scroll rate in thousandths, 1000 being 1.000x.
type Multiplier int32

const (
	multiplierScale = 1000
	multiplierLimit = 1 << 24

	DefaultMultiplier Multiplier = multiplierScale
)

var ErrMultiplierRange = errors.New("scroll multiplier out of range")

func NewMultiplier(value int32) (Multiplier, error) {
	if value >= multiplierLimit || value < -multiplierLimit {
		return 0, fmt.Errorf("%d: %w", value, ErrMultiplierRange)
	}
	return Multiplier(value), nil
}

// MultiplierFromFloat keeps three decimal digits of value.
func MultiplierFromFloat(value float64) (Multiplier, error) {
	scaled := value * multiplierScale
	if math.IsNaN(scaled) || scaled >= multiplierLimit || scaled < -multiplierLimit {
		return 0, fmt.Errorf("%v: %w", value, ErrMultiplierRange)
	}
	return NewMultiplier(int32(scaled))
}

func (m Multiplier) Float() float64 {
	return float64(m) / multiplierScale
}

// Scroll pairs a speed with a multiplier. The zero Multiplier is not usable,
// build values with New or use Speed's methods for the default multiplier.
type Scroll struct {
	Speed      Speed
	Multiplier Multiplier
}

func New(speed Speed) Scroll {
	return Scroll{Speed: speed, Multiplier: DefaultMultiplier}
}

// Position is speed x difference x multiplier.
func (s Scroll) Position(d timing.GameTimestampDifference) Position {
	return Position(int64(s.Speed) * int64(d.MilliHundreds()) * int64(s.Multiplier))
}

// Difference inverts Position, truncating toward zero.
func (s Scroll) Difference(p Position) timing.GameTimestampDifference {
	if s.Speed == 0 {
		panic("scroll: inverse of a zero speed")
	}
	if s.Multiplier == 0 {
		panic("scroll: inverse of a zero multiplier")
	}
	v := int64(p) / int64(s.Speed) / int64(s.Multiplier)
	if v > math.MaxInt32 || v < math.MinInt32 {
		panic(fmt.Sprintf("scroll: position %d does not fit a timestamp difference", p))
	}
	return timing.GameDifferenceFromMilliHundreds(int32(v))
}

func (s Speed) Position(d timing.GameTimestampDifference) Position {
	return New(s).Position(d)
}

func (p Position) Difference(s Speed) timing.GameTimestampDifference {
	return New(s).Difference(p)
}
