package game

import (
	"errors"
	"fmt"
	"sort"

	"git.lost.host/meutraa/ycore/internal/timing"
)

var (
	ErrUnordered  = errors.New("objects overlap or are out of order")
	ErrHoldBounds = errors.New("hold does not end after it starts")
	ErrTapBounds  = errors.New("tap end differs from its start")
)

// Lane is one column of the chart, objects sorted by start.
type Lane struct {
	Objects []Object
}

// Validate checks that every object is well formed and that each object ends
// strictly before the next one starts.
func (l *Lane) Validate() error {
	for i, o := range l.Objects {
		switch o.Kind {
		case Tap:
			if o.Start != o.End {
				return fmt.Errorf("object %d: %w", i, ErrTapBounds)
			}
		case Hold:
			if !o.Start.Before(o.End) {
				return fmt.Errorf("object %d at %v: %w", i, o.Start, ErrHoldBounds)
			}
		default:
			return fmt.Errorf("object %d: unknown kind %v", i, o.Kind)
		}
		if i > 0 && !l.Objects[i-1].End.Before(o.Start) {
			return fmt.Errorf("objects %d and %d at %v: %w", i-1, i, o.Start, ErrUnordered)
		}
	}
	return nil
}

func (l *Lane) Sort() {
	sort.SliceStable(l.Objects, func(i, j int) bool {
		return l.Objects[i].Start.Before(l.Objects[j].Start)
	})
}

// Map is a playable chart. Once handed to New it must not be modified.
type Map struct {
	SongArtist string
	SongTitle  string
	Mapper     string
	AudioFile  string
	Difficulty Difficulty

	Lanes []Lane
}

func (m *Map) Sort() {
	for i := range m.Lanes {
		m.Lanes[i].Sort()
	}
}

func (m *Map) Validate() error {
	for i := range m.Lanes {
		if err := m.Lanes[i].Validate(); nil != err {
			return fmt.Errorf("lane %d: %w", i, err)
		}
	}
	return nil
}

// Counts returns the number of taps and holds over all lanes.
func (m *Map) Counts() (taps, holds int) {
	for _, lane := range m.Lanes {
		for _, o := range lane.Objects {
			if o.Kind == Hold {
				holds++
			} else {
				taps++
			}
		}
	}
	return taps, holds
}

// End is the latest object end, or the zero timestamp for an empty map.
func (m *Map) End() timing.MapTimestamp {
	var end timing.MapTimestamp
	for _, lane := range m.Lanes {
		if n := len(lane.Objects); n > 0 && lane.Objects[n-1].End.After(end) {
			end = lane.Objects[n-1].End
		}
	}
	return end
}
