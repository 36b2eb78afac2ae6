// Package game judges lane input against a chart.
package game

import (
	"fmt"

	"git.lost.host/meutraa/ycore/internal/scroll"
	"git.lost.host/meutraa/ycore/internal/timing"
)

const DefaultScrollSpeed scroll.Speed = 25

// HitWindow is the tolerance either side of an object's start.
var HitWindow = timing.GameDifferenceFromMillis(76)

// LaneState holds the verdicts for one lane. Objects before the cursor are
// final, the object at the cursor is the only one input can affect.
type LaneState struct {
	ObjectStates []ObjectState
	firstObject  int
}

func (l *LaneState) FirstObject() int {
	return l.firstObject
}

// Game is a single play session over a map. Calls for one lane must be
// serialised, different lanes are independent.
type Game struct {
	Map         *Map
	ScrollSpeed scroll.Speed
	Converter   timing.Converter
	Lanes       []LaneState

	// Feedback receives every transition when set.
	Feedback *Feedback
}

// New panics if the map has not been sorted and validated.
func New(m *Map) *Game {
	if err := m.Validate(); nil != err {
		panic(fmt.Sprintf("game: invalid map: %v", err))
	}

	lanes := make([]LaneState, len(m.Lanes))
	for i, lane := range m.Lanes {
		states := make([]ObjectState, len(lane.Objects))
		for j, o := range lane.Objects {
			states[j] = newState(o.Kind)
		}
		lanes[i].ObjectStates = states
	}

	return &Game{
		Map:         m,
		ScrollSpeed: DefaultScrollSpeed,
		Lanes:       lanes,
	}
}

func (g *Game) HasActiveObjects(lane int) bool {
	l := &g.Lanes[lane]
	return l.firstObject < len(l.ObjectStates)
}

func (g *Game) FirstObject(lane int) int {
	return g.Lanes[lane].firstObject
}

func (g *Game) State(lane, index int) ObjectState {
	return g.Lanes[lane].ObjectStates[index]
}

// Missed reports whether the object has passed without being hit.
func (g *Game) Missed(lane, index int) bool {
	l := &g.Lanes[lane]
	s := l.ObjectStates[index]
	switch s.Kind {
	case Tap:
		return index < l.firstObject && s.Tap.Status == TapNotHit
	case Hold:
		return s.Hold.Status == HoldMissed
	}
	return false
}

// Done reports whether every lane has been fully judged.
func (g *Game) Done() bool {
	for i := range g.Lanes {
		if g.HasActiveObjects(i) {
			return false
		}
	}
	return true
}

func (g *Game) resolve(lane, index int, state ObjectState, missed bool, at timing.MapTimestamp) {
	g.Lanes[lane].ObjectStates[index] = state
	if nil != g.Feedback {
		g.Feedback.Push(Verdict{Lane: lane, Index: index, State: state, Missed: missed, At: at})
	}
}

// Update advances the lane cursor past every object that can no longer be
// hit at t, without registering input.
func (g *Game) Update(lane int, t timing.GameTimestamp) {
	if !g.HasActiveObjects(lane) {
		return
	}

	now := t.ToMap(g.Converter)
	window := HitWindow.ToMap(g.Converter)

	l := &g.Lanes[lane]
	objects := g.Map.Lanes[lane].Objects

	for l.firstObject < len(objects) {
		i := l.firstObject
		object := objects[i]
		state := l.ObjectStates[i]

		if object.End.Add(window).Before(now) {
			// Unreachable.
			switch {
			case state.Kind == Tap:
				g.resolve(lane, i, state, true, now)
			case state.Hold.Status == HoldHeld:
				// Never released: counted as released at the window edge.
				g.resolve(lane, i, HoldHitState(state.Hold.PressDiff, HitWindow), false, now)
			case state.Hold.Status == HoldNotHit:
				g.resolve(lane, i, HoldMissedState(), true, now)
			default:
				panic(fmt.Sprintf("game: lane %d object %d is %v at the cursor", lane, i, state))
			}
			l.firstObject++
			continue
		}

		if object.Start.Add(window).Before(now) {
			if state.Kind != Hold {
				panic(fmt.Sprintf("game: lane %d tap %d outlived its window", lane, i))
			}
			switch state.Hold.Status {
			case HoldNotHit:
				g.resolve(lane, i, HoldMissedState(), true, now)
				l.firstObject++
				continue
			case HoldHeld:
			default:
				panic(fmt.Sprintf("game: lane %d object %d is %v at the cursor", lane, i, state))
			}
		}

		break
	}
}

// KeyPress registers a press on the lane at t. Presses before the window of
// the next object are ignored.
func (g *Game) KeyPress(lane int, t timing.GameTimestamp) {
	g.Update(lane, t)
	if !g.HasActiveObjects(lane) {
		return
	}

	now := t.ToMap(g.Converter)
	window := HitWindow.ToMap(g.Converter)

	l := &g.Lanes[lane]
	i := l.firstObject
	object := g.Map.Lanes[lane].Objects[i]
	state := l.ObjectStates[i]

	if now.Before(object.Start.SubDifference(window)) {
		return
	}

	diff := now.Sub(object.Start).ToGame(g.Converter)
	switch state.Kind {
	case Tap:
		g.resolve(lane, i, TapHitState(diff), false, now)
		l.firstObject++
	case Hold:
		if state.Hold.Status == HoldNotHit {
			g.resolve(lane, i, HoldHeldState(diff), false, now)
		}
	}
}

// KeyRelease registers a release on the lane at t. Only a held hold reacts.
func (g *Game) KeyRelease(lane int, t timing.GameTimestamp) {
	g.Update(lane, t)
	if !g.HasActiveObjects(lane) {
		return
	}

	now := t.ToMap(g.Converter)
	window := HitWindow.ToMap(g.Converter)

	l := &g.Lanes[lane]
	i := l.firstObject
	object := g.Map.Lanes[lane].Objects[i]
	state := l.ObjectStates[i]

	if state.Kind != Hold || state.Hold.Status != HoldHeld {
		return
	}

	// The bound is relative to the start of the hold, not its end.
	if !now.Before(object.Start.SubDifference(window)) {
		releaseDiff := now.Sub(object.End).ToGame(g.Converter)
		g.resolve(lane, i, HoldHitState(state.Hold.PressDiff, releaseDiff), false, now)
	} else {
		g.resolve(lane, i, HoldDroppedState(now, state.Hold.PressDiff), true, now)
	}
	l.firstObject++
}

// Apply dispatches a recorded input.
func (g *Game) Apply(in Input) {
	switch in.Kind {
	case Press:
		g.KeyPress(in.Lane, in.Time)
	case Release:
		g.KeyRelease(in.Lane, in.Time)
	default:
		g.Update(in.Lane, in.Time)
	}
}
