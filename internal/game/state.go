package game

import (
	"fmt"

	"git.lost.host/meutraa/ycore/internal/timing"
)

type TapStatus uint8

const (
	TapNotHit TapStatus = iota
	TapHit
)

// TapState is the verdict of a tap. Diff is set when Status is TapHit.
type TapState struct {
	Status TapStatus
	Diff   timing.GameTimestampDifference
}

type HoldStatus uint8

const (
	HoldNotHit HoldStatus = iota
	HoldHeld
	HoldHit
	HoldMissed
)

// HoldState is the verdict of a hold.
//
//	HoldHeld:   PressDiff
//	HoldHit:    PressDiff, ReleaseDiff
//	HoldMissed: PressDiff if Pressed, HeldUntil if Released
type HoldState struct {
	Status      HoldStatus
	PressDiff   timing.GameTimestampDifference
	ReleaseDiff timing.GameTimestampDifference
	HeldUntil   timing.MapTimestamp
	Pressed     bool
	Released    bool
}

// ObjectState is a tagged union over the verdicts of each object kind.
// Only the member matching Kind is meaningful.
type ObjectState struct {
	Kind ObjectKind
	Tap  TapState
	Hold HoldState
}

func newState(kind ObjectKind) ObjectState {
	return ObjectState{Kind: kind}
}

func TapHitState(diff timing.GameTimestampDifference) ObjectState {
	return ObjectState{Kind: Tap, Tap: TapState{Status: TapHit, Diff: diff}}
}

func HoldHeldState(pressDiff timing.GameTimestampDifference) ObjectState {
	return ObjectState{Kind: Hold, Hold: HoldState{Status: HoldHeld, PressDiff: pressDiff, Pressed: true}}
}

func HoldHitState(pressDiff, releaseDiff timing.GameTimestampDifference) ObjectState {
	return ObjectState{Kind: Hold, Hold: HoldState{
		Status:      HoldHit,
		PressDiff:   pressDiff,
		ReleaseDiff: releaseDiff,
		Pressed:     true,
		Released:    true,
	}}
}

// HoldMissedState is a hold that was never pressed.
func HoldMissedState() ObjectState {
	return ObjectState{Kind: Hold, Hold: HoldState{Status: HoldMissed}}
}

// HoldDroppedState is a hold released outside the window.
func HoldDroppedState(heldUntil timing.MapTimestamp, pressDiff timing.GameTimestampDifference) ObjectState {
	return ObjectState{Kind: Hold, Hold: HoldState{
		Status:    HoldMissed,
		PressDiff: pressDiff,
		HeldUntil: heldUntil,
		Pressed:   true,
		Released:  true,
	}}
}

func (s ObjectState) IsHit() bool {
	switch s.Kind {
	case Tap:
		return s.Tap.Status == TapHit
	case Hold:
		return s.Hold.Status == HoldHit
	}
	return false
}

// IsFinal reports whether the verdict can no longer change. A tap that was
// never hit has no terminal state of its own, the lane cursor decides that.
func (s ObjectState) IsFinal() bool {
	switch s.Kind {
	case Tap:
		return s.Tap.Status == TapHit
	case Hold:
		return s.Hold.Status == HoldHit || s.Hold.Status == HoldMissed
	}
	return false
}

// PressDiff is the timing of the initial press, if there was one.
func (s ObjectState) PressDiff() (timing.GameTimestampDifference, bool) {
	switch s.Kind {
	case Tap:
		return s.Tap.Diff, s.Tap.Status == TapHit
	case Hold:
		return s.Hold.PressDiff, s.Hold.Pressed
	}
	return timing.GameTimestampDifference{}, false
}

func (s ObjectState) String() string {
	switch s.Kind {
	case Tap:
		if s.Tap.Status == TapHit {
			return fmt.Sprintf("tap hit %v", s.Tap.Diff)
		}
		return "tap not hit"
	case Hold:
		h := s.Hold
		switch h.Status {
		case HoldNotHit:
			return "hold not hit"
		case HoldHeld:
			return fmt.Sprintf("hold held %v", h.PressDiff)
		case HoldHit:
			return fmt.Sprintf("hold hit %v/%v", h.PressDiff, h.ReleaseDiff)
		case HoldMissed:
			if h.Released {
				return fmt.Sprintf("hold missed %v held until %v", h.PressDiff, h.HeldUntil)
			}
			return "hold missed"
		}
	}
	return fmt.Sprintf("ObjectState(%d)", s.Kind)
}
