package game

import (
	"fmt"

	"git.lost.host/meutraa/ycore/internal/timing"
)

type ObjectKind uint8

const (
	Tap  ObjectKind = iota // Hit once at Start
	Hold                   // Pressed at Start, released at End
)

func (k ObjectKind) String() string {
	switch k {
	case Tap:
		return "tap"
	case Hold:
		return "hold"
	}
	return fmt.Sprintf("ObjectKind(%d)", k)
}

// Object is a single chart element. A tap ends where it starts.
type Object struct {
	Kind  ObjectKind
	Start timing.MapTimestamp
	End   timing.MapTimestamp
}

func NewTap(at timing.MapTimestamp) Object {
	return Object{Kind: Tap, Start: at, End: at}
}

func NewHold(start, end timing.MapTimestamp) Object {
	return Object{Kind: Hold, Start: start, End: end}
}
