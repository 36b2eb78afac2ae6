package game

import "git.lost.host/meutraa/ycore/internal/timing"

type InputKind uint8

const (
	Press InputKind = iota
	Release
)

func (k InputKind) String() string {
	if k == Release {
		return "release"
	}
	return "press"
}

// Input is a key event on a lane, stamped in game time.
type Input struct {
	Lane int
	Kind InputKind
	Time timing.GameTimestamp
}
