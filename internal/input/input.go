// Package input turns key events into lane inputs stamped in game time.
package input

import (
	"context"
	"errors"

	"git.lost.host/meutraa/ycore/internal/game"
)

// ErrQuit is returned by a source when the player asks to leave.
var ErrQuit = errors.New("quit requested")

// LaneFunc maps a key to its lane.
type LaneFunc func(r rune) (int, error)

type Source interface {
	// Run sends inputs to out until ctx is cancelled or the source fails.
	Run(ctx context.Context, out chan<- game.Input) error
}
