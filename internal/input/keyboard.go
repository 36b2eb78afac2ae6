package input

import (
	"context"
	"fmt"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"
)

// Keyboard reads the terminal. Terminals only report presses, so a hold is
// never released and resolves at the end of its window.
type Keyboard struct {
	Clock timing.Clock
	Lane  LaneFunc
	Log   zerolog.Logger
}

func (k *Keyboard) Run(ctx context.Context, out chan<- game.Input) error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			k.Log.Warn().Err(err).Msg("unable to close keyboard")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-keys:
			in, ok, err := k.input(ev)
			if nil != err {
				return err
			}
			if !ok {
				continue
			}
			select {
			case out <- in:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (k *Keyboard) input(ev keyboard.KeyEvent) (game.Input, bool, error) {
	if nil != ev.Err {
		return game.Input{}, false, fmt.Errorf("unable to read key: %w", ev.Err)
	}
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return game.Input{}, false, ErrQuit
	case keyboard.KeySpace:
		ev.Rune = ' '
	}

	lane, err := k.Lane(ev.Rune)
	if nil != err {
		k.Log.Trace().Err(err).Msg("ignoring key")
		return game.Input{}, false, nil
	}
	return game.Input{Lane: lane, Kind: game.Press, Time: k.Clock.Now()}, true, nil
}
