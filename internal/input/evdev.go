package input

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/rs/zerolog"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey = 0x01

	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2

	keyEsc = 1
)

// codeRunes covers the rows a lane layout is likely to use.
var codeRunes = map[uint16]rune{
	2: '1', 3: '2', 4: '3', 5: '4', 6: '5', 7: '6', 8: '7', 9: '8', 10: '9', 11: '0',
	16: 'q', 17: 'w', 18: 'e', 19: 'r', 20: 't', 21: 'y', 22: 'u', 23: 'i', 24: 'o', 25: 'p',
	30: 'a', 31: 's', 32: 'd', 33: 'f', 34: 'g', 35: 'h', 36: 'j', 37: 'k', 38: 'l', 39: ';',
	44: 'z', 45: 'x', 46: 'c', 47: 'v', 48: 'b', 49: 'n', 50: 'm', 51: ',', 52: '.', 53: '/',
	57: ' ',
}

// keyEvent is struct input_event on 64 bit linux.
type keyEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

func (e keyEvent) stamp() time.Time {
	return time.Unix(e.Sec, e.Usec*int64(time.Microsecond))
}

func readEvent(r io.Reader) (keyEvent, error) {
	var ev keyEvent
	err := binary.Read(r, binary.LittleEndian, &ev)
	return ev, err
}

// Evdev reads a linux keyboard device directly, which gives both presses and
// releases with kernel timestamps. The device must be readable by the user.
type Evdev struct {
	Path  string
	Clock timing.Clock
	Lane  LaneFunc
	Log   zerolog.Logger
}

func (e *Evdev) Run(ctx context.Context, out chan<- game.Input) error {
	file, err := os.Open(e.Path)
	if err != nil {
		return fmt.Errorf("unable to open keyboard device: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		file.Close()
	}()

	for {
		ev, err := readEvent(file)
		if nil != err {
			if nil != ctx.Err() {
				return ctx.Err()
			}
			return fmt.Errorf("unable to read keyboard input: %w", err)
		}

		in, ok, err := e.input(ev, time.Now())
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

// input converts an event read at wall. The kernel timestamp tells how long
// the event sat in the buffer, that age is taken off the clock.
func (e *Evdev) input(ev keyEvent, wall time.Time) (game.Input, bool, error) {
	if ev.Type != evKey || ev.Value == keyRepeat {
		return game.Input{}, false, nil
	}
	if ev.Code == keyEsc {
		return game.Input{}, false, ErrQuit
	}

	r, ok := codeRunes[ev.Code]
	if !ok {
		return game.Input{}, false, nil
	}
	lane, err := e.Lane(r)
	if nil != err {
		e.Log.Trace().Err(err).Uint16("code", ev.Code).Msg("ignoring key")
		return game.Input{}, false, nil
	}

	kind := game.Press
	if ev.Value == keyRelease {
		kind = game.Release
	}

	now := e.Clock.Now()
	age := wall.Sub(ev.stamp())
	if age > 0 {
		if d, err := timing.GameDifferenceFromDuration(age); nil == err {
			now = now.SubDifference(d)
		}
	}
	return game.Input{Lane: lane, Kind: kind, Time: now}, true, nil
}
