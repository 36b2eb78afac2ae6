package input

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
	"git.lost.host/meutraa/ycore/internal/timing/mocks"
	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errUnbound = errors.New("unbound")

func dfjk(r rune) (int, error) {
	switch r {
	case 'd':
		return 0, nil
	case 'f':
		return 1, nil
	case 'j':
		return 2, nil
	case 'k':
		return 3, nil
	}
	return -1, errUnbound
}

func encode(t *testing.T, events ...keyEvent) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, ev := range events {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, ev))
	}
	return buf.Bytes()
}

func TestReadEvent(t *testing.T) {
	want := keyEvent{Sec: 12, Usec: 34, Type: evKey, Code: 36, Value: keyPress}
	data := encode(t, want)
	assert.Len(t, data, 24)

	ev, err := readEvent(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, want, ev)
}

func TestEvdevInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(timing.GameFromMillis(1000)).AnyTimes()

	e := &Evdev{Clock: clock, Lane: dfjk, Log: zerolog.Nop()}
	stamp := time.Unix(100, 0)

	// j pressed 5ms before it was read
	in, ok, err := e.input(keyEvent{Sec: 100, Type: evKey, Code: 36, Value: keyPress}, stamp.Add(5*time.Millisecond))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.Input{Lane: 2, Kind: game.Press, Time: timing.GameFromMillis(995)}, in)

	in, ok, err = e.input(keyEvent{Sec: 100, Type: evKey, Code: 32, Value: keyRelease}, stamp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.Input{Lane: 0, Kind: game.Release, Time: timing.GameFromMillis(1000)}, in)

	for _, ev := range []keyEvent{
		{Type: 0x04, Code: 36, Value: keyPress},   // EV_MSC
		{Type: evKey, Code: 36, Value: keyRepeat}, // autorepeat
		{Type: evKey, Code: 16, Value: keyPress},  // q is not bound
		{Type: evKey, Code: 200, Value: keyPress}, // not in the table
	} {
		_, ok, err := e.input(ev, stamp)
		assert.NoError(t, err)
		assert.False(t, ok, "%+v", ev)
	}

	_, _, err = e.input(keyEvent{Type: evKey, Code: keyEsc, Value: keyPress}, stamp)
	assert.ErrorIs(t, err, ErrQuit)
}

func TestEvdevRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(timing.GameFromMillis(0)).AnyTimes()

	now := time.Now()
	device := filepath.Join(t.TempDir(), "event0")
	require.NoError(t, os.WriteFile(device, encode(t,
		keyEvent{Sec: now.Unix(), Type: evKey, Code: 33, Value: keyPress},
		keyEvent{Sec: now.Unix(), Type: evKey, Code: 33, Value: keyRelease},
	), 0644))

	e := &Evdev{Path: device, Clock: clock, Lane: dfjk, Log: zerolog.Nop()}
	out := make(chan game.Input, 4)
	err := e.Run(context.Background(), out)
	// A regular file ends, a device would block.
	assert.Error(t, err)

	close(out)
	kinds := []game.InputKind{}
	for in := range out {
		assert.Equal(t, 1, in.Lane)
		kinds = append(kinds, in.Kind)
	}
	assert.Equal(t, []game.InputKind{game.Press, game.Release}, kinds)
}

func TestEvdevMissingDevice(t *testing.T) {
	e := &Evdev{Path: filepath.Join(t.TempDir(), "missing")}
	assert.Error(t, e.Run(context.Background(), make(chan game.Input)))
}

func TestKeyboardInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(timing.GameFromMillis(250)).Times(1)

	k := &Keyboard{Clock: clock, Lane: dfjk, Log: zerolog.Nop()}

	in, ok, err := k.input(keyboard.KeyEvent{Rune: 'k'})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.Input{Lane: 3, Kind: game.Press, Time: timing.GameFromMillis(250)}, in)

	_, ok, err = k.input(keyboard.KeyEvent{Rune: 'x'})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = k.input(keyboard.KeyEvent{Key: keyboard.KeyEsc})
	assert.ErrorIs(t, err, ErrQuit)

	_, _, err = k.input(keyboard.KeyEvent{Err: errUnbound})
	assert.ErrorIs(t, err, errUnbound)
}
