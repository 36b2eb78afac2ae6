package timing

import "time"

//go:generate go tool mockgen -destination=./mocks/clock_mock.go -package=mocks . Clock

// Clock reports the current playback position.
type Clock interface {
	Now() GameTimestamp
}

// WallClock measures game time from a wall-clock start instant. It is used
// when no audio device drives the session.
type WallClock struct {
	Start time.Time
}

func (c WallClock) Now() GameTimestamp {
	t, err := GameFromDuration(time.Since(c.Start))
	if nil != err {
		panic(err)
	}
	return t
}
