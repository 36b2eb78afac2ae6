// Package audio plays the song and reports the playback position as game time.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var ErrFormat = errors.New("unsupported audio format")

// Player is a timing.Clock. Before the music starts, during the start
// delay, it counts up from -delay on the wall clock.
type Player struct {
	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	start    time.Time
	playing  bool
}

func decode(file string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	case ".wav":
		return wav.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%v: %w", file, ErrFormat)
}

func Open(file string) (*Player, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("unable to open audio: %w", err)
	}
	streamer, format, err := decode(file, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to decode audio: %w", err)
	}
	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
	}, nil
}

// Play starts the music after delay.
func (p *Player) Play(delay time.Duration) error {
	if err := speaker.Init(p.format.SampleRate, p.format.SampleRate.N(time.Second/60)); nil != err {
		return fmt.Errorf("unable to open speaker: %w", err)
	}

	p.mu.Lock()
	p.start = time.Now().Add(delay)
	p.mu.Unlock()

	go func() {
		time.Sleep(delay)
		p.mu.Lock()
		p.playing = true
		p.mu.Unlock()
		speaker.Play(p.ctrl)
	}()
	return nil
}

func (p *Player) Now() timing.GameTimestamp {
	p.mu.Lock()
	start, playing := p.start, p.playing
	p.mu.Unlock()

	if start.IsZero() {
		return timing.GameTimestamp{}
	}

	d := time.Since(start)
	if playing {
		speaker.Lock()
		d = p.format.SampleRate.D(p.streamer.Position())
		speaker.Unlock()
	}

	t, err := timing.GameFromDuration(d)
	if nil != err {
		panic(err)
	}
	return t
}

func (p *Player) Length() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Close() error {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	return p.streamer.Close()
}
