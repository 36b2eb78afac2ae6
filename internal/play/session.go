// Package play runs a judged session: it feeds inputs to the engine on a
// fixed frame period and draws the board.
package play

import (
	"context"
	"math"
	"time"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/render"
	"git.lost.host/meutraa/ycore/internal/scroll"
	"git.lost.host/meutraa/ycore/internal/theme"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const feedbackSize = 64

type Session struct {
	ID    uuid.UUID
	Game  *game.Game
	Clock timing.Clock
	Log   zerolog.Logger

	// Renderer is optional, a session without one runs headless.
	Renderer render.Renderer
	Theme    theme.Theme
	Scroll   scroll.Scroll
	BarRow   int

	inputs []game.Input
	last   []timing.GameTimestamp
	board  *board
}

func New(g *game.Game, clock timing.Clock, log zerolog.Logger) *Session {
	if nil == g.Feedback {
		g.Feedback = game.NewFeedback(feedbackSize)
	}
	id := uuid.New()
	return &Session{
		ID:     id,
		Game:   g,
		Clock:  clock,
		Log:    log.With().Str("session", id.String()).Logger(),
		Theme:  &theme.DefaultTheme{},
		Scroll: scroll.New(g.ScrollSpeed),
		BarRow: 4,
		last:   earliest(len(g.Lanes)),
	}
}

func earliest(lanes int) []timing.GameTimestamp {
	last := make([]timing.GameTimestamp, lanes)
	for i := range last {
		last[i] = timing.GameFromMilliHundreds(math.MinInt32)
	}
	return last
}

// Inputs returns the inputs applied so far, in the order they were judged.
func (s *Session) Inputs() []game.Input {
	return s.inputs
}

// Step applies inputs in arrival order then advances every lane to now.
// Times never go backwards within a lane, a late stamp is moved up to the
// last time the lane saw.
func (s *Session) Step(now timing.GameTimestamp, inputs []game.Input) {
	for _, in := range inputs {
		if in.Lane < 0 || in.Lane >= len(s.last) {
			s.Log.Warn().Int("lane", in.Lane).Msg("input for a lane the chart does not have")
			continue
		}
		if in.Time.Before(s.last[in.Lane]) {
			in.Time = s.last[in.Lane]
		}
		s.last[in.Lane] = in.Time

		s.Game.Apply(in)
		s.inputs = append(s.inputs, in)
		s.Log.Trace().Int("lane", in.Lane).Stringer("kind", in.Kind).Stringer("time", in.Time).Msg("input")
	}

	for lane := range s.last {
		if now.After(s.last[lane]) {
			s.last[lane] = now
		}
		s.Game.Update(lane, s.last[lane])
	}
}

// Run steps once per frame period until every object is judged. Inputs that
// arrive during a frame are applied at the start of the next one.
func (s *Session) Run(ctx context.Context, inputs <-chan game.Input, framePeriod time.Duration) error {
	if nil != s.Renderer {
		s.board = newBoard(s)
	}

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	pending := []game.Input{}
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				inputs = nil
				continue
			}
			pending = append(pending, in)
		case <-ticker.C:
			start := time.Now()
			now := s.Clock.Now()
			s.Step(now, pending)
			pending = pending[:0]
			frames++

			if nil != s.board {
				if err := s.board.draw(now); nil != err {
					return err
				}
			}
			if s.Game.Done() {
				s.Log.Debug().Int("frames", frames).Int("inputs", len(s.inputs)).Msg("chart finished")
				return nil
			}
			if elapsed := time.Since(start); elapsed > framePeriod {
				s.Log.Debug().Dur("elapsed", elapsed).Msg("frame overran")
			}
		}
	}
}
