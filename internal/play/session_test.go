package play

import (
	"context"
	"image/color"
	"sync"
	"testing"
	"time"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/score"
	"git.lost.host/meutraa/ycore/internal/testdata"
	"git.lost.host/meutraa/ycore/internal/timing"
	"git.lost.host/meutraa/ycore/internal/timing/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func at(ms int32) timing.GameTimestamp {
	return timing.GameFromMillis(ms)
}

func press(lane int, ms int32) game.Input {
	return game.Input{Lane: lane, Kind: game.Press, Time: at(ms)}
}

func release(lane int, ms int32) game.Input {
	return game.Input{Lane: lane, Kind: game.Release, Time: at(ms)}
}

// perfect hits every object of testdata.Map on time.
func perfect() []game.Input {
	return []game.Input{
		press(0, 100),
		press(1, 600),
		press(2, 1100),
		press(3, 1600),
		release(2, 2100),
		press(0, 2600),
		press(3, 3600),
	}
}

// steppingClock advances by step on every call.
func steppingClock(ctrl *gomock.Controller, start, step int32) *mocks.MockClock {
	clock := mocks.NewMockClock(ctrl)
	var mu sync.Mutex
	next := start
	clock.EXPECT().Now().DoAndReturn(func() timing.GameTimestamp {
		mu.Lock()
		defer mu.Unlock()
		t := at(next)
		next += step
		return t
	}).AnyTimes()
	return clock
}

func TestStep(t *testing.T) {
	s := New(game.New(testdata.Map()), nil, zerolog.Nop())

	s.Step(at(110), []game.Input{press(0, 100), press(7, 100)})
	assert.Equal(t, 1, s.Game.FirstObject(0))
	assert.True(t, s.Game.State(0, 0).IsHit())
	assert.Equal(t, []game.Input{press(0, 100)}, s.Inputs())

	// Stamped before the last step, moved up to it.
	s.Step(at(120), []game.Input{press(1, 90)})
	assert.Equal(t, at(110), s.Inputs()[1].Time)
	assert.Equal(t, 0, s.Game.FirstObject(1))
}

func TestStepKeepsEarlyInputs(t *testing.T) {
	s := New(game.New(testdata.Map()), nil, zerolog.Nop())

	// Inputs during the start delay keep their negative stamps.
	s.Step(at(-1000), []game.Input{press(0, -1200)})
	assert.Equal(t, at(-1200), s.Inputs()[0].Time)
	assert.Equal(t, 0, s.Game.FirstObject(0))
}

func TestRunHeadless(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := steppingClock(ctrl, -500, 100)

	s := New(game.New(testdata.Map()), clock, zerolog.Nop())
	inputs := make(chan game.Input, 16)
	for _, in := range perfect() {
		inputs <- in
	}
	close(inputs)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Run(ctx, inputs, time.Millisecond))

	assert.True(t, s.Game.Done())
	assert.Len(t, s.Inputs(), 7)

	sum := score.Summarize(s.Game, game.DefaultJudgements)
	assert.Equal(t, 6, sum.Counts[0])
	assert.Zero(t, sum.Misses)
}

func TestRunCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(at(0)).AnyTimes()

	s := New(game.New(testdata.Map()), clock, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx, nil, time.Millisecond), context.Canceled)
}

type cellContent struct {
	row, col uint16
	content  string
}

// recorder is a Renderer that keeps what was drawn.
type recorder struct {
	fills       []cellContent
	decorations []cellContent
	flushes     int
}

func (r *recorder) Init() error      { return nil }
func (r *recorder) Deinit() error    { return nil }
func (r *recorder) Size() (int, int) { return 80, 24 }

func (r *recorder) Flush() error {
	r.flushes++
	return nil
}

func (r *recorder) Fill(row, column uint16, message string) {
	r.fills = append(r.fills, cellContent{row, column, message})
}

func (r *recorder) FillColor(row, column uint16, c color.RGBA, message string) {
	r.Fill(row, column, message)
}

func (r *recorder) AddDecoration(col, row uint16, content string, frames int) {
	r.decorations = append(r.decorations, cellContent{row, col, content})
}

func (r *recorder) at(row, col uint16) []string {
	out := []string{}
	for _, f := range r.fills {
		if f.row == row && f.col == col {
			out = append(out, f.content)
		}
	}
	return out
}

func TestBoardDraw(t *testing.T) {
	rec := &recorder{}
	s := New(game.New(testdata.Map()), nil, zerolog.Nop())
	s.Renderer = rec
	b := newBoard(s)

	assert.Equal(t, 20, b.bar)
	assert.Equal(t, []int{34, 38, 42, 46}, b.columns)

	// 100ms at speed 25 is four rows above the bar.
	require.NoError(t, b.draw(at(0)))
	assert.Equal(t, 1, rec.flushes)
	assert.Equal(t, []string{s.Theme.RenderTap(0, s.Game.State(0, 0))}, rec.at(16, 34))
	assert.Equal(t, []string{"-"}, rec.at(20, 46))
	assert.Empty(t, rec.at(16, 38))

	s.Step(at(100), []game.Input{press(0, 100)})
	rec.fills = nil
	require.NoError(t, b.draw(at(100)))

	// The hit tap is cleared and its verdict flashed under the lane.
	assert.Equal(t, []string{" "}, rec.at(16, 34))
	require.Len(t, rec.decorations, 1)
	assert.Equal(t, uint16(22), rec.decorations[0].row)
	assert.Equal(t, uint16(33), rec.decorations[0].col)
	assert.Contains(t, rec.decorations[0].content, "Exact")

	// Nothing new, nothing flashed.
	require.NoError(t, b.draw(at(110)))
	assert.Len(t, rec.decorations, 1)
}

func TestBoardDrawsHoldBody(t *testing.T) {
	rec := &recorder{}
	s := New(game.New(testdata.Map()), nil, zerolog.Nop())
	s.Renderer = rec
	b := newBoard(s)

	// The hold in lane 2 spans 1100ms to 2100ms, 40 rows at speed 25.
	require.NoError(t, b.draw(at(1000)))
	state := s.Game.State(2, 0)
	assert.Equal(t, []string{s.Theme.RenderHoldHead(2, state)}, rec.at(16, 42))
	for row := uint16(1); row < 16; row++ {
		assert.Equal(t, []string{s.Theme.RenderHoldBody(2, state)}, rec.at(row, 42), "row %d", row)
	}
}
