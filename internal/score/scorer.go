package score

import (
	"context"
	"time"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
)

type Scorer interface {
	Init() error
	Deinit()

	// Save the inputs of this performance
	Save(m *game.Map, inputs []game.Input, offset timing.GameTimestampDifference) (*History, error)

	// Load up previous performances of the map
	Load(m *game.Map) ([]History, error)

	Score(ctx context.Context, m *game.Map, history *History) (Score, error)
}

type History struct {
	ID      string
	Sum     string
	Offset  timing.GameTimestampDifference
	Created time.Time
	Inputs  []game.Input
}

type Score struct {
	Counts     []int // per judgement tier, the last being misses
	Hits       int
	Misses     int
	TotalError time.Duration
	Mean       float64 // ms
	Stdev      float64 // ms
}
