package game

import (
	"image/color"

	"git.lost.host/meutraa/ycore/internal/timing"
)

// Judgement is a named timing tier. The last tier of a set is the miss tier
// and its Window is ignored.
type Judgement struct {
	Name   string
	Window timing.GameTimestampDifference
	Color  color.RGBA
}

var DefaultJudgements = []Judgement{
	{Name: "Exact", Window: timing.GameDifferenceFromMillis(5), Color: color.RGBA{255, 255, 255, 255}},
	{Name: "Ridiculous", Window: timing.GameDifferenceFromMillis(10), Color: color.RGBA{236, 0, 236, 255}},
	{Name: "Marvelous", Window: timing.GameDifferenceFromMillis(20), Color: color.RGBA{173, 236, 236, 255}},
	{Name: "Great", Window: timing.GameDifferenceFromMillis(40), Color: color.RGBA{0, 236, 236, 255}},
	{Name: "Good", Window: timing.GameDifferenceFromMillis(60), Color: color.RGBA{0, 236, 0, 255}},
	{Name: "Okay", Window: HitWindow, Color: color.RGBA{236, 195, 0, 255}},
	{Name: "Miss", Color: color.RGBA{236, 30, 0, 255}},
}

// Judge returns the first tier whose window contains |diff|, or the miss tier.
func Judge(judgements []Judgement, diff timing.GameTimestampDifference) (int, Judgement) {
	abs := diff.Abs()
	for i := 0; i < len(judgements)-1; i++ {
		if abs.Compare(judgements[i].Window) <= 0 {
			return i, judgements[i]
		}
	}
	last := len(judgements) - 1
	return last, judgements[last]
}
