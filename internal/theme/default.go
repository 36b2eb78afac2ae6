package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/ycore/internal/game"
)

type DefaultTheme struct {
	Judgements []game.Judgement
}

func (t *DefaultTheme) judgements() []game.Judgement {
	if len(t.Judgements) == 0 {
		return game.DefaultJudgements
	}
	return t.Judgements
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderTap(lane int, state game.ObjectState) string {
	return paint(getLaneColor(lane), tapSym)
}

func (t *DefaultTheme) RenderHoldHead(lane int, state game.ObjectState) string {
	if state.Hold.Status == game.HoldHeld {
		return paint(heldColor, holdSym)
	}
	return paint(getLaneColor(lane), holdSym)
}

func (t *DefaultTheme) RenderHoldBody(lane int, state game.ObjectState) string {
	switch state.Hold.Status {
	case game.HoldHeld:
		return paint(heldColor, bodySym)
	case game.HoldMissed:
		return paint(missedColor, bodySym)
	}
	return paint(getLaneColor(lane), bodySym)
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	return barSym
}

// RenderVerdict names the tier of a verdict, graded by its press timing.
func (t *DefaultTheme) RenderVerdict(v game.Verdict) string {
	js := t.judgements()
	if v.Missed {
		miss := js[len(js)-1]
		return paint(miss.Color, miss.Name)
	}
	d, ok := v.State.PressDiff()
	if !ok {
		return ""
	}
	_, j := game.Judge(js, d)
	return paint(j.Color, j.Name)
}

const (
	tapSym  = "⬤"
	holdSym = "◉"
	bodySym = "┃"
	barSym  = "-"
)

var (
	heldColor   = color.RGBA{0, 236, 128, 255}
	missedColor = color.RGBA{106, 106, 106, 255}
	laneColors  = []color.RGBA{
		{236, 30, 0, 255},    // red
		{0, 118, 236, 255},   // blue
		{106, 0, 236, 255},   // purple
		{236, 195, 0, 255},   // yellow
		{236, 0, 106, 255},   // pink
		{236, 128, 0, 255},   // orange
		{173, 236, 236, 255}, // light blue
		{110, 147, 89, 255},  // olive
	}
)

// getLaneColor cycles through the palette.
func getLaneColor(lane int) color.RGBA {
	if lane < 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	return laneColors[lane%len(laneColors)]
}
