package theme

import "git.lost.host/meutraa/ycore/internal/game"

type Theme interface {
	RenderTap(lane int, state game.ObjectState) string
	RenderHoldHead(lane int, state game.ObjectState) string
	RenderHoldBody(lane int, state game.ObjectState) string
	RenderHitField(lane int) string
	RenderVerdict(v game.Verdict) string
}
