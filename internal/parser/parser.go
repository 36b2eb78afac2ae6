package parser

import "git.lost.host/meutraa/ycore/internal/game"

type Parser interface {
	Parse(file string) ([]*game.Map, error)
}
