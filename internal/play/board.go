package play

import (
	"fmt"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/scroll"
	"git.lost.host/meutraa/ycore/internal/score"
	"git.lost.host/meutraa/ycore/internal/timing"
)

const (
	// RowPosition is the scroll distance of one terminal row, 25ms at the
	// default speed.
	RowPosition scroll.Position = 62_500_000

	columnSpacing = 4
	verdictFrames = 60
)

type cell struct {
	row, col uint16
}

// board lays the lanes out around the middle of the screen. Rows count down
// from the top, the hit bar sits BarRow rows above the bottom.
type board struct {
	s       *Session
	rows    int
	bar     int
	columns []int
	side    int
	drawn   []cell
	shown   int
}

func newBoard(s *Session) *board {
	cc, rc := s.Renderer.Size()
	lanes := len(s.Game.Lanes)

	b := &board{s: s, rows: rc, bar: rc - s.BarRow}
	if b.bar < 2 {
		b.bar = rc
	}

	mid := cc >> 1
	left := mid - (lanes-1)*columnSpacing/2
	for i := 0; i < lanes; i++ {
		b.columns = append(b.columns, left+i*columnSpacing)
	}
	b.side = left - 36
	if b.side < 2 {
		b.side = 2
	}
	return b
}

// row is where an object starting at t appears at now. Objects below the bar
// have passed it.
func (b *board) row(t timing.MapTimestamp, now timing.GameTimestamp) int {
	d := t.ToGame(b.s.Game.Converter).Sub(now)
	return b.bar - int(b.s.Scroll.Position(d)/RowPosition)
}

func (b *board) inField(row int) bool {
	return row > 0 && row <= b.bar
}

func (b *board) fill(row, col int, content string) {
	b.s.Renderer.Fill(uint16(row), uint16(col), content)
	b.drawn = append(b.drawn, cell{uint16(row), uint16(col)})
}

func (b *board) draw(now timing.GameTimestamp) error {
	r := b.s.Renderer
	th := b.s.Theme
	g := b.s.Game

	// clear all existing renders
	for _, c := range b.drawn {
		r.Fill(c.row, c.col, " ")
	}
	b.drawn = b.drawn[:0]

	for lane, col := range b.columns {
		r.Fill(uint16(b.bar), uint16(col), th.RenderHitField(lane))

		objects := g.Map.Lanes[lane].Objects
		for i := g.FirstObject(lane); i < len(objects); i++ {
			o := objects[i]
			state := g.State(lane, i)
			head := b.row(o.Start, now)
			if head < 1 {
				// Everything after this is further up the lane.
				break
			}

			if o.Kind == game.Hold {
				tail := b.row(o.End, now)
				if tail < 1 {
					tail = 1
				}
				for row := tail; row < head; row++ {
					if b.inField(row) {
						b.fill(row, col, th.RenderHoldBody(lane, state))
					}
				}
				if b.inField(head) {
					b.fill(head, col, th.RenderHoldHead(lane, state))
				}
				continue
			}
			if b.inField(head) {
				b.fill(head, col, th.RenderTap(lane, state))
			}
		}
	}

	b.drawVerdicts()
	b.drawStats()
	return r.Flush()
}

// drawVerdicts flashes every verdict pushed since the last frame under its lane.
func (b *board) drawVerdicts() {
	fb := b.s.Game.Feedback
	total := fb.Total()
	fresh := total - b.shown
	b.shown = total
	if fresh <= 0 {
		return
	}

	recent := fb.Recent()
	if fresh > len(recent) {
		fresh = len(recent)
	}
	for _, v := range recent[len(recent)-fresh:] {
		content := b.s.Theme.RenderVerdict(v)
		if content == "" {
			continue
		}
		col := b.columns[v.Lane] - 1
		if col < 1 {
			col = 1
		}
		row := b.bar + 2
		if row > b.rows {
			row = b.rows
		}
		b.s.Renderer.AddDecoration(uint16(col), uint16(row), content, verdictFrames)
	}
}

func (b *board) drawStats() {
	r := b.s.Renderer
	sum := score.Summarize(b.s.Game, game.DefaultJudgements)
	taps, holds := b.s.Game.Map.Counts()

	side := uint16(b.side)
	r.Fill(10, side, fmt.Sprintf("   Error dt:  %8v", sum.TotalError))
	r.Fill(11, side, fmt.Sprintf("      Stdev:  %6.2f", sum.Stdev))
	r.Fill(12, side, fmt.Sprintf("       Mean:  %6.2f", sum.Mean))
	r.Fill(13, side, fmt.Sprintf("       Taps:  %6v", taps))
	r.Fill(14, side, fmt.Sprintf("      Holds:  %6v", holds))
	for i, j := range game.DefaultJudgements {
		r.FillColor(uint16(16+i), side, j.Color, fmt.Sprintf("%10v:  %6v", j.Name, sum.Counts[i]))
	}
}
