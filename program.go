package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/ycore/internal/audio"
	"git.lost.host/meutraa/ycore/internal/config"
	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/input"
	"git.lost.host/meutraa/ycore/internal/parser"
	"git.lost.host/meutraa/ycore/internal/play"
	"git.lost.host/meutraa/ycore/internal/render"
	"git.lost.host/meutraa/ycore/internal/score"
	"git.lost.host/meutraa/ycore/internal/theme"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoChart    = errors.New("unable to find a .sm file in the given directory")
	ErrDifficulty = errors.New("difficulty index out of range")
	ErrHistory    = errors.New("history index out of range")
)

type Program struct {
	Config *config.Config
	Log    zerolog.Logger
	Parser parser.Parser
	Scorer score.Scorer
	Theme  theme.Theme
	Out    io.Writer

	chartFile, audioFile string
	maps                 []*game.Map
}

// findSongFiles returns the chart and, if there is one, an audio file in dir.
func findSongFiles(dir string) (chart, audioFile string, err error) {
	err = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch strings.ToLower(filepath.Ext(info.Name())) {
		case ".ogg", ".mp3", ".wav":
			audioFile = p
		case ".sm":
			chart = p
		}
		return nil
	})
	if nil != err {
		return "", "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	if chart == "" {
		return "", "", ErrNoChart
	}
	return chart, audioFile, nil
}

func (p *Program) Init() error {
	var err error
	p.chartFile, p.audioFile, err = findSongFiles(p.Config.Directory)
	if nil != err {
		return err
	}

	p.maps, err = p.Parser.Parse(p.chartFile)
	if nil != err {
		return err
	}

	if p.Config.Command == "charts" {
		return nil
	}
	return p.Scorer.Init()
}

func (p *Program) Deinit() {
	p.Scorer.Deinit()
}

func (p *Program) selected() (*game.Map, error) {
	i := p.Config.Difficulty
	if i < 0 || i >= len(p.maps) {
		return nil, fmt.Errorf("%d of %d: %w", i, len(p.maps), ErrDifficulty)
	}
	return p.maps[i], nil
}

// Charts lists the difficulties of the chart.
func (p *Program) Charts() error {
	for i, m := range p.maps {
		taps, holds := m.Counts()
		fmt.Fprintf(p.Out, "%2v) %3v  %2vk  %5v  %5v  %v\n", i, m.Difficulty.Msd, m.Difficulty.NKeys, taps, holds, m.Difficulty.Name)
	}
	return nil
}

// Scores lists every saved performance of the selected difficulty.
func (p *Program) Scores(ctx context.Context) error {
	m, err := p.selected()
	if nil != err {
		return err
	}
	histories, err := p.Scorer.Load(m)
	if nil != err {
		return err
	}

	fmt.Fprintf(p.Out, "%v - %v [%v]\n", m.SongArtist, m.SongTitle, m.Difficulty.Name)
	for i := range histories {
		h := &histories[i]
		s, err := p.Scorer.Score(ctx, m, h)
		if nil != err {
			p.Log.Warn().Err(err).Str("id", h.ID).Msg("unable to score history")
			continue
		}
		fmt.Fprintf(p.Out, "%3v) %v  %6v hit  %6v miss  %7.2f mean  %7.2f stdev\n",
			i, h.Created.Local().Format(time.DateTime), s.Hits, s.Misses, s.Mean, s.Stdev)
	}
	return nil
}

// Replay rescores one saved performance.
func (p *Program) Replay(ctx context.Context) error {
	m, err := p.selected()
	if nil != err {
		return err
	}
	histories, err := p.Scorer.Load(m)
	if nil != err {
		return err
	}
	i := p.Config.History
	if i < 0 || i >= len(histories) {
		return fmt.Errorf("%d of %d: %w", i, len(histories), ErrHistory)
	}

	s, err := p.Scorer.Score(ctx, m, &histories[i])
	if nil != err {
		return err
	}
	p.printScore(s)
	return nil
}

func (p *Program) printScore(s score.Score) {
	for i, j := range game.DefaultJudgements {
		fmt.Fprintf(p.Out, "%10v:  %6v\n", j.Name, s.Counts[i])
	}
	fmt.Fprintf(p.Out, "   Error dt:  %v\n", s.TotalError)
	fmt.Fprintf(p.Out, "       Mean:  %6.2f ms\n", s.Mean)
	fmt.Fprintf(p.Out, "      Stdev:  %6.2f ms\n", s.Stdev)
}

// clock plays the song if the chart has one, otherwise game time runs on the
// wall clock.
func (p *Program) clock(m *game.Map) (timing.Clock, func(), error) {
	file := m.AudioFile
	if _, err := os.Stat(file); nil != err {
		file = p.audioFile
	}
	if file == "" {
		p.Log.Warn().Msg("no audio file, timing from the wall clock")
		return timing.WallClock{Start: time.Now().Add(p.Config.Delay)}, func() {}, nil
	}

	player, err := audio.Open(file)
	if nil != err {
		return nil, nil, err
	}
	if err := player.Play(p.Config.Delay); nil != err {
		player.Close()
		return nil, nil, err
	}
	p.Log.Info().Str("audio", file).Dur("length", player.Length()).Msg("playing")
	return player, func() {
		if err := player.Close(); nil != err {
			p.Log.Warn().Err(err).Msg("unable to close audio")
		}
	}, nil
}

func (p *Program) source(clock timing.Clock, nKeys uint8) input.Source {
	lane := func(r rune) (int, error) {
		return p.Config.KeyLane(r, nKeys)
	}
	if p.Config.Device != "" {
		return &input.Evdev{Path: p.Config.Device, Clock: clock, Lane: lane, Log: p.Log}
	}
	return &input.Keyboard{Clock: clock, Lane: lane, Log: p.Log}
}

// Play runs the selected difficulty and saves the performance once every
// object has been judged. Quitting early saves nothing.
func (p *Program) Play(ctx context.Context) error {
	m, err := p.selected()
	if nil != err {
		return err
	}
	converter, err := p.Config.Converter()
	if nil != err {
		return err
	}
	sc, err := p.Config.Scroll()
	if nil != err {
		return err
	}

	g := game.New(m)
	g.Converter = converter
	g.ScrollSpeed = sc.Speed

	clock, closeClock, err := p.clock(m)
	if nil != err {
		return err
	}
	defer closeClock()

	r := &render.DefaultRenderer{}
	session := play.New(g, clock, p.Log)
	session.Renderer = r
	session.Theme = p.Theme
	session.Scroll = sc
	session.BarRow = int(p.Config.BarRow)

	if err := r.Init(); nil != err {
		return err
	}
	err = p.run(ctx, session, p.source(clock, m.Difficulty.NKeys))
	if derr := r.Deinit(); nil != derr {
		p.Log.Warn().Err(derr).Msg("unable to restore terminal")
	}
	if errors.Is(err, input.ErrQuit) || errors.Is(err, context.Canceled) {
		p.Log.Info().Err(err).Msg("stopped before the end of the chart")
		return nil
	}
	if nil != err {
		return err
	}

	h, err := p.Scorer.Save(m, session.Inputs(), converter.GlobalOffset)
	if nil != err {
		return err
	}
	s, err := p.Scorer.Score(ctx, m, h)
	if nil != err {
		return err
	}
	p.printScore(s)
	return nil
}

// run reads input alongside the session until the session finishes.
func (p *Program) run(ctx context.Context, session *play.Session, source input.Source) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan game.Input, 128)
	finished := false

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return source.Run(ctx, inputs)
	})
	eg.Go(func() error {
		defer cancel()
		err := session.Run(ctx, inputs, p.Config.FramePeriod)
		finished = nil == err
		return err
	})

	err := eg.Wait()
	if finished && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
