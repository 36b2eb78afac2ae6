package score

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrLane = errors.New("input lane out of range")

type DefaultScorer struct {
	Path string
	Log  zerolog.Logger

	db *sql.DB
}

// InputsCompact holds the inputs of one lane. Kinds has one byte per time,
// 'p' for a press and 'r' for a release.
type InputsCompact struct {
	Lane  int
	Times []int32
	Kinds string
}

func compactInputs(inputs []game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range inputs {
		if i.Lane >= laneCount {
			laneCount = i.Lane + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	kinds := make([]strings.Builder, laneCount)
	for lane := range ins {
		ins[lane].Lane = lane
		ins[lane].Times = []int32{}
	}
	for _, i := range inputs {
		ins[i.Lane].Times = append(ins[i.Lane].Times, i.Time.MilliHundreds())
		if i.Kind == game.Release {
			kinds[i.Lane].WriteByte('r')
		} else {
			kinds[i.Lane].WriteByte('p')
		}
	}
	for lane := range ins {
		ins[lane].Kinds = kinds[lane].String()
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) ([]game.Input, error) {
	ins := []game.Input{}
	for _, i := range inputs {
		if len(i.Times) != len(i.Kinds) {
			return nil, fmt.Errorf("lane %d has %d times and %d kinds", i.Lane, len(i.Times), len(i.Kinds))
		}
		for j, t := range i.Times {
			kind := game.Press
			if i.Kinds[j] == 'r' {
				kind = game.Release
			}
			ins = append(ins, game.Input{Lane: i.Lane, Kind: kind, Time: timing.GameFromMilliHundreds(t)})
		}
	}
	return ins, nil
}

func (s *DefaultScorer) Init() error {
	path := s.Path
	if path == "" {
		path = "./scores.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists scores
	  (
		  id text not null primary key,
		  sum text,
		  global_offset integer,
		  created integer,
		  inputs blob
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create score table: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// hashMap identifies a map by its objects and difficulty name.
func hashMap(m *game.Map) string {
	h := sha256.New()
	h.Write([]byte(m.Difficulty.Name))
	buf := make([]byte, 9)
	for _, lane := range m.Lanes {
		h.Write([]byte{'|'})
		for _, o := range lane.Objects {
			buf[0] = byte(o.Kind)
			binary.LittleEndian.PutUint32(buf[1:], uint32(o.Start.MilliHundreds()))
			binary.LittleEndian.PutUint32(buf[5:], uint32(o.End.MilliHundreds()))
			h.Write(buf)
		}
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (s *DefaultScorer) Save(m *game.Map, inputs []game.Input, offset timing.GameTimestampDifference) (*History, error) {
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return nil, fmt.Errorf("unable to marshal inputs: %w", err)
	}

	h := &History{
		ID:      uuid.NewString(),
		Sum:     hashMap(m),
		Offset:  offset,
		Created: time.Now().UTC().Truncate(time.Second),
		Inputs:  inputs,
	}
	_, err = s.db.Exec(
		"insert into scores(id, sum, global_offset, created, inputs) values(?, ?, ?, ?, ?)",
		h.ID, h.Sum, offset.MilliHundreds(), h.Created.Unix(), data,
	)
	if nil != err {
		return nil, fmt.Errorf("unable to save score: %w", err)
	}
	s.Log.Debug().Str("id", h.ID).Int("inputs", len(inputs)).Msg("saved score")
	return h, nil
}

func (s *DefaultScorer) Load(m *game.Map) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query(
		"select id, sum, global_offset, created, inputs from scores where sum = ? order by created, rowid",
		hashMap(m),
	)
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, sum string
		var offset int32
		var created int64
		var data []byte
		if err := rows.Scan(&id, &sum, &offset, &created, &data); nil != err {
			return nil, fmt.Errorf("unable to scan score: %w", err)
		}
		var ns []InputsCompact
		if err := json.Unmarshal(data, &ns); nil != err {
			s.Log.Warn().Err(err).Str("id", id).Msg("unable to unmarshal input history")
			continue
		}
		inputs, err := uncompactInputs(ns)
		if nil != err {
			s.Log.Warn().Err(err).Str("id", id).Msg("unable to expand input history")
			continue
		}
		histories = append(histories, History{
			ID:      id,
			Sum:     sum,
			Offset:  timing.GameDifferenceFromMilliHundreds(offset),
			Created: time.Unix(created, 0).UTC(),
			Inputs:  inputs,
		})
	}
	return histories, rows.Err()
}

// Replay judges the recorded inputs against a fresh game. Lanes are replayed
// concurrently and every object is resolved by the end.
func Replay(ctx context.Context, m *game.Map, history *History) (*game.Game, error) {
	g := game.New(m)
	g.Converter = timing.Converter{GlobalOffset: history.Offset}

	lanes := make([][]game.Input, len(m.Lanes))
	for _, in := range history.Inputs {
		if in.Lane < 0 || in.Lane >= len(lanes) {
			return nil, fmt.Errorf("lane %d: %w", in.Lane, ErrLane)
		}
		lanes[in.Lane] = append(lanes[in.Lane], in)
	}

	end := m.End().ToGame(g.Converter).
		Add(game.HitWindow).
		Add(timing.GameDifferenceFromMilliHundreds(1))

	eg, ctx := errgroup.WithContext(ctx)
	for lane, inputs := range lanes {
		eg.Go(func() error {
			for _, in := range inputs {
				if err := ctx.Err(); nil != err {
					return err
				}
				g.Apply(in)
			}
			g.Update(lane, end)
			return nil
		})
	}
	if err := eg.Wait(); nil != err {
		return nil, err
	}
	return g, nil
}

// Summarize grades every hit by its press timing.
func Summarize(g *game.Game, judgements []game.Judgement) Score {
	score := Score{Counts: make([]int, len(judgements))}
	miss := len(judgements) - 1

	diffs := []float64{}
	for lane := range g.Lanes {
		for i, state := range g.Lanes[lane].ObjectStates {
			if g.Missed(lane, i) {
				score.Misses++
				score.Counts[miss]++
				continue
			}
			if !state.IsHit() {
				continue
			}
			d, _ := state.PressDiff()
			idx, _ := game.Judge(judgements, d)
			score.Counts[idx]++
			score.Hits++
			score.TotalError += d.Abs().Duration()
			diffs = append(diffs, float64(d.MilliHundreds())/timing.UnitsPerMilli)
		}
	}

	if len(diffs) == 0 {
		return score
	}
	sum := 0.0
	for _, d := range diffs {
		sum += d
	}
	score.Mean = sum / float64(len(diffs))
	if len(diffs) > 1 {
		for _, d := range diffs {
			xi := d - score.Mean
			score.Stdev += xi * xi
		}
		score.Stdev /= float64(len(diffs) - 1)
		score.Stdev = math.Sqrt(score.Stdev)
	}
	return score
}

func (s *DefaultScorer) Score(ctx context.Context, m *game.Map, history *History) (Score, error) {
	g, err := Replay(ctx, m, history)
	if nil != err {
		return Score{}, err
	}
	return Summarize(g, game.DefaultJudgements), nil
}
