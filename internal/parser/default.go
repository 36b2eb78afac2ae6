package parser

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
)

var (
	ErrNoBPM        = errors.New("chart has no BPMS")
	ErrOpenHold     = errors.New("hold head without a tail")
	ErrTimeOverflow = errors.New("note time out of range")
)

type DefaultParser struct{}

type bpm struct {
	StartingBeat float64
	Value        float64
}

func (p *DefaultParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := rates[0].Value
	for _, r := range rates {
		if currentBeat >= r.StartingBeat {
			sel = r.Value
		} else {
			break
		}
	}
	secondsPerBeat := 60.0 / sel
	return bpn * secondsPerBeat
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func toTimestamp(seconds float64) (timing.MapTimestamp, error) {
	v := math.Round(seconds * 1000 * timing.UnitsPerMilli)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return timing.MapTimestamp{}, fmt.Errorf("%.3fs: %w", seconds, ErrTimeOverflow)
	}
	return timing.MapFromMilliHundreds(int32(v)), nil
}

func tagValue(mdl, tag string) (string, bool) {
	if !strings.HasPrefix(mdl, tag+":") {
		return "", false
	}
	mdl = strings.TrimPrefix(mdl, tag+":")
	return strings.TrimSpace(strings.TrimSuffix(mdl, ";")), true
}

func stripComment(l string) string {
	if i := strings.Index(l, "//"); i >= 0 {
		return l[:i]
	}
	return l
}

func (p *DefaultParser) Parse(file string) ([]*game.Map, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}

	maps, err := p.ParseString(string(data))
	if nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	for _, m := range maps {
		if m.AudioFile != "" {
			m.AudioFile = filepath.Join(filepath.Dir(file), m.AudioFile)
		}
	}
	return maps, nil
}

// ParseString reads the .sm document in data. Every returned map is sorted
// and validated.
func (p *DefaultParser) ParseString(data string) ([]*game.Map, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	type difficulty struct {
		game.Difficulty
		Author  string
		Section string
	}
	difficulties := []difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, difficulty{
			Difficulty: game.Difficulty{
				Name:  strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
				Msd:   strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
				NKeys: nKeys,
			},
			Author:  strings.TrimSuffix(strings.TrimSpace(lines[2]), ":"),
			Section: lines[6],
		})
	}

	offset := 0.0
	bpms := []bpm{}
	var title, artist, credit, music string

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if v, ok := tagValue(mdl, "OFFSET"); ok {
			offs, err := strconv.ParseFloat(v, 64)
			if nil != err {
				return nil, fmt.Errorf("unable to parse OFFSET: %w", err)
			}
			offset = -offs
		} else if v, ok := tagValue(mdl, "BPMS"); ok {
			v = strings.ReplaceAll(v, "\n", "")
			for _, b := range strings.Split(v, ",") {
				if strings.TrimSpace(b) == "" {
					continue
				}
				as := strings.Split(b, "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("unable to parse BPMS entry %q", b)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, err
				}
				value, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, err
				}
				bpms = append(bpms, bpm{StartingBeat: sb, Value: value})
			}
		} else if v, ok := tagValue(mdl, "TITLE"); ok {
			title = v
		} else if v, ok := tagValue(mdl, "ARTIST"); ok {
			artist = v
		} else if v, ok := tagValue(mdl, "CREDIT"); ok {
			credit = v
		} else if v, ok := tagValue(mdl, "MUSIC"); ok {
			music = v
		}
	}

	if len(bpms) == 0 {
		return nil, ErrNoBPM
	}

	maps := []*game.Map{}
	for _, difficulty := range difficulties {
		// Start time of first note
		seconds := offset
		var currentBeat float64 = 0.0

		lanes := make([]game.Lane, difficulty.NKeys)
		heads := make([]int, difficulty.NKeys)
		for i := range heads {
			heads[i] = -1
		}

		blocks := strings.Split(difficulty.Section, "\n,")
		for _, block := range blocks {
			lines := []string{}
			for _, l := range strings.Split(block, "\n") {
				l = strings.TrimSpace(stripComment(l))
				if len(l) >= int(difficulty.NKeys) {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				continue
			}

			// Beat count is 4 per block
			beatsPerNote := 4.0 / float64(len(lines)) // 1/4, 1/8, 1/16, 1/24 etc

			for _, line := range lines {
				ts, err := toTimestamp(seconds)
				if nil != err {
					return nil, err
				}

				for i, c := range []byte(line[:difficulty.NKeys]) {
					lane := &lanes[i]
					switch c {
					case '1':
						lane.Objects = append(lane.Objects, game.NewTap(ts))
					case '2', '4':
						heads[i] = len(lane.Objects)
						lane.Objects = append(lane.Objects, game.Object{Kind: game.Hold, Start: ts})
					case '3':
						// This is a release note of a previous head
						if heads[i] >= 0 {
							lane.Objects[heads[i]].End = ts
							heads[i] = -1
						}
					}
				}

				seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
				currentBeat += beatsPerNote
			}
		}

		for i, head := range heads {
			if head >= 0 {
				return nil, fmt.Errorf("%v lane %d: %w", difficulty.Name, i, ErrOpenHold)
			}
		}

		mapper := credit
		if mapper == "" {
			mapper = difficulty.Author
		}
		m := &game.Map{
			SongTitle:  title,
			SongArtist: artist,
			Mapper:     mapper,
			AudioFile:  music,
			Difficulty: difficulty.Difficulty,
			Lanes:      lanes,
		}
		m.Sort()
		if err := m.Validate(); nil != err {
			return nil, fmt.Errorf("%v: %w", difficulty.Name, err)
		}
		maps = append(maps, m)
	}

	return maps, nil
}
