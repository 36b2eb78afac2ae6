package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"git.lost.host/meutraa/ycore/internal/scroll"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/spf13/viper"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	Version  = "0.3.0"
	FileName = "ycore.json"
)

var ErrUnknownKey = errors.New("key is not bound to a lane")

// Config is the resolved configuration. Flags win over the config file,
// which wins over the defaults.
type Config struct {
	Command    string
	Directory  string
	Difficulty int
	History    int

	Offset           time.Duration
	Delay            time.Duration
	FramePeriod      time.Duration
	ScrollSpeed      uint8
	ScrollMultiplier float64
	BarRow           uint
	Keys             map[uint8]string
	Database         string
	Device           string
	LogLevel         string
	LogDir           string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("offset", "0ms")
	v.SetDefault("delay", "1.5s")
	v.SetDefault("framePeriod", "4ms")
	v.SetDefault("scrollSpeed", 25)
	v.SetDefault("scrollMultiplier", 1.0)
	v.SetDefault("barRow", 4)
	v.SetDefault("keys.single", "dfjk")
	v.SetDefault("keys.solo", "sdfjkl")
	v.SetDefault("keys.double", "asdfjkl;")
	v.SetDefault("database", "./scores.db")
	v.SetDefault("device", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logDir", "./logs")
}

// readFile loads FileName from configDir if it exists.
func readFile(configDir string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if configDir == "" {
		return v, nil
	}
	v.SetConfigName(FileName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); nil != err {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return v, nil
}

// Load parses the command line args, taking defaults from configDir.
func Load(args []string, configDir string) (*Config, error) {
	v, err := readFile(configDir)
	if nil != err {
		return nil, err
	}

	app := kingpin.New("ycore", "Lane based rhythm game judge")
	app.Version(Version)

	cfg := &Config{Keys: map[uint8]string{}}

	app.Flag("offset", "Global offset, added to game time").Short('o').Default(v.GetString("offset")).DurationVar(&cfg.Offset)
	app.Flag("delay", "Start delay").Short('d').Default(v.GetString("delay")).DurationVar(&cfg.Delay)
	app.Flag("frame-period", "Render frame period").Short('p').Default(v.GetString("framePeriod")).DurationVar(&cfg.FramePeriod)
	app.Flag("scroll-speed", "Scroll speed").Short('s').Default(v.GetString("scrollSpeed")).Uint8Var(&cfg.ScrollSpeed)
	app.Flag("scroll-multiplier", "Scroll speed multiplier").Default(v.GetString("scrollMultiplier")).Float64Var(&cfg.ScrollMultiplier)
	app.Flag("bar-row", "Rows between the hit bar and the bottom").Default(v.GetString("barRow")).UintVar(&cfg.BarRow)
	keys4 := app.Flag("keys-single", "Keys for 4k").Short('k').Default(v.GetString("keys.single")).String()
	keys6 := app.Flag("keys-solo", "Keys for 6k").Default(v.GetString("keys.solo")).String()
	keys8 := app.Flag("keys-double", "Keys for 8k").Default(v.GetString("keys.double")).String()
	app.Flag("database", "Score database").Default(v.GetString("database")).StringVar(&cfg.Database)
	app.Flag("device", "evdev keyboard device, reads the terminal when empty").Default(v.GetString("device")).StringVar(&cfg.Device)
	app.Flag("log-level", "Log level").Default(v.GetString("logLevel")).EnumVar(&cfg.LogLevel, "trace", "debug", "info", "warn", "error")
	app.Flag("log-dir", "Log directory").Default(v.GetString("logDir")).StringVar(&cfg.LogDir)

	play := app.Command("play", "Play a chart")
	play.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&cfg.Directory)
	play.Flag("difficulty", "Difficulty index").Short('D').Default("0").IntVar(&cfg.Difficulty)

	replay := app.Command("replay", "Rescore a saved performance")
	replay.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&cfg.Directory)
	replay.Flag("difficulty", "Difficulty index").Short('D').Default("0").IntVar(&cfg.Difficulty)
	replay.Flag("history", "Saved performance index").Short('H').Default("0").IntVar(&cfg.History)

	scores := app.Command("scores", "List saved performances")
	scores.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&cfg.Directory)
	scores.Flag("difficulty", "Difficulty index").Short('D').Default("0").IntVar(&cfg.Difficulty)

	charts := app.Command("charts", "List the difficulties of a chart")
	charts.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&cfg.Directory)

	cfg.Command, err = app.Parse(args)
	if nil != err {
		return nil, err
	}

	cfg.Keys[4] = *keys4
	cfg.Keys[6] = *keys6
	cfg.Keys[8] = *keys8

	if _, err := cfg.Converter(); nil != err {
		return nil, err
	}
	if _, err := cfg.Scroll(); nil != err {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Converter() (timing.Converter, error) {
	offset, err := timing.GameDifferenceFromDuration(c.Offset)
	if nil != err {
		return timing.Converter{}, fmt.Errorf("invalid offset: %w", err)
	}
	return timing.Converter{GlobalOffset: offset}, nil
}

func (c *Config) Scroll() (scroll.Scroll, error) {
	m, err := scroll.MultiplierFromFloat(c.ScrollMultiplier)
	if nil != err {
		return scroll.Scroll{}, fmt.Errorf("invalid scroll multiplier: %w", err)
	}
	return scroll.Scroll{Speed: scroll.Speed(c.ScrollSpeed), Multiplier: m}, nil
}

func (c *Config) LaneKeys(nKeys uint8) []rune {
	if keys, ok := c.Keys[nKeys]; ok {
		return []rune(keys)
	}
	return []rune(c.Keys[4])
}

func (c *Config) KeyLane(r rune, nKeys uint8) (int, error) {
	for i, k := range c.LaneKeys(nKeys) {
		if r == k && i < int(nKeys) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s: %w", strconv.QuoteRune(r), ErrUnknownKey)
}
