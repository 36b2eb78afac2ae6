package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/ycore/internal/scroll"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	song := t.TempDir()
	cfg, err := Load([]string{"play", song}, "")
	require.NoError(t, err)

	assert.Equal(t, "play", cfg.Command)
	assert.Equal(t, song, cfg.Directory)
	assert.Equal(t, time.Duration(0), cfg.Offset)
	assert.Equal(t, 1500*time.Millisecond, cfg.Delay)
	assert.Equal(t, uint8(25), cfg.ScrollSpeed)
	assert.Equal(t, 1.0, cfg.ScrollMultiplier)
	assert.Equal(t, "dfjk", cfg.Keys[4])
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./scores.db", cfg.Database)
}

func TestLoadFileThenFlags(t *testing.T) {
	song := t.TempDir()
	dir := t.TempDir()
	file := `{
		"offset": "-25ms",
		"scrollSpeed": 30,
		"keys": { "single": "zxcv" },
		"logLevel": "debug"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(file), 0644))

	cfg, err := Load([]string{"replay", "--scroll-speed=40", song, "-H", "2"}, dir)
	require.NoError(t, err)

	assert.Equal(t, "replay", cfg.Command)
	assert.Equal(t, 2, cfg.History)
	assert.Equal(t, -25*time.Millisecond, cfg.Offset)
	assert.Equal(t, uint8(40), cfg.ScrollSpeed)
	assert.Equal(t, "zxcv", cfg.Keys[4])
	assert.Equal(t, "debug", cfg.LogLevel)

	c, err := cfg.Converter()
	require.NoError(t, err)
	assert.Equal(t, timing.GameDifferenceFromMillis(-25), c.GlobalOffset)

	s, err := cfg.Scroll()
	require.NoError(t, err)
	assert.Equal(t, scroll.Scroll{Speed: 40, Multiplier: scroll.DefaultMultiplier}, s)
}

func TestLoadErrors(t *testing.T) {
	song := t.TempDir()

	_, err := Load([]string{"play", filepath.Join(song, "missing")}, "")
	assert.Error(t, err)

	_, err = Load([]string{"dance", song}, "")
	assert.Error(t, err)

	_, err = Load([]string{"play", "--offset=100h", song}, "")
	assert.ErrorIs(t, err, timing.ErrOverflow)

	_, err = Load([]string{"play", "--scroll-multiplier=1e9", song}, "")
	assert.ErrorIs(t, err, scroll.ErrMultiplierRange)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{"), 0644))
	_, err = Load([]string{"play", song}, dir)
	assert.Error(t, err)
}

func TestKeyLane(t *testing.T) {
	cfg := &Config{Keys: map[uint8]string{4: "dfjk", 6: "sdfjkl"}}

	lane, err := cfg.KeyLane('j', 4)
	require.NoError(t, err)
	assert.Equal(t, 2, lane)

	lane, err = cfg.KeyLane('l', 6)
	require.NoError(t, err)
	assert.Equal(t, 5, lane)

	// 8k falls back to the 4k keys.
	lane, err = cfg.KeyLane('d', 8)
	require.NoError(t, err)
	assert.Equal(t, 0, lane)

	_, err = cfg.KeyLane('q', 4)
	assert.ErrorIs(t, err, ErrUnknownKey)
}
