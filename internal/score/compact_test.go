package score

import (
	"testing"

	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(lane int, v int32) game.Input {
	return game.Input{Lane: lane, Kind: game.Press, Time: timing.GameFromMilliHundreds(v)}
}

func release(lane int, v int32) game.Input {
	return game.Input{Lane: lane, Kind: game.Release, Time: timing.GameFromMilliHundreds(v)}
}

var compactTests = []struct {
	inputs  []game.Input
	compact []InputsCompact
}{
	{[]game.Input{}, []InputsCompact{}},
	{[]game.Input{press(0, 100), press(3, 200)}, []InputsCompact{
		{Lane: 0, Times: []int32{100}, Kinds: "p"},
		{Lane: 1, Times: []int32{}, Kinds: ""},
		{Lane: 2, Times: []int32{}, Kinds: ""},
		{Lane: 3, Times: []int32{200}, Kinds: "p"},
	}},
	{[]game.Input{press(1, 2), release(1, 2), press(1, 5)}, []InputsCompact{
		{Lane: 0, Times: []int32{}, Kinds: ""},
		{Lane: 1, Times: []int32{2, 2, 5}, Kinds: "prp"},
	}},
}

func TestCompactInputs(t *testing.T) {
	for _, test := range compactTests {
		assert.Equal(t, test.compact, compactInputs(test.inputs))
	}
}

func TestUncompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out, err := uncompactInputs(test.compact)
		require.NoError(t, err)
		assert.Equal(t, test.inputs, out)
	}

	_, err := uncompactInputs([]InputsCompact{{Lane: 0, Times: []int32{1, 2}, Kinds: "p"}})
	assert.Error(t, err)
}
