package testdata

import (
	"git.lost.host/meutraa/ycore/internal/game"
	"git.lost.host/meutraa/ycore/internal/timing"
)

// Chart is a small StepMania chart. Its Hard difficulty is Map.
const Chart = `#TITLE:Test Song;
#ARTIST:Tester;
#CREDIT:meutraa;
#MUSIC:song.ogg;
#OFFSET:-0.100;
#BPMS:0.000=120.000;
#NOTES:
     dance-single:
     someone:
     Hard:
     7:
     0.1,0.2,0.3,0.4,0.5:
1000
0100
0020
0001
,  // measure 2
0030
1000
0000
0001
;
#NOTES:
     pump-single:
     someone:
     Hard:
     7:
     0.1,0.2,0.3,0.4,0.5:
10000
;
#NOTES:
     dance-single:
     someone:
     Easy:
     1:
     0.1,0.2,0.3,0.4,0.5:
1000
0000
0000
0000
;
`

func tap(ms int32) game.Object {
	return game.NewTap(timing.MapFromMillis(ms))
}

// Map returns the Hard difficulty of Chart.
func Map() *game.Map {
	return &game.Map{
		SongTitle:  "Test Song",
		SongArtist: "Tester",
		Mapper:     "meutraa",
		AudioFile:  "song.ogg",
		Difficulty: game.Difficulty{Name: "Hard", Msd: "7", NKeys: 4},
		Lanes: []game.Lane{
			{Objects: []game.Object{tap(100), tap(2600)}},
			{Objects: []game.Object{tap(600)}},
			{Objects: []game.Object{game.NewHold(timing.MapFromMillis(1100), timing.MapFromMillis(2100))}},
			{Objects: []game.Object{tap(1600), tap(3600)}},
		},
	}
}
