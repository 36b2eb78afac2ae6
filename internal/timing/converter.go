package timing

// Converter moves timestamps between the game and map domains.
//
// GlobalOffset compensates for the playback latency of the audio device:
// map time = game time + GlobalOffset. Differences carry over unchanged,
// both domains tick at the same rate.
type Converter struct {
	GlobalOffset GameTimestampDifference
}

func (c Converter) GameToMap(t GameTimestamp) MapTimestamp {
	return MapTimestamp{t.Add(c.GlobalOffset).ts}
}

func (c Converter) MapToGame(t MapTimestamp) GameTimestamp {
	return GameTimestamp{t.ts}.SubDifference(c.GlobalOffset)
}

func (c Converter) GameToMapDifference(d GameTimestampDifference) MapTimestampDifference {
	return MapTimestampDifference{d.d}
}

func (c Converter) MapToGameDifference(d MapTimestampDifference) GameTimestampDifference {
	return GameTimestampDifference{d.d}
}
