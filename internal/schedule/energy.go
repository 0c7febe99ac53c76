package schedule

// EnergyCurve maps hour-of-day to an energy level 1-10, piecewise
// constant across the hour. The map is sparse; hours not present inherit
// the nearest preceding entry, wrapping past midnight for pre-dawn hours.
type EnergyCurve map[int]int

// DefaultEnergyCurve peaks mid-morning, dips after lunch, recovers in the
// late afternoon and declines through the evening.
func DefaultEnergyCurve() EnergyCurve {
	return EnergyCurve{
		6:  5,
		8:  8,
		10: 9,
		12: 7,
		14: 5,
		16: 7,
		18: 6,
		20: 5,
		22: 3,
	}
}

// LevelAt returns the energy level for the given clock hour.
func (c EnergyCurve) LevelAt(hour int) int {
	if len(c) == 0 {
		return 5
	}
	for h := hour; h >= 0; h-- {
		if lvl, ok := c[h]; ok {
			return lvl
		}
	}
	// Pre-dawn hours inherit the last entry of the previous evening.
	for h := 23; h > hour; h-- {
		if lvl, ok := c[h]; ok {
			return lvl
		}
	}
	return 5
}
