package mars

// Season is the northern-hemisphere season derived from Ls.
type Season int

const (
	SeasonSpring Season = iota // 0 ≤ Ls ≤ 90
	SeasonSummer               // 90 < Ls ≤ 180
	SeasonAutumn               // 180 < Ls ≤ 270
	SeasonWinter               // 270 < Ls < 360
)

func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "spring"
	case SeasonSummer:
		return "summer"
	case SeasonAutumn:
		return "autumn"
	case SeasonWinter:
		return "winter"
	default:
		return "unknown"
	}
}

// SeasonOf returns the season for areocentric solar longitude lsDeg.
func SeasonOf(lsDeg float64) Season {
	switch {
	case lsDeg > 270:
		return SeasonWinter
	case lsDeg > 180:
		return SeasonAutumn
	case lsDeg > 90:
		return SeasonSummer
	default:
		return SeasonSpring
	}
}

// SeasonAt returns the season at t.
func SeasonAt(t J2kOffset) Season {
	return SeasonOf(AreocentricSolarLongitude(t))
}
