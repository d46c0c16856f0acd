package mars

const (
	// MaxBisectIterations caps each sunrise/sunset search.
	MaxBisectIterations = 200

	// bisectTolerance is the bracket width, in days, at which a search stops.
	bisectTolerance = 1e-9
)

// Midnights is the pair of local true midnights around an instant.
type Midnights struct {
	Previous J2kOffset
	Next     J2kOffset
}

// Noon returns the midpoint of the bracket.
func (m Midnights) Noon() J2kOffset {
	return (m.Previous + m.Next) / 2
}

// Contains reports whether t lies within the bracket.
func (m Midnights) Contains(t J2kOffset) bool {
	return t >= m.Previous && t <= m.Next
}

// DayEvents holds sunrise and sunset for one sol.
type DayEvents struct {
	Sunrise J2kOffset
	Sunset  J2kOffset
}

// DaylightDays returns the time between sunrise and sunset in Earth days.
func (d DayEvents) DaylightDays() float64 {
	return float64(d.Sunset - d.Sunrise)
}

// PolarState describes whether a sol had a normal sunrise/sunset.
type PolarState int

const (
	PolarNone  PolarState = iota // sun rises and sets
	PolarDay                     // sun never sets
	PolarNight                   // sun never rises
)

// String returns a short label.
func (p PolarState) String() string {
	switch p {
	case PolarNone:
		return "none"
	case PolarDay:
		return "polar day"
	case PolarNight:
		return "polar night"
	default:
		return "unknown"
	}
}

// Polar classifies events returned by SunriseSunset against their bracket.
// Searches that find no crossing return a bracket boundary: sunrise at the
// previous midnight with sunset at the next one means the sun stayed up;
// sunrise and sunset both at noon means it never came up.
func (d DayEvents) Polar(b Midnights) PolarState {
	noon := b.Noon()
	switch {
	case d.Sunrise == b.Previous && d.Sunset == b.Next:
		return PolarDay
	case d.Sunrise == noon && d.Sunset == noon:
		return PolarNight
	default:
		return PolarNone
	}
}

// LocalMidnights returns the local true midnights before and after t for an
// observer at lonWest degrees west. Next − Previous is exactly one Earth day.
func LocalMidnights(t J2kOffset, lonWest float64) Midnights {
	ltst := LocalTrueSolarTime(t, lonWest)
	return Midnights{
		Previous: t - J2kOffset(ltst/24),
		Next:     t + J2kOffset((24-ltst)/24),
	}
}

// SunriseSunset finds sunrise and sunset within the midnight bracket around t.
// angularRadius (degrees) is added to the elevation for the sunrise search only,
// so a positive value reports the first limb rather than the centre.
//
// Elevation is assumed to rise monotonically from midnight to noon and fall
// from noon to midnight. When it never crosses zero the boundary of the
// half-sol is returned instead: Previous/noon for sunrise, noon/Next for sunset.
func SunriseSunset(t J2kOffset, lonWest, latNorth, angularRadius float64) DayEvents {
	bracket := LocalMidnights(t, lonWest)
	noon := bracket.Noon()

	rising := func(x J2kOffset) float64 {
		return SolarElevation(x, lonWest, latNorth) + angularRadius
	}
	setting := func(x J2kOffset) float64 {
		return -SolarElevation(x, lonWest, latNorth)
	}

	var ev DayEvents
	switch {
	case rising(bracket.Previous) >= 0:
		ev.Sunrise = bracket.Previous
	case rising(noon) < 0:
		ev.Sunrise = noon
	default:
		ev.Sunrise = bisect(rising, bracket.Previous, noon)
	}

	switch {
	case setting(noon) >= 0:
		ev.Sunset = noon
	case setting(bracket.Next) < 0:
		ev.Sunset = bracket.Next
	default:
		ev.Sunset = bisect(setting, noon, bracket.Next)
	}

	return ev
}

// bisect narrows [lo, hi] with f(lo) < 0 <= f(hi) down to the first instant
// where f is non-negative.
func bisect(f func(J2kOffset) float64, lo, hi J2kOffset) J2kOffset {
	for i := 0; i < MaxBisectIterations && float64(hi-lo) > bisectTolerance; i++ {
		mid := (lo + hi) / 2
		if f(mid) >= 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
