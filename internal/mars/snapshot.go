package mars

import "time"

// Snapshot is every quantity for one instant and observer, sampled once.
type Snapshot struct {
	Earth    time.Time
	Observer Observer

	JulianDateUTC float64
	JulianDateTT  float64
	LeapSeconds   int
	J2k           J2kOffset

	Eccentricity             float64
	MeanAnomaly              float64
	AlphaPerturbs            float64
	AngleOfFictitiousMeanSun float64
	EquationOfCenter         float64
	Ls                       float64
	TrueAnomaly              float64
	Season                   Season

	MSD               float64
	MTC               float64
	EquationOfTime    float64
	SubsolarLongitude float64
	HourAngle         float64
	LMST              float64
	LTST              float64

	SolarDeclination float64
	SolarZenith      float64
	SolarElevation   float64

	Midnights Midnights
	Events    DayEvents
	Polar     PolarState

	// Earth instants of Midnights and Events.
	Times EventTimes
}

// EventTimes are the day events of a sol as UTC instants.
type EventTimes struct {
	PreviousMidnight time.Time
	Sunrise          time.Time
	Sunset           time.Time
	NextMidnight     time.Time
}

// Snapshot samples the time source once and computes every quantity for the
// bound observer. angularRadius is passed to the sunrise search.
func (e *Engine) Snapshot(angularRadius float64) Snapshot {
	now := e.Now()
	j := e.scale.J2kOffset(now)
	lonW := e.LongitudeWest()
	latN := e.LatitudeNorth()
	ls := AreocentricSolarLongitude(j)

	mid := LocalMidnights(j, lonW)
	ev := SunriseSunset(j, lonW, latN, angularRadius)

	return Snapshot{
		Earth:    now,
		Observer: e.observer,

		JulianDateUTC: e.scale.JulianDateUTC(now),
		JulianDateTT:  e.scale.JulianDateTT(now),
		LeapSeconds:   e.scale.LeapSeconds(now),
		J2k:           j,

		Eccentricity:             Eccentricity(j),
		MeanAnomaly:              MeanAnomaly(j),
		AlphaPerturbs:            AlphaPerturbs(j),
		AngleOfFictitiousMeanSun: AngleOfFictitiousMeanSun(j),
		EquationOfCenter:         EquationOfCenter(j),
		Ls:                       ls,
		TrueAnomaly:              TrueAnomaly(j),
		Season:                   SeasonOf(ls),

		MSD:               MarsSolDate(j),
		MTC:               CoordinatedMarsTime(j),
		EquationOfTime:    EquationOfTime(j),
		SubsolarLongitude: SubsolarLongitude(j),
		HourAngle:         HourAngle(j, lonW),
		LMST:              LocalMeanSolarTime(j, lonW),
		LTST:              LocalTrueSolarTime(j, lonW),

		SolarDeclination: SolarDeclination(ls),
		SolarZenith:      SolarZenith(j, lonW, latN),
		SolarElevation:   SolarElevation(j, lonW, latN),

		Midnights: mid,
		Events:    ev,
		Polar:     ev.Polar(mid),

		Times: EventTimes{
			PreviousMidnight: e.scale.Time(mid.Previous),
			Sunrise:          e.scale.Time(ev.Sunrise),
			Sunset:           e.scale.Time(ev.Sunset),
			NextMidnight:     e.scale.Time(mid.Next),
		},
	}
}

// FormatHours renders a clock value in hours as HH:MM:SS.
func FormatHours(h float64) string {
	h = NormalizeHours(h)
	total := int(h * 3600)
	return time.Time{}.Add(time.Duration(total) * time.Second).Format("15:04:05")
}
