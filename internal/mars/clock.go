package mars

import "math"

const (
	// SolSeconds is the length of a mean Mars solar day in SI seconds.
	SolSeconds = 88775.244
	// SolDays is the length of a mean sol in Earth days.
	SolDays = 1.027491252
)

// MarsSolDate returns the continuous Mars Sol Date (MSD).
func MarsSolDate(t J2kOffset) float64 {
	return (float64(t)-4.5)/SolDays + 44796.0 - 0.00096
}

// CoordinatedMarsTime returns MTC, the mean solar time at the prime meridian, in hours.
func CoordinatedMarsTime(t J2kOffset) float64 {
	return NormalizeHours(24 * MarsSolDate(t))
}

// EquationOfTime returns true minus mean solar time in degrees.
func EquationOfTime(t J2kOffset) float64 {
	ls := degToRad(AreocentricSolarLongitude(t))
	return 2.861*math.Sin(2*ls) -
		0.071*math.Sin(4*ls) +
		0.002*math.Sin(6*ls) -
		EquationOfCenter(t)
}

// SubsolarLongitude returns the west longitude of the subsolar point in degrees.
func SubsolarLongitude(t J2kOffset) float64 {
	eot := EquationOfTime(t) * 24 / 360
	return NormalizeAngle((CoordinatedMarsTime(t)+eot)*360/24 + 180)
}

// HourAngle returns the solar hour angle in radians for an observer at
// lonWest degrees west. The value is not wrapped.
func HourAngle(t J2kOffset, lonWest float64) float64 {
	return degToRad(lonWest) - degToRad(SubsolarLongitude(t))
}

// LocalMeanSolarTime returns LMST in hours for an observer at lonWest degrees west.
func LocalMeanSolarTime(t J2kOffset, lonWest float64) float64 {
	return NormalizeHours(CoordinatedMarsTime(t) - lonWest*24/360)
}

// LocalTrueSolarTime returns LTST in hours for an observer at lonWest degrees west.
func LocalTrueSolarTime(t J2kOffset, lonWest float64) float64 {
	return NormalizeHours(LocalMeanSolarTime(t, lonWest) + EquationOfTime(t)*24/360)
}
