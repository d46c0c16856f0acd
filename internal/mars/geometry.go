package mars

import (
	"math"

	"github.com/soniakeys/unit"
)

// obliquityFactor is sin(25.1919°), the sine of Mars' axial tilt.
const obliquityFactor = 0.42565

// SolarDeclination returns the planetographic solar declination in degrees
// for an areocentric solar longitude lsDeg.
func SolarDeclination(lsDeg float64) float64 {
	sinLs := unit.AngleFromDeg(lsDeg).Sin()
	dec := math.Asin(obliquityFactor*sinLs) + 0.25*(math.Pi/180)*sinLs
	return radToDeg(dec)
}

// SolarZenith returns the solar zenith angle in degrees.
func SolarZenith(t J2kOffset, lonWest, latNorth float64) float64 {
	ha := unit.Angle(HourAngle(t, lonWest))
	dec := unit.AngleFromDeg(SolarDeclination(AreocentricSolarLongitude(t)))
	lat := unit.AngleFromDeg(latNorth)

	cosZ := dec.Sin()*lat.Sin() + dec.Cos()*lat.Cos()*ha.Cos()
	// Clamp to avoid NaN from acos when rounding pushes |cosZ| past 1
	if cosZ > 1 {
		cosZ = 1
	} else if cosZ < -1 {
		cosZ = -1
	}

	return radToDeg(math.Acos(cosZ))
}

// SolarElevation returns the solar elevation above the horizon in degrees.
func SolarElevation(t J2kOffset, lonWest, latNorth float64) float64 {
	return 90 - SolarZenith(t, lonWest, latNorth)
}
