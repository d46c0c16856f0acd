// Package mars converts Earth timestamps to Mars time and solar geometry using
// the analytic model of Allison & McEwen (2000):
//
//	Allison, M., and M. McEwen 2000. A post-Pathfinder evaluation of areocentric
//	solar coordinates with improved timing recipes for Mars seasonal/diurnal
//	climate studies. Planet. Space Sci. 48, 215-235.
//
// Every quantity is a pure function of the J2000 TT offset (J2kOffset) and,
// where relevant, the observer's west longitude and north latitude.
package mars

import "math"

// Normalize wraps value into [0, base) without losing its fractional part.
// Normalize(-5.25, 360) is 354.75.
func Normalize(value, base float64) float64 {
	r := math.Mod(value, base)
	if r < 0 {
		r += base
	}
	// r+base can round up to base for tiny negative r
	if r >= base {
		r -= base
	}
	return r
}

// NormalizeAngle wraps degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	return Normalize(deg, 360)
}

// NormalizeHours wraps a clock value into [0, 24).
func NormalizeHours(h float64) float64 {
	return Normalize(h, 24)
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
