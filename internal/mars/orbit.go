package mars

import "math"

// perturbation is one term of the planetary perturbation series (PBS).
type perturbation struct {
	amplitude float64 // degrees
	period    float64 // Julian years
	phase     float64 // degrees
}

// perturbations are the seven fixed terms of Allison & McEwen table 5.
var perturbations = [7]perturbation{
	{0.0071, 2.2353, 49.409},
	{0.0057, 2.7543, 168.173},
	{0.0039, 1.1177, 191.837},
	{0.0037, 15.7866, 21.736},
	{0.0021, 2.1354, 15.704},
	{0.0020, 2.4694, 95.528},
	{0.0018, 32.8493, 49.095},
}

// Eccentricity returns the orbital eccentricity of Mars.
func Eccentricity(t J2kOffset) float64 {
	return 0.09340 + 2.477e-9*float64(t)
}

// MeanAnomaly returns the Mars mean anomaly M in degrees, in [0, 360).
func MeanAnomaly(t J2kOffset) float64 {
	return NormalizeAngle(19.3870 + 0.52402075*float64(t))
}

// AlphaPerturbs returns the perturbation correction PBS in degrees.
func AlphaPerturbs(t J2kOffset) float64 {
	var pbs float64
	for _, p := range perturbations {
		pbs += p.amplitude * math.Cos(degToRad(0.985626*float64(t)/p.period+p.phase))
	}
	return pbs
}

// AngleOfFictitiousMeanSun returns alpha FMS in degrees, in [0, 360).
func AngleOfFictitiousMeanSun(t J2kOffset) float64 {
	return NormalizeAngle(270.3863 + 0.52403840*float64(t))
}

// EquationOfCenter returns the true minus mean anomaly (v − M) in degrees.
func EquationOfCenter(t J2kOffset) float64 {
	m := degToRad(MeanAnomaly(t))
	return (10.691+3.0e-7*float64(t))*math.Sin(m) +
		0.6230*math.Sin(2*m) +
		0.0500*math.Sin(3*m) +
		0.0050*math.Sin(4*m) +
		0.0005*math.Sin(5*m) +
		AlphaPerturbs(t)
}

// AreocentricSolarLongitude returns Ls in degrees, in [0, 360).
func AreocentricSolarLongitude(t J2kOffset) float64 {
	return NormalizeAngle(AngleOfFictitiousMeanSun(t) + EquationOfCenter(t))
}

// TrueAnomaly returns M + (v − M) in degrees. The sum is deliberately left
// unwrapped and may fall slightly outside [0, 360); wrap it with NormalizeAngle
// if a canonical value is needed.
func TrueAnomaly(t J2kOffset) float64 {
	return MeanAnomaly(t) + EquationOfCenter(t)
}
