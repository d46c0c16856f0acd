package earth

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// Horizontal is a position on the local sky.
type Horizontal struct {
	AzDeg float64 // 0=N, 90=E, 180=S, 270=W
	ElDeg float64 // 0=horizon, 90=zenith
}

// SunEquatorial returns the apparent right ascension and declination of the
// Sun in degrees.
func SunEquatorial(t time.Time) (raDeg, decDeg float64) {
	ra, dec := solar.ApparentEquatorial(julian.TimeToJD(t.UTC()))
	raDeg = ra.Rad() * 180 / math.Pi
	if raDeg < 0 {
		raDeg += 360
	}
	return raDeg, dec.Deg()
}

// SunAt returns the azimuth and elevation of the Sun seen from site at t.
// Refraction is ignored.
func SunAt(site Site, t time.Time) Horizontal {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	ra, dec := solar.ApparentEquatorial(jd)
	gst := sidereal.Apparent(jd).Angle().Rad()

	lat := site.Lat * math.Pi / 180
	ha := gst + site.Lon*math.Pi/180 - ra.Rad()
	d := dec.Rad()

	sinAlt := math.Sin(d)*math.Sin(lat) + math.Cos(d)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(clamp(sinAlt))

	cosAz := (math.Sin(d) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	az := math.Acos(clamp(cosAz))
	if math.IsNaN(az) {
		az = 0
	}
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}
	return Horizontal{
		AzDeg: az * 180 / math.Pi,
		ElDeg: alt * 180 / math.Pi,
	}
}

func clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
