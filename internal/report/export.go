// Package report renders Mars clock snapshots as text and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-marstime/internal/earth"
	"github.com/litescript/ls-marstime/internal/mars"
)

// SnapshotExport is the JSON-serializable form of a snapshot.
type SnapshotExport struct {
	EarthTime time.Time    `json:"earth_time"`
	Site      SiteExport   `json:"site"`
	Time      TimeExport   `json:"time"`
	Orbit     OrbitExport  `json:"orbit"`
	Clock     ClockExport  `json:"clock"`
	Sun       SunExport    `json:"sun"`
	Earth     *EarthExport `json:"earth,omitempty"`
}

// SiteExport is the observer.
type SiteExport struct {
	Name        string  `json:"name,omitempty"`
	LonEastDeg  float64 `json:"lon_east"`
	LonWestDeg  float64 `json:"lon_west"`
	LatNorthDeg float64 `json:"lat_north"`
}

// TimeExport holds the Earth time scales.
type TimeExport struct {
	JulianDateUTC float64 `json:"jd_utc"`
	JulianDateTT  float64 `json:"jd_tt"`
	LeapSeconds   int     `json:"leap_seconds"`
	J2kOffset     float64 `json:"j2k_offset_days"`
}

// OrbitExport holds the orbital quantities.
type OrbitExport struct {
	Eccentricity             float64 `json:"eccentricity"`
	MeanAnomaly              float64 `json:"mean_anomaly"`
	AlphaPerturbs            float64 `json:"perturbations"`
	AngleOfFictitiousMeanSun float64 `json:"fictitious_mean_sun"`
	EquationOfCenter         float64 `json:"equation_of_center"`
	SolarLongitude           float64 `json:"ls"`
	TrueAnomaly              float64 `json:"true_anomaly"`
	Season                   string  `json:"season"`
}

// ClockExport holds Mars time of day.
type ClockExport struct {
	MarsSolDate       float64 `json:"msd"`
	Sol               int64   `json:"sol"`
	MTC               float64 `json:"mtc_hours"`
	MTCString         string  `json:"mtc"`
	EquationOfTime    float64 `json:"equation_of_time"`
	SubsolarLongitude float64 `json:"subsolar_longitude"`
	HourAngle         float64 `json:"hour_angle_rad"`
	LMST              float64 `json:"lmst_hours"`
	LMSTString        string  `json:"lmst"`
	LTST              float64 `json:"ltst_hours"`
	LTSTString        string  `json:"ltst"`
}

// SunExport holds solar geometry and the day events.
type SunExport struct {
	Declination      float64   `json:"declination"`
	Zenith           float64   `json:"zenith"`
	Elevation        float64   `json:"elevation"`
	PreviousMidnight time.Time `json:"previous_midnight"`
	Sunrise          time.Time `json:"sunrise"`
	Sunset           time.Time `json:"sunset"`
	NextMidnight     time.Time `json:"next_midnight"`
	DaylightHours    float64   `json:"daylight_hours"`
	Polar            string    `json:"polar,omitempty"`
}

// EarthExport is the operator site on Earth.
type EarthExport struct {
	Name    string     `json:"name,omitempty"`
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`
	Sunrise *time.Time `json:"sunrise,omitempty"`
	Sunset  *time.Time `json:"sunset,omitempty"`
	SunEl   float64    `json:"sun_elevation"`
	SunAz   float64    `json:"sun_azimuth"`
}

// Export converts a snapshot to an exportable form. day may be nil.
func Export(s mars.Snapshot, day *earth.Day) *SnapshotExport {
	x := &SnapshotExport{
		EarthTime: s.Earth.UTC(),
		Site: SiteExport{
			Name:        s.Observer.Name,
			LonEastDeg:  s.Observer.LonEastDeg,
			LonWestDeg:  s.Observer.LonWestDeg(),
			LatNorthDeg: s.Observer.LatNorthDeg,
		},
		Time: TimeExport{
			JulianDateUTC: s.JulianDateUTC,
			JulianDateTT:  s.JulianDateTT,
			LeapSeconds:   s.LeapSeconds,
			J2kOffset:     float64(s.J2k),
		},
		Orbit: OrbitExport{
			Eccentricity:             s.Eccentricity,
			MeanAnomaly:              s.MeanAnomaly,
			AlphaPerturbs:            s.AlphaPerturbs,
			AngleOfFictitiousMeanSun: s.AngleOfFictitiousMeanSun,
			EquationOfCenter:         s.EquationOfCenter,
			SolarLongitude:           s.Ls,
			TrueAnomaly:              s.TrueAnomaly,
			Season:                   s.Season.String(),
		},
		Clock: ClockExport{
			MarsSolDate:       s.MSD,
			Sol:               Sol(s.MSD),
			MTC:               s.MTC,
			MTCString:         mars.FormatHours(s.MTC),
			EquationOfTime:    s.EquationOfTime,
			SubsolarLongitude: s.SubsolarLongitude,
			HourAngle:         s.HourAngle,
			LMST:              s.LMST,
			LMSTString:        mars.FormatHours(s.LMST),
			LTST:              s.LTST,
			LTSTString:        mars.FormatHours(s.LTST),
		},
		Sun: SunExport{
			Declination:      s.SolarDeclination,
			Zenith:           s.SolarZenith,
			Elevation:        s.SolarElevation,
			PreviousMidnight: s.Times.PreviousMidnight,
			Sunrise:          s.Times.Sunrise,
			Sunset:           s.Times.Sunset,
			NextMidnight:     s.Times.NextMidnight,
			DaylightHours:    s.Events.DaylightDays() * 24,
		},
	}
	if s.Polar != mars.PolarNone {
		x.Sun.Polar = s.Polar.String()
	}

	if day != nil {
		ex := &EarthExport{
			Name:  day.Site.Name,
			Lat:   day.Site.Lat,
			Lon:   day.Site.Lon,
			SunEl: day.Sun.ElDeg,
			SunAz: day.Sun.AzDeg,
		}
		if !day.NoCrossing() {
			rise, set := day.Sunrise, day.Sunset
			ex.Sunrise, ex.Sunset = &rise, &set
		}
		x.Earth = ex
	}
	return x
}

// WriteJSON writes the export as indented JSON.
func (x *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(x)
}

// Sol returns the integer sol number of a Mars Sol Date.
func Sol(msd float64) int64 {
	return int64(math.Floor(msd))
}

// WriteNow writes a one-line clock: sol, MTC, LTST and the site.
func WriteNow(w io.Writer, s mars.Snapshot) error {
	_, err := fmt.Fprintf(w, "Sol %d  MTC %s  LTST %s  Ls %.1f°  %s\n",
		Sol(s.MSD), mars.FormatHours(s.MTC), mars.FormatHours(s.LTST), s.Ls, siteLabel(s.Observer))
	return err
}

// WriteSummary writes a text table of every quantity. day may be nil.
func WriteSummary(w io.Writer, s mars.Snapshot, day *earth.Day) {
	fmt.Fprintf(w, "Mars Time @ %s\n", s.Earth.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Site: %s (%.4f°E / %.4f°W, %.4f°N)\n",
		siteLabel(s.Observer), s.Observer.LonEastDeg, s.Observer.LonWestDeg(), s.Observer.LatNorthDeg)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	section(w, "Time scales")
	row(w, "JD (UTC)", "%.6f", s.JulianDateUTC)
	row(w, "JD (TT)", "%.6f", s.JulianDateTT)
	row(w, "TAI−UTC", "%d s", s.LeapSeconds)
	row(w, "J2000 offset (TT)", "%.6f days", float64(s.J2k))

	section(w, "Orbit")
	row(w, "Eccentricity", "%.6f", s.Eccentricity)
	row(w, "Mean anomaly", "%.4f°", s.MeanAnomaly)
	row(w, "Perturbations", "%.6f°", s.AlphaPerturbs)
	row(w, "Fictitious mean sun", "%.4f°", s.AngleOfFictitiousMeanSun)
	row(w, "Equation of center", "%.4f°", s.EquationOfCenter)
	row(w, "Solar longitude Ls", "%.4f°", s.Ls)
	row(w, "True anomaly", "%.4f°", s.TrueAnomaly)
	row(w, "Season (north)", "%s", s.Season)

	section(w, "Clock")
	row(w, "Mars Sol Date", "%.5f", s.MSD)
	row(w, "MTC", "%s", mars.FormatHours(s.MTC))
	row(w, "Equation of time", "%.4f°", s.EquationOfTime)
	row(w, "Subsolar longitude", "%.4f°W", s.SubsolarLongitude)
	row(w, "Hour angle", "%.5f rad", s.HourAngle)
	row(w, "LMST", "%s", mars.FormatHours(s.LMST))
	row(w, "LTST", "%s", mars.FormatHours(s.LTST))

	section(w, "Sun")
	row(w, "Declination", "%.4f°", s.SolarDeclination)
	row(w, "Zenith", "%.4f°", s.SolarZenith)
	row(w, "Elevation", "%.4f°", s.SolarElevation)
	row(w, "Previous midnight", "%s", s.Times.PreviousMidnight.Format(time.RFC3339))
	switch s.Polar {
	case mars.PolarDay:
		row(w, "Sunrise / sunset", "%s", "sun above horizon all sol")
	case mars.PolarNight:
		row(w, "Sunrise / sunset", "%s", "sun below horizon all sol")
	default:
		row(w, "Sunrise", "%s", s.Times.Sunrise.Format(time.RFC3339))
		row(w, "Sunset", "%s", s.Times.Sunset.Format(time.RFC3339))
	}
	row(w, "Next midnight", "%s", s.Times.NextMidnight.Format(time.RFC3339))
	row(w, "Daylight", "%s", FormatDays(s.Events.DaylightDays()))

	if day != nil {
		section(w, "Earth ("+earthLabel(day.Site)+")")
		row(w, "Sun elevation", "%.2f°", day.Sun.ElDeg)
		if day.NoCrossing() {
			row(w, "Sunrise / sunset", "%s", "none today")
		} else {
			row(w, "Sunrise", "%s", day.Sunrise.Format(time.RFC3339))
			row(w, "Sunset", "%s", day.Sunset.Format(time.RFC3339))
			row(w, "Daylight", "%s", day.Daylight().Round(time.Minute))
		}
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

func row(w io.Writer, label, format string, args ...interface{}) {
	fmt.Fprintf(w, "  %-22s "+format+"\n", append([]interface{}{label}, args...)...)
}

// FormatDays renders a span of Earth days as hours and minutes.
func FormatDays(days float64) string {
	d := time.Duration(days * 24 * float64(time.Hour)).Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func siteLabel(obs mars.Observer) string {
	if obs.Name != "" {
		return obs.Name
	}
	return fmt.Sprintf("%.2f°E %.2f°N", obs.LonEastDeg, obs.LatNorthDeg)
}

func earthLabel(site earth.Site) string {
	if site.Name != "" {
		return site.Name
	}
	return fmt.Sprintf("%.2f, %.2f", site.Lat, site.Lon)
}
