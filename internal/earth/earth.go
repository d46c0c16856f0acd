// Package earth computes sunrise and sunset for an operator site on Earth,
// shown next to the Mars clock.
package earth

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Site is a location on Earth. Lon is positive east.
type Site struct {
	Name string
	Lat  float64
	Lon  float64
}

// Day holds the solar events of one UTC calendar date at a site. Sunrise and
// Sunset are zero when the sun does not cross the horizon that day. Sun is
// the position of the Sun at the instant the day was computed for.
type Day struct {
	Site    Site
	Date    time.Time
	Sunrise time.Time
	Sunset  time.Time
	Sun     Horizontal
}

// DayOf returns the events for the UTC date containing t.
func DayOf(site Site, t time.Time) Day {
	t = t.UTC()
	y, m, d := t.Date()
	rise, set := sunrise.SunriseSunset(site.Lat, site.Lon, y, m, d)
	return Day{
		Site:    site,
		Date:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Sunrise: rise,
		Sunset:  set,
		Sun:     SunAt(site, t),
	}
}

// NoCrossing reports whether the sun stayed up or down all day.
func (d Day) NoCrossing() bool {
	return d.Sunrise.IsZero() || d.Sunset.IsZero()
}

// Daylight returns the time between sunrise and sunset.
func (d Day) Daylight() time.Duration {
	if d.NoCrossing() {
		return 0
	}
	return d.Sunset.Sub(d.Sunrise)
}

// IsDaylight reports whether t falls between sunrise and sunset.
func (d Day) IsDaylight(t time.Time) bool {
	if d.NoCrossing() {
		return false
	}
	return !t.Before(d.Sunrise) && t.Before(d.Sunset)
}

// Next returns the first sunrise or sunset strictly after t, searching up to
// a week ahead, and whether it is a sunrise.
func Next(site Site, t time.Time) (time.Time, bool, bool) {
	for i := 0; i < 7; i++ {
		day := DayOf(site, t.AddDate(0, 0, i))
		if day.NoCrossing() {
			continue
		}
		if day.Sunrise.After(t) {
			return day.Sunrise, true, true
		}
		if day.Sunset.After(t) {
			return day.Sunset, false, true
		}
	}
	return time.Time{}, false, false
}
