package mars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// curiosityWest is Gale crater, 137.44°E, as a west longitude.
const curiosityWest = 222.56

func TestLocalMidnights(t *testing.T) {
	j := J2kOffset(7180.059272963088)
	m := LocalMidnights(j, curiosityWest)

	assert.InDelta(t, 7179.100755104826, float64(m.Previous), 1e-6)
	assert.InDelta(t, 7180.100755104826, float64(m.Next), 1e-6)
	assert.True(t, m.Contains(j))
}

func TestLocalMidnightsBracket(t *testing.T) {
	for j := J2kOffset(-3000); j < 12000; j += 123.4567 {
		for _, lonW := range []float64{0, 90, curiosityWest, 359.9} {
			m := LocalMidnights(j, lonW)
			require.Greater(t, float64(m.Next), float64(m.Previous))
			assert.True(t, m.Contains(j), "bracket %v does not contain %v", m, j)
			assert.InDelta(t, 1.0, float64(m.Next-m.Previous), 1e-9)
		}
	}
}

func TestSunriseSunset(t *testing.T) {
	j := J2kOffset(7180.059272963088)
	ev := SunriseSunset(j, curiosityWest, 0, 0)

	assert.InDelta(t, 7179.331385, float64(ev.Sunrise), 1e-5)
	assert.InDelta(t, 7179.845055, float64(ev.Sunset), 1e-5)
	assert.Equal(t, PolarNone, ev.Polar(LocalMidnights(j, curiosityWest)))
}

func TestSunriseSunsetEquator(t *testing.T) {
	for j := J2kOffset(-2000); j < 9000; j += 311.1 {
		for _, lonW := range []float64{0, 45, curiosityWest} {
			m := LocalMidnights(j, lonW)
			ev := SunriseSunset(j, lonW, 0, 0)

			require.Greater(t, float64(ev.Sunset), float64(ev.Sunrise), "j=%v lonW=%v", j, lonW)
			assert.True(t, m.Contains(ev.Sunrise), "sunrise outside bracket at j=%v", j)
			assert.True(t, m.Contains(ev.Sunset), "sunset outside bracket at j=%v", j)
			assert.InDelta(t, 0, SolarElevation(ev.Sunrise, lonW, 0), 1e-3)
			assert.InDelta(t, 0, SolarElevation(ev.Sunset, lonW, 0), 1e-3)
		}
	}
}

// scanSunriseSunset is the fixed-step forward scan the bisection replaces.
func scanSunriseSunset(j J2kOffset, lonW, latN, radius float64, steps int) DayEvents {
	m := LocalMidnights(j, lonW)
	noon := m.Noon()

	step := (noon - m.Previous) / J2kOffset(steps)
	sunrise := m.Previous
	for SolarElevation(sunrise, lonW, latN)+radius < 0 && sunrise < noon {
		sunrise += step
	}

	step = (m.Next - noon) / J2kOffset(steps)
	sunset := noon
	for SolarElevation(sunset, lonW, latN) > 0 && sunset <= m.Next {
		sunset += step
	}

	return DayEvents{Sunrise: sunrise, Sunset: sunset}
}

func TestSunriseSunsetMatchesScan(t *testing.T) {
	const steps = 20000

	tests := []struct {
		name   string
		j      J2kOffset
		lonW   float64
		latN   float64
		radius float64
	}{
		{"equator", 7180.059272963088, curiosityWest, 0, 0},
		{"gale crater", 7180.059272963088, curiosityWest, -4.59, 0},
		{"with angular radius", 7180.059272963088, curiosityWest, -4.59, 0.35},
		{"northern mid latitude", 1234.5, 10, 45, 0},
		{"southern high latitude", 5000, 300, -65, 0},
		{"polar day", 1030, 0, 85, 0},
		{"polar night", 1030, 0, -85, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LocalMidnights(tt.j, tt.lonW)
			tol := 2 * float64(m.Next-m.Previous) / 2 / steps

			want := scanSunriseSunset(tt.j, tt.lonW, tt.latN, tt.radius, steps)
			got := SunriseSunset(tt.j, tt.lonW, tt.latN, tt.radius)

			assert.InDelta(t, float64(want.Sunrise), float64(got.Sunrise), tol)
			assert.InDelta(t, float64(want.Sunset), float64(got.Sunset), tol)
		})
	}
}

func TestSunriseSunsetPolar(t *testing.T) {
	j := J2kOffset(1030) // Ls ≈ 87, northern summer
	m := LocalMidnights(j, 0)

	day := SunriseSunset(j, 0, 85, 0)
	assert.Equal(t, m.Previous, day.Sunrise)
	assert.Equal(t, m.Next, day.Sunset)
	assert.Equal(t, PolarDay, day.Polar(m))

	night := SunriseSunset(j, 0, -85, 0)
	assert.Equal(t, m.Noon(), night.Sunrise)
	assert.Equal(t, m.Noon(), night.Sunset)
	assert.Equal(t, PolarNight, night.Polar(m))
	assert.Equal(t, 0.0, night.DaylightDays())
}

func TestAngularRadiusMovesSunriseEarlier(t *testing.T) {
	j := J2kOffset(7180.059272963088)
	centre := SunriseSunset(j, curiosityWest, 0, 0)
	limb := SunriseSunset(j, curiosityWest, 0, 0.35)

	assert.Less(t, float64(limb.Sunrise), float64(centre.Sunrise))
	// the sunset search ignores the radius
	assert.Equal(t, centre.Sunset, limb.Sunset)
}

func TestSunriseSunsetEarthTime(t *testing.T) {
	tm := time.Date(2019, 8, 29, 13, 24, 12, 0, time.UTC)
	ev := SunriseSunset(J2kOffsetTT(tm), curiosityWest, 0, 0)

	rise := OffsetTime(ev.Sunrise)
	set := OffsetTime(ev.Sunset)

	assert.True(t, rise.Before(tm))
	assert.True(t, set.Before(tm))
	assert.True(t, rise.Before(set))
	assert.InDelta(t, 12.33, set.Sub(rise).Hours(), 0.01)
}

func TestPolarStateString(t *testing.T) {
	assert.Equal(t, "none", PolarNone.String())
	assert.Equal(t, "polar day", PolarDay.String())
	assert.Equal(t, "polar night", PolarNight.String())
	assert.Equal(t, "unknown", PolarState(7).String())
}
