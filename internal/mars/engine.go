package mars

import (
	"time"

	"github.com/litescript/ls-marstime/internal/leapsec"
)

// Engine binds a time source, an observer and a leap-second table so that
// every quantity can be read without passing them explicitly. An Engine is
// immutable; At and For return modified copies.
type Engine struct {
	source   TimeSource
	observer Observer
	scale    TimeScale
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeSource sets the source of the current Earth instant.
func WithTimeSource(src TimeSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.source = src
		}
	}
}

// WithTime pins the engine to t.
func WithTime(t time.Time) Option {
	return WithTimeSource(FixedTimeSource{T: t})
}

// WithLiveTime makes the engine follow the host clock.
func WithLiveTime() Option {
	return WithTimeSource(LiveTimeSource{})
}

// WithObserver sets the default observer.
func WithObserver(obs Observer) Option {
	return func(e *Engine) {
		e.observer = obs
	}
}

// WithLeapSeconds replaces the built-in leap-second table.
func WithLeapSeconds(tb leapsec.Table) Option {
	return func(e *Engine) {
		if tb.Len() > 0 {
			e.scale = NewTimeScale(tb)
		}
	}
}

// New creates an engine. Without options it follows the host clock, observes
// from 0°E 0°N and uses the built-in leap-second table.
func New(opts ...Option) *Engine {
	e := &Engine{
		source: LiveTimeSource{},
		scale:  defaultScale,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// At returns a copy of the engine pinned to t.
func (e *Engine) At(t time.Time) *Engine {
	cp := *e
	cp.source = FixedTimeSource{T: t}
	return &cp
}

// For returns a copy of the engine with a different observer.
func (e *Engine) For(obs Observer) *Engine {
	cp := *e
	cp.observer = obs
	return &cp
}

// Now returns the current Earth instant from the time source.
func (e *Engine) Now() time.Time {
	return e.source.Now()
}

// TimeSource returns the engine's time source.
func (e *Engine) TimeSource() TimeSource {
	return e.source
}

// TimeScale returns the engine's time scale.
func (e *Engine) TimeScale() TimeScale {
	return e.scale
}

// Observer returns the bound observer.
func (e *Engine) Observer() Observer {
	return e.observer
}

// LongitudeEast returns the bound observer's east longitude.
func (e *Engine) LongitudeEast() float64 {
	return e.observer.LonEastDeg
}

// LongitudeWest returns the bound observer's west longitude in [0, 360).
func (e *Engine) LongitudeWest() float64 {
	return e.observer.LonWestDeg()
}

// LatitudeNorth returns the bound observer's latitude.
func (e *Engine) LatitudeNorth() float64 {
	return e.observer.LatNorthDeg
}

// J2kOffset returns the offset of the engine's current instant. With a live
// source each call samples the clock again.
func (e *Engine) J2kOffset() J2kOffset {
	return e.scale.J2kOffset(e.Now())
}

// Time converts an offset to a UTC time using the engine's leap-second table.
func (e *Engine) Time(j J2kOffset) time.Time {
	return e.scale.Time(j)
}

// JulianDateUTC returns the UTC Julian Date of the current instant.
func (e *Engine) JulianDateUTC() float64 { return e.scale.JulianDateUTC(e.Now()) }

// JulianDateTT returns the TT Julian Date of the current instant.
func (e *Engine) JulianDateTT() float64 { return e.scale.JulianDateTT(e.Now()) }

// LeapSeconds returns TAI−UTC at the current instant.
func (e *Engine) LeapSeconds() int { return e.scale.LeapSeconds(e.Now()) }

// Ephemeris and clock quantities at the engine's current instant.
func (e *Engine) Eccentricity() float64 { return Eccentricity(e.J2kOffset()) }
func (e *Engine) MeanAnomaly() float64 { return MeanAnomaly(e.J2kOffset()) }
func (e *Engine) AlphaPerturbs() float64 { return AlphaPerturbs(e.J2kOffset()) }
func (e *Engine) AngleOfFictitiousMeanSun() float64 { return AngleOfFictitiousMeanSun(e.J2kOffset()) }
func (e *Engine) EquationOfCenter() float64 { return EquationOfCenter(e.J2kOffset()) }
func (e *Engine) AreocentricSolarLongitude() float64 { return AreocentricSolarLongitude(e.J2kOffset()) }
func (e *Engine) TrueAnomaly() float64 { return TrueAnomaly(e.J2kOffset()) }
func (e *Engine) MarsSolDate() float64 { return MarsSolDate(e.J2kOffset()) }
func (e *Engine) CoordinatedMarsTime() float64 { return CoordinatedMarsTime(e.J2kOffset()) }
func (e *Engine) EquationOfTime() float64 { return EquationOfTime(e.J2kOffset()) }
func (e *Engine) SubsolarLongitude() float64 { return SubsolarLongitude(e.J2kOffset()) }
func (e *Engine) Season() Season { return SeasonAt(e.J2kOffset()) }

// HourAngle returns the hour angle for the bound observer, in radians.
func (e *Engine) HourAngle() float64 {
	return HourAngle(e.J2kOffset(), e.LongitudeWest())
}

// LocalMeanSolarTime returns LMST for the bound observer.
func (e *Engine) LocalMeanSolarTime() float64 {
	return LocalMeanSolarTime(e.J2kOffset(), e.LongitudeWest())
}

// LocalTrueSolarTime returns LTST for the bound observer.
func (e *Engine) LocalTrueSolarTime() float64 {
	return LocalTrueSolarTime(e.J2kOffset(), e.LongitudeWest())
}

// SolarDeclination returns the declination at the current Ls.
func (e *Engine) SolarDeclination() float64 {
	return SolarDeclination(e.AreocentricSolarLongitude())
}

// SolarZenith returns the zenith angle for the bound observer.
func (e *Engine) SolarZenith() float64 {
	return SolarZenith(e.J2kOffset(), e.LongitudeWest(), e.LatitudeNorth())
}

// SolarElevation returns the elevation for the bound observer.
func (e *Engine) SolarElevation() float64 {
	return SolarElevation(e.J2kOffset(), e.LongitudeWest(), e.LatitudeNorth())
}

// Midnights returns the local midnights around the current instant.
func (e *Engine) Midnights() Midnights {
	return LocalMidnights(e.J2kOffset(), e.LongitudeWest())
}

// SunriseSunset returns the day events around the current instant.
func (e *Engine) SunriseSunset(angularRadius float64) DayEvents {
	return SunriseSunset(e.J2kOffset(), e.LongitudeWest(), e.LatitudeNorth(), angularRadius)
}
