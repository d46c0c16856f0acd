package mars

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/litescript/ls-marstime/internal/leapsec"
)

const (
	// UnixEpochJD is the Julian Date of 1970-01-01T00:00:00Z.
	UnixEpochJD = 2440587.5
	// J2000EpochJD is the Julian Date (TT) of the J2000.0 epoch.
	J2000EpochJD = 2451545.0
	// TTMinusTAI is the fixed offset of Terrestrial Time from TAI in seconds.
	TTMinusTAI = 32.184

	secondsPerDay = 86400.0
)

// ErrInvalidInstant is returned for timestamps that cannot be parsed.
var ErrInvalidInstant = errors.New("invalid instant")

// J2kOffset is a number of days since JD 2451545.0 (TT).
type J2kOffset float64

// Days returns the offset as a plain float.
func (j J2kOffset) Days() float64 {
	return float64(j)
}

// TimeScale converts civil timestamps to Terrestrial Time using a leap-second table.
type TimeScale struct {
	leaps leapsec.Table
}

// NewTimeScale returns a TimeScale backed by tb.
func NewTimeScale(tb leapsec.Table) TimeScale {
	return TimeScale{leaps: tb}
}

var defaultScale = NewTimeScale(leapsec.Default())

// JulianDateUTC returns the Julian Date of t on the UTC scale.
func (s TimeScale) JulianDateUTC(t time.Time) float64 {
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return sec/secondsPerDay + UnixEpochJD
}

// LeapSeconds returns TAI−UTC in seconds at t.
func (s TimeScale) LeapSeconds(t time.Time) int {
	return s.leaps.Lookup(t)
}

// JulianDateTT returns the Julian Date of t on the TT scale.
func (s TimeScale) JulianDateTT(t time.Time) float64 {
	return s.JulianDateUTC(t) + (float64(s.LeapSeconds(t))+TTMinusTAI)/secondsPerDay
}

// J2kOffset returns the TT offset of t from the J2000 epoch.
func (s TimeScale) J2kOffset(t time.Time) J2kOffset {
	return J2kOffset(s.JulianDateTT(t) - J2000EpochJD)
}

// Time converts an offset back to a UTC time.Time. Inside a leap second the
// result is ambiguous by up to one second.
func (s TimeScale) Time(j J2kOffset) time.Time {
	jdTT := float64(j) + J2000EpochJD
	guess := julian.JDToTime(jdTT - TTMinusTAI/secondsPerDay)
	leaps := s.LeapSeconds(guess)
	jdUTC := jdTT - (float64(leaps)+TTMinusTAI)/secondsPerDay
	return julian.JDToTime(jdUTC).UTC()
}

// JulianDateUTC returns the UTC Julian Date of t.
func JulianDateUTC(t time.Time) float64 {
	return defaultScale.JulianDateUTC(t)
}

// LeapSeconds returns TAI−UTC at t from the built-in table.
func LeapSeconds(t time.Time) int {
	return defaultScale.LeapSeconds(t)
}

// JulianDateTT returns the TT Julian Date of t using the built-in table.
func JulianDateTT(t time.Time) float64 {
	return defaultScale.JulianDateTT(t)
}

// J2kOffsetTT returns the J2000 TT offset of t using the built-in table.
func J2kOffsetTT(t time.Time) J2kOffset {
	return defaultScale.J2kOffset(t)
}

// OffsetTime converts an offset to UTC using the built-in table.
func OffsetTime(j J2kOffset) time.Time {
	return defaultScale.Time(j)
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// ParseInstant parses an Earth timestamp. Layouts without a zone are taken as UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidInstant)
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
}
