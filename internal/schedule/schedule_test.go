package schedule

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/litescript/ls-marstime/internal/leapsec"
	"github.com/litescript/ls-marstime/internal/logging"
	"github.com/litescript/ls-marstime/internal/mars"
)

var (
	gale  = mars.Observer{Name: "Gale", LonEastDeg: 137.44, LatNorthDeg: -4.59}
	start = time.Date(2019, 8, 29, 13, 24, 12, 0, time.UTC)
	scale = mars.NewTimeScale(leapsec.Default())
)

func TestParseEvents(t *testing.T) {
	tests := []struct {
		in      string
		want    []Event
		wantErr bool
	}{
		{"sunrise", []Event{Sunrise}, false},
		{"Sunrise, sunset", []Event{Sunrise, Sunset}, false},
		{"all", []Event{Sunrise, Noon, Sunset, Midnight}, false},
		{"", nil, false},
		{"dusk", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseEvents(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEvents(%q) error = %v", tt.in, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownEvent) {
			t.Errorf("ParseEvents(%q) error = %v, want ErrUnknownEvent", tt.in, err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseEvents(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseEvents(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestEventString(t *testing.T) {
	if Sunset.String() != "sunset" || Event(9).String() != "unknown" {
		t.Errorf("unexpected names %q %q", Sunset, Event(9))
	}
}

func TestNextIsAfterNow(t *testing.T) {
	for _, ev := range []Event{Sunrise, Noon, Sunset, Midnight} {
		s := MarsSchedule{Event: ev, Observer: gale, Scale: scale}

		next := s.Next(start)
		if !next.After(start) {
			t.Errorf("%v: Next(%v) = %v", ev, start, next)
		}
		if next.Sub(start) > 26*time.Hour {
			t.Errorf("%v: next occurrence %v more than a sol away", ev, next)
		}
	}
}

func TestNextSunriseSpacing(t *testing.T) {
	s := MarsSchedule{Event: Sunrise, Observer: gale, Scale: scale}

	a := s.Next(start)
	b := s.Next(a)
	c := s.Next(b)

	sol := time.Duration(mars.SolSeconds * float64(time.Second))
	for _, gap := range []time.Duration{b.Sub(a), c.Sub(b)} {
		if d := gap - sol; d < -5*time.Minute || d > 5*time.Minute {
			t.Errorf("sunrise spacing %v, want about %v", gap, sol)
		}
	}
}

func TestNextSunriseIsSunrise(t *testing.T) {
	s := MarsSchedule{Event: Sunrise, Observer: gale, Scale: scale}
	next := s.Next(start)

	j := scale.J2kOffset(next)
	elev := mars.SolarElevation(j, gale.LonWestDeg(), gale.LatNorthDeg)
	if math.Abs(elev) > 0.01 {
		t.Errorf("elevation at scheduled sunrise = %v", elev)
	}
	if ltst := mars.LocalTrueSolarTime(j, gale.LonWestDeg()); ltst < 5 || ltst > 7 {
		t.Errorf("LTST at sunrise = %v", ltst)
	}
}

func TestNextOffset(t *testing.T) {
	base := MarsSchedule{Event: Sunset, Observer: gale, Scale: scale}
	shifted := base
	shifted.Offset = -30 * time.Minute

	want := base.Next(start).Add(-30 * time.Minute)
	if got := shifted.Next(start); !got.Equal(want) {
		t.Errorf("Next with offset = %v, want %v", got, want)
	}
}

func TestNextSkipsPolarDay(t *testing.T) {
	// Northern early summer; at 85°N the sun stays up for months.
	from := scale.Time(1030)
	s := MarsSchedule{
		Event:    Sunset,
		Observer: mars.Observer{LonEastDeg: 0, LatNorthDeg: 85},
		Scale:    scale,
	}

	next := s.Next(from)
	if next.IsZero() {
		t.Fatal("expected a sunset once polar day ends")
	}
	if next.Sub(from) < 60*24*time.Hour {
		t.Errorf("sunset %v too soon after %v for a polar day", next, from)
	}
}

type stepSchedule time.Duration

func (s stepSchedule) Next(t time.Time) time.Time {
	return t.Add(time.Duration(s))
}

func TestRunner(t *testing.T) {
	r := NewRunner(logging.Discard())

	var fired atomic.Int32
	r.Add("tick", stepSchedule(20*time.Millisecond), func(time.Time) {
		fired.Add(1)
	})
	if len(r.Entries()) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(r.Entries()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	r.Run(ctx)

	if fired.Load() == 0 {
		t.Error("job never ran")
	}
}
