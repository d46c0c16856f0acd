// Package schedule turns Mars day events into cron schedules so jobs can run
// at local sunrise, sunset, noon or midnight at a Mars site.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/litescript/ls-marstime/internal/logging"
	"github.com/litescript/ls-marstime/internal/mars"
)

const (
	// maxSols bounds the search for the next event. A polar day or night
	// never lasts longer than a Mars year.
	maxSols = 700

	// minLead keeps Next from returning an event it was just called for.
	minLead = time.Second
)

// ErrUnknownEvent is returned by ParseEvents.
var ErrUnknownEvent = errors.New("unknown event")

// Event is a daily solar event.
type Event int

const (
	Sunrise Event = iota
	Noon
	Sunset
	Midnight
)

var eventNames = map[Event]string{
	Sunrise:  "sunrise",
	Noon:     "noon",
	Sunset:   "sunset",
	Midnight: "midnight",
}

func (e Event) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return "unknown"
}

// ParseEvents parses a comma separated list such as "sunrise,sunset".
// "all" selects every event.
func ParseEvents(s string) ([]Event, error) {
	var out []Event
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if part == "all" {
			return []Event{Sunrise, Noon, Sunset, Midnight}, nil
		}
		found := false
		for ev, name := range eventNames {
			if name == part {
				out = append(out, ev)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%q: %w", part, ErrUnknownEvent)
		}
	}
	return out, nil
}

// MarsSchedule fires at one event each sol for an observer.
//
// This implements robfig/cron.Schedule
type MarsSchedule struct {
	Event         Event
	Observer      mars.Observer
	Scale         mars.TimeScale
	AngularRadius float64
	Offset        time.Duration
}

// at returns the event instant within the sol around probe and whether the
// sol actually has one.
func (s MarsSchedule) at(probe mars.J2kOffset, lonW float64) (mars.J2kOffset, bool) {
	m := mars.LocalMidnights(probe, lonW)
	switch s.Event {
	case Midnight:
		return m.Previous, true
	case Noon:
		return m.Noon(), true
	}

	ev := mars.SunriseSunset(probe, lonW, s.Observer.LatNorthDeg, s.AngularRadius)
	if ev.Polar(m) != mars.PolarNone {
		return 0, false
	}
	if s.Event == Sunrise {
		return ev.Sunrise, true
	}
	return ev.Sunset, true
}

// Next returns the first event at least minLead after now, shifted by Offset. It
// returns the zero time when no event occurs within maxSols, which cron
// treats as never.
func (s MarsSchedule) Next(now time.Time) time.Time {
	lonW := s.Observer.LonWestDeg()
	probe := s.Scale.J2kOffset(now)

	for i := 0; i < maxSols; i++ {
		if j, ok := s.at(probe, lonW); ok {
			t := s.Scale.Time(j).Add(s.Offset)
			if t.Sub(now) >= minLead {
				return t.In(now.Location())
			}
		}
		probe = mars.LocalMidnights(probe, lonW).Noon() + mars.J2kOffset(mars.SolDays)
	}
	return time.Time{}
}

// Runner drives jobs on a cron scheduler.
type Runner struct {
	cron *cron.Cron
	log  *logging.Logger
}

// NewRunner creates a stopped runner logging through log.
func NewRunner(log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	l := log.Named("cron")
	return &Runner{
		cron: cron.New(
			cron.WithLogger(cron.PrintfLogger(l)),
			cron.WithChain(cron.Recover(cron.PrintfLogger(l))),
		),
		log: l,
	}
}

// Add registers job to run on sched. The job receives the time it fired.
func (r *Runner) Add(name string, sched cron.Schedule, job func(fired time.Time)) cron.EntryID {
	id := r.cron.Schedule(sched, cron.FuncJob(func() {
		job(time.Now())
	}))
	if next := sched.Next(time.Now()); !next.IsZero() {
		r.log.Info("%s: next at %s", name, next.Format(time.RFC3339))
	} else {
		r.log.Warn("%s: no upcoming occurrence", name)
	}
	return id
}

// Entries returns the registered entries.
func (r *Runner) Entries() []cron.Entry {
	return r.cron.Entries()
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (r *Runner) Run(ctx context.Context) {
	r.cron.Start()
	<-ctx.Done()
	<-r.cron.Stop().Done()
}
