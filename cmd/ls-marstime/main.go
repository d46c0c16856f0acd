// Command ls-marstime shows Mars Coordinated Time, local solar time and
// sunrise/sunset for Mars sites, as a terminal UI or headless output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-marstime/internal/config"
	"github.com/litescript/ls-marstime/internal/earth"
	"github.com/litescript/ls-marstime/internal/leapsec"
	"github.com/litescript/ls-marstime/internal/logging"
	"github.com/litescript/ls-marstime/internal/mars"
	"github.com/litescript/ls-marstime/internal/metrics"
	"github.com/litescript/ls-marstime/internal/report"
	"github.com/litescript/ls-marstime/internal/schedule"
	"github.com/litescript/ls-marstime/internal/ui"
	"github.com/litescript/ls-marstime/internal/version"
)

const (
	defaultRefresh = 1 * time.Second
	minRefresh     = 100 * time.Millisecond
	maxRefresh     = 1 * time.Minute
)

var errLatitude = errors.New("latitude must be within ±90°")

// options holds the parsed command line.
type options struct {
	timeStr     string
	site        string
	configPath  string
	leapFile    string
	jsonPath    string
	events      string
	metricsAddr string
	logLevel    string
	logFile     string

	lon, lat, radius          float64
	lonSet, latSet, radiusSet bool

	summary     bool
	now         bool
	beep        bool
	showVersion bool

	watch   time.Duration
	refresh time.Duration
}

func (o options) headless() bool {
	return o.summary || o.now || o.jsonPath != "" || o.events != "" || o.metricsAddr != ""
}

func (o options) hasOutput() bool {
	return o.summary || o.now || o.jsonPath != ""
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("ls-marstime", flag.ContinueOnError)

	fs.StringVar(&o.timeStr, "time", "", "Earth UTC instant to show (RFC 3339 or 2006-01-02 15:04:05); default follows the clock")
	fs.StringVar(&o.site, "site", "", "Named Mars site from the config (e.g. curiosity)")
	fs.Float64Var(&o.lon, "lon", 0, "Observer longitude, degrees east (overrides --site)")
	fs.Float64Var(&o.lat, "lat", 0, "Observer latitude, degrees north (overrides --site)")
	fs.Float64Var(&o.radius, "radius", 0, "Solar angular radius added to the sunrise search, degrees")
	fs.StringVar(&o.configPath, "config", "", "YAML config file (default $"+config.EnvPath+")")
	fs.StringVar(&o.leapFile, "leap-file", "", "IERS leap-seconds.list to replace the built-in table")
	fs.BoolVar(&o.summary, "summary", false, "Print text summary instead of TUI")
	fs.StringVar(&o.jsonPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	fs.BoolVar(&o.now, "now", false, "Single-line clock")
	fs.DurationVar(&o.watch, "watch", 0, "Repeat output at interval (e.g., 30s)")
	fs.StringVar(&o.events, "events", "", "Announce Mars events as they happen (sunrise,noon,sunset,midnight or all)")
	fs.BoolVar(&o.beep, "beep", false, "Beep on announced events (TTY only)")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9480)")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.logFile, "log-file", "", "Write logs to a rotating file")
	fs.DurationVar(&o.refresh, "refresh", defaultRefresh, "TUI refresh interval")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lon":
			o.lonSet = true
		case "lat":
			o.latSet = true
		case "radius":
			o.radiusSet = true
		}
	})

	if o.refresh < minRefresh {
		o.refresh = minRefresh
	} else if o.refresh > maxRefresh {
		o.refresh = maxRefresh
	}
	if o.latSet && (o.lat < -90 || o.lat > 90) {
		return options{}, errLatitude
	}
	return o, nil
}

// app is the resolved configuration shared by the TUI and headless modes.
type app struct {
	engine *mars.Engine
	sites  []mars.Observer
	site   int
	radius float64
	earth  *earth.Site
	log    *logging.Logger
}

func (a *app) observer() mars.Observer {
	return a.sites[a.site]
}

func setup(o options, log *logging.Logger) (*app, error) {
	cfg, err := config.Load(config.Path(o.configPath))
	if err != nil {
		return nil, err
	}

	var engineOpts []mars.Option

	leapPath := o.leapFile
	if leapPath == "" {
		leapPath = cfg.LeapSeconds
	}
	if leapPath != "" {
		tb, err := leapsec.Load(leapPath)
		if err != nil {
			return nil, err
		}
		latest, _ := tb.Latest()
		log.Info("Loaded %d leap seconds from %s (TAI−UTC %d s since %s)",
			tb.Len(), leapPath, latest.Offset, latest.Effective.Format("2006-01-02"))
		engineOpts = append(engineOpts, mars.WithLeapSeconds(tb))
	}

	if o.timeStr != "" {
		t, err := mars.ParseInstant(o.timeStr)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, mars.WithTime(t))
	} else {
		engineOpts = append(engineOpts, mars.WithLiveTime())
	}

	a := &app{radius: cfg.AngularRadius, log: log}
	if o.radiusSet {
		a.radius = o.radius
	}

	selected, err := cfg.Observer(o.site)
	if err != nil {
		return nil, err
	}
	for _, name := range cfg.SiteNames() {
		obs, _ := cfg.Observer(name)
		if obs == selected {
			a.site = len(a.sites)
		}
		a.sites = append(a.sites, obs)
	}

	if o.lonSet || o.latSet {
		custom := selected
		custom.Name = "custom"
		if o.lonSet {
			custom.LonEastDeg = o.lon
		}
		if o.latSet {
			custom.LatNorthDeg = o.lat
		}
		a.site = len(a.sites)
		a.sites = append(a.sites, custom)
	}

	if cfg.Earth != nil {
		a.earth = &earth.Site{Name: cfg.Earth.Name, Lat: cfg.Earth.Lat, Lon: cfg.Earth.Lon}
	}

	engineOpts = append(engineOpts, mars.WithObserver(a.observer()))
	a.engine = mars.New(engineOpts...)
	log.Debug("Observer %s at %.4f°E %.4f°N", a.observer().Name, a.observer().LonEastDeg, a.observer().LatNorthDeg)
	return a, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if o.showVersion {
		fmt.Printf("ls-marstime %s\n", version.Version)
		return
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(o.logLevel))
	if o.logFile != "" {
		w := logging.Rotating(o.logFile, 10)
		defer w.Close()
		logger.SetOutput(w)
	} else if !o.headless() {
		// stderr would corrupt the TUI
		logger.SetOutput(io.Discard)
	}

	a, err := setup(o, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if o.headless() {
		isTTY := term.IsTerminal(int(os.Stdout.Fd()))
		if err := runHeadless(ctx, a, o, os.Stdout, isTTY); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	model := ui.New(ui.Options{
		Engine:        a.engine,
		Sites:         a.sites,
		Site:          a.site,
		AngularRadius: a.radius,
		Earth:         a.earth,
		Refresh:       o.refresh,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, a *app, o options, stdout io.Writer, isTTY bool) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	background := false

	if o.metricsAddr != "" {
		exporter := metrics.NewExporter(metrics.NewCollector(a.engine, a.sites...), a.log)
		background = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := exporter.Serve(ctx, o.metricsAddr); err != nil {
				a.log.Error("Metrics server: %v", err)
				cancel()
			}
		}()
	}

	if o.events != "" {
		runner, err := newEventRunner(a, o, stdout, isTTY)
		if err != nil {
			return err
		}
		background = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			runner.Run(ctx)
		}()
	}

	if !o.hasOutput() {
		<-ctx.Done()
		return nil
	}

	outputOnce := func() error {
		snap := a.engine.Snapshot(a.radius)
		var day *earth.Day
		if a.earth != nil {
			d := earth.DayOf(*a.earth, snap.Earth)
			day = &d
		}

		if o.now {
			return report.WriteNow(stdout, snap)
		}

		if o.jsonPath != "" {
			if err := writeJSON(o.jsonPath, stdout, report.Export(snap, day)); err != nil {
				return err
			}
		}

		if o.summary {
			report.WriteSummary(stdout, snap, day)
		}
		return nil
	}

	// Single run
	if o.watch == 0 {
		err := outputOnce()
		if err != nil || !background {
			cancel()
			return err
		}
		<-ctx.Done()
		return nil
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		a.log.Error("%v", err)
	}

	ticker := time.NewTicker(o.watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !o.now {
				fmt.Fprintln(stdout) // Blank line between outputs (except now mode)
			}
			if err := outputOnce(); err != nil {
				a.log.Error("%v", err)
			}
		}
	}
}

func writeJSON(path string, stdout io.Writer, export *report.SnapshotExport) error {
	if path == "-" {
		if err := export.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

// newEventRunner schedules one job per requested event at the selected site.
func newEventRunner(a *app, o options, stdout io.Writer, isTTY bool) (*schedule.Runner, error) {
	events, err := schedule.ParseEvents(o.events)
	if err != nil {
		return nil, err
	}
	if _, fixed := a.engine.TimeSource().(mars.FixedTimeSource); fixed {
		a.log.Warn("--events follows the host clock; --time is ignored for announcements")
	}

	obs := a.observer()
	runner := schedule.NewRunner(a.log)
	var mu sync.Mutex

	for _, ev := range events {
		sched := schedule.MarsSchedule{
			Event:         ev,
			Observer:      obs,
			Scale:         a.engine.TimeScale(),
			AngularRadius: a.radius,
		}
		runner.Add(ev.String(), sched, func(fired time.Time) {
			snap := a.engine.At(fired).Snapshot(a.radius)

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(stdout, "%s  %-8s Sol %d  LTST %s  %s\n",
				fired.UTC().Format(time.RFC3339), ev, report.Sol(snap.MSD), mars.FormatHours(snap.LTST), obs.Name)
			if o.beep && isTTY {
				fmt.Fprint(stdout, "\a")
			}
		})
	}
	return runner, nil
}
