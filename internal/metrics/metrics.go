// Package metrics exports the Mars clock as Prometheus gauges. Values are
// computed when scraped, so a live engine always reports the current sol.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-marstime/internal/logging"
	"github.com/litescript/ls-marstime/internal/mars"
)

const namespace = "marstime"

var (
	msdDesc  = prometheus.NewDesc(namespace+"_msd", "Mars Sol Date.", nil, nil)
	mtcDesc  = prometheus.NewDesc(namespace+"_mtc_hours", "Coordinated Mars Time in hours.", nil, nil)
	lsDesc   = prometheus.NewDesc(namespace+"_solar_longitude_degrees", "Areocentric solar longitude Ls.", nil, nil)
	leapDesc = prometheus.NewDesc(namespace+"_leap_seconds", "TAI minus UTC in seconds.", nil, nil)

	siteLabels    = []string{"site"}
	lmstDesc      = prometheus.NewDesc(namespace+"_lmst_hours", "Local mean solar time in hours.", siteLabels, nil)
	ltstDesc      = prometheus.NewDesc(namespace+"_ltst_hours", "Local true solar time in hours.", siteLabels, nil)
	elevationDesc = prometheus.NewDesc(namespace+"_solar_elevation_degrees", "Solar elevation above the horizon.", siteLabels, nil)
	daylightDesc  = prometheus.NewDesc(namespace+"_daylight", "1 when the sun is above the horizon.", siteLabels, nil)
)

// Collector samples an engine for each site on every scrape.
type Collector struct {
	engine *mars.Engine
	sites  []mars.Observer
}

// NewCollector creates a collector. With no sites the engine's own observer
// is reported.
func NewCollector(engine *mars.Engine, sites ...mars.Observer) *Collector {
	if len(sites) == 0 {
		sites = []mars.Observer{engine.Observer()}
	}
	return &Collector{engine: engine, sites: sites}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{msdDesc, mtcDesc, lsDesc, leapDesc, lmstDesc, ltstDesc, elevationDesc, daylightDesc} {
		ch <- d
	}
}

// Collect implements prometheus.Collector. The time source is read once so
// every series in a scrape refers to the same instant.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	e := c.engine.At(c.engine.Now())

	ch <- prometheus.MustNewConstMetric(msdDesc, prometheus.GaugeValue, e.MarsSolDate())
	ch <- prometheus.MustNewConstMetric(mtcDesc, prometheus.GaugeValue, e.CoordinatedMarsTime())
	ch <- prometheus.MustNewConstMetric(lsDesc, prometheus.GaugeValue, e.AreocentricSolarLongitude())
	ch <- prometheus.MustNewConstMetric(leapDesc, prometheus.GaugeValue, float64(e.LeapSeconds()))

	for _, obs := range c.sites {
		s := e.For(obs)
		name := siteName(obs)
		elev := s.SolarElevation()

		daylight := 0.0
		if elev > 0 {
			daylight = 1
		}

		ch <- prometheus.MustNewConstMetric(lmstDesc, prometheus.GaugeValue, s.LocalMeanSolarTime(), name)
		ch <- prometheus.MustNewConstMetric(ltstDesc, prometheus.GaugeValue, s.LocalTrueSolarTime(), name)
		ch <- prometheus.MustNewConstMetric(elevationDesc, prometheus.GaugeValue, elev, name)
		ch <- prometheus.MustNewConstMetric(daylightDesc, prometheus.GaugeValue, daylight, name)
	}
}

func siteName(obs mars.Observer) string {
	if obs.Name != "" {
		return obs.Name
	}
	return strconv.FormatFloat(obs.LonEastDeg, 'f', -1, 64) + "E," +
		strconv.FormatFloat(obs.LatNorthDeg, 'f', -1, 64) + "N"
}

// Exporter owns a registry with the clock collector and request metrics.
type Exporter struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	log      *logging.Logger
}

// NewExporter registers c on a fresh registry.
func NewExporter(c *Collector, log *logging.Logger) *Exporter {
	if log == nil {
		log = logging.Discard()
	}
	x := &Exporter{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: namespace + "_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"path", "method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    namespace + "_http_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		log: log.Named("metrics"),
	}
	x.registry.MustRegister(c, x.requests, x.duration)
	return x
}

// Registry returns the exporter's registry.
func (x *Exporter) Registry() *prometheus.Registry {
	return x.registry
}

// Handler serves /metrics.
func (x *Exporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(x.registry, promhttp.HandlerOpts{}))
	return x.middleware(mux)
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (x *Exporter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		x.requests.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		x.duration.WithLabelValues(r.URL.Path, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Serve listens on addr until ctx is done.
func (x *Exporter) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           x.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		x.log.Info("serving metrics on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
