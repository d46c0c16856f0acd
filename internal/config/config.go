// Package config loads named Mars sites and display defaults from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-marstime/internal/mars"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "MARSTIME_CONFIG"

var (
	ErrUnknownSite      = errors.New("unknown site")
	ErrInvalidLatitude  = errors.New("latitude out of range")
	ErrInvalidLongitude = errors.New("longitude out of range")
	ErrInvalidRadius    = errors.New("angular radius out of range")
)

// Config is the on-disk configuration.
type Config struct {
	// Site is the default observer, a key of Sites.
	Site string `yaml:"site"`
	// AngularRadius is added to solar elevation when searching for sunrise.
	AngularRadius float64 `yaml:"angular_radius"`
	// LeapSeconds optionally points at a leap-seconds.list file.
	LeapSeconds string                   `yaml:"leap_seconds,omitempty"`
	Sites       map[string]mars.Observer `yaml:"sites"`
	Earth       *EarthSite               `yaml:"earth,omitempty"`
}

// EarthSite is an operator location on Earth shown alongside the Mars clock.
type EarthSite struct {
	Name string  `yaml:"name,omitempty"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// DefaultConfig returns the built-in landing sites with Curiosity selected.
func DefaultConfig() Config {
	return Config{
		Site: "curiosity",
		Sites: map[string]mars.Observer{
			"viking1":      {Name: "Viking 1", LonEastDeg: 312.05, LatNorthDeg: 22.27},
			"viking2":      {Name: "Viking 2", LonEastDeg: 134.29, LatNorthDeg: 47.64},
			"pathfinder":   {Name: "Mars Pathfinder", LonEastDeg: 326.78, LatNorthDeg: 19.13},
			"spirit":       {Name: "Spirit", LonEastDeg: 175.4785, LatNorthDeg: -14.5718},
			"opportunity":  {Name: "Opportunity", LonEastDeg: 354.4734, LatNorthDeg: -1.9462},
			"phoenix":      {Name: "Phoenix", LonEastDeg: 234.25, LatNorthDeg: 68.22},
			"curiosity":    {Name: "Curiosity", LonEastDeg: 137.4417, LatNorthDeg: -4.5895},
			"insight":      {Name: "InSight", LonEastDeg: 135.6234, LatNorthDeg: 4.5024},
			"perseverance": {Name: "Perseverance", LonEastDeg: 77.4508, LatNorthDeg: 18.4447},
			"zhurong":      {Name: "Zhurong", LonEastDeg: 109.925, LatNorthDeg: 25.066},
		},
	}
}

// Path resolves the config path: explicit first, then $MARSTIME_CONFIG.
// An empty result means "use defaults".
func Path(explicit string) string {
	return envStr(EnvPath, explicit)
}

func envStr(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return os.Getenv(key)
}

// Load reads path and merges it over DefaultConfig. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over DefaultConfig and validates the result.
// Sites in the file are added to the built-in ones, replacing same-named entries.
func Parse(r io.Reader) (Config, error) {
	var file Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := DefaultConfig()
	if file.Site != "" {
		cfg.Site = strings.ToLower(file.Site)
	}
	if file.AngularRadius != 0 {
		cfg.AngularRadius = file.AngularRadius
	}
	if file.LeapSeconds != "" {
		cfg.LeapSeconds = file.LeapSeconds
	}
	for name, obs := range file.Sites {
		cfg.Sites[strings.ToLower(name)] = obs
	}
	if file.Earth != nil {
		e := *file.Earth
		cfg.Earth = &e
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks coordinates and that the default site exists.
func (c Config) Validate() error {
	for name, obs := range c.Sites {
		if err := validateObserver(obs); err != nil {
			return fmt.Errorf("site %q: %w", name, err)
		}
	}
	if _, ok := c.Sites[c.Site]; !ok {
		return fmt.Errorf("default site %q: %w", c.Site, ErrUnknownSite)
	}
	if c.AngularRadius < 0 || c.AngularRadius > 5 || math.IsNaN(c.AngularRadius) {
		return fmt.Errorf("%v: %w", c.AngularRadius, ErrInvalidRadius)
	}
	if e := c.Earth; e != nil {
		if math.Abs(e.Lat) > 90 || math.IsNaN(e.Lat) {
			return fmt.Errorf("earth site: %w", ErrInvalidLatitude)
		}
		if math.Abs(e.Lon) > 180 || math.IsNaN(e.Lon) {
			return fmt.Errorf("earth site: %w", ErrInvalidLongitude)
		}
	}
	return nil
}

func validateObserver(obs mars.Observer) error {
	if math.Abs(obs.LatNorthDeg) > 90 || math.IsNaN(obs.LatNorthDeg) {
		return ErrInvalidLatitude
	}
	if math.IsNaN(obs.LonEastDeg) || math.IsInf(obs.LonEastDeg, 0) {
		return ErrInvalidLongitude
	}
	return nil
}

// Observer returns the named site; an empty name selects the default site.
// Sites without a display name take their key.
func (c Config) Observer(name string) (mars.Observer, error) {
	if name == "" {
		name = c.Site
	}
	key := strings.ToLower(name)
	obs, ok := c.Sites[key]
	if !ok {
		return mars.Observer{}, fmt.Errorf("%q: %w", name, ErrUnknownSite)
	}
	if obs.Name == "" {
		obs.Name = key
	}
	return obs, nil
}

// SiteNames returns the site keys in alphabetical order.
func (c Config) SiteNames() []string {
	names := make([]string, 0, len(c.Sites))
	for name := range c.Sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
