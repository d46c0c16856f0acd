// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Event announcements via cron schedules, Prometheus exporter, Earth operator site
// 0.2.0 - Sunrise/sunset by bisection, polar day/night, site survey view, IERS leap-second files
// 0.1.0 - Initial release: MTC/LMST/LTST clock, TUI, headless summary and JSON export
