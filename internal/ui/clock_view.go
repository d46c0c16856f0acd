package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-marstime/internal/earth"
	"github.com/litescript/ls-marstime/internal/mars"
	"github.com/litescript/ls-marstime/internal/report"
)

// Styles shared by the views.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("209"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("223")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("130"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	bigClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("216"))

	dayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	nightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("61"))
)

// ClockModel shows the Mars clock, solar geometry and the sol's day events.
type ClockModel struct {
	width    int
	height   int
	snapshot mars.Snapshot
	day      *earth.Day
}

// NewClockModel creates a new clock view.
func NewClockModel() ClockModel {
	return ClockModel{}
}

// SetSize updates the viewport size.
func (m ClockModel) SetSize(width, height int) ClockModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the view with a new snapshot. day may be nil.
func (m ClockModel) UpdateData(s mars.Snapshot, day *earth.Day) ClockModel {
	m.snapshot = s
	m.day = day
	return m
}

// View renders the clock view.
func (m ClockModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderClock())
	b.WriteString("\n")
	b.WriteString(m.renderSun())
	if m.day != nil {
		b.WriteString("\n")
		b.WriteString(m.renderEarth())
	}
	return b.String()
}

func (m ClockModel) renderClock() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(titleStyle.Render(siteTitle(s.Observer)))
	b.WriteString("\n")
	b.WriteString("  " + labelStyle.Render("LTST ") + bigClockStyle.Render(mars.FormatHours(s.LTST)))
	b.WriteString("   " + labelStyle.Render("LMST ") + rowStyle.Render(mars.FormatHours(s.LMST)))
	b.WriteString("   " + labelStyle.Render("MTC ") + rowStyle.Render(mars.FormatHours(s.MTC)))
	b.WriteString("\n")

	b.WriteString(field("Sol", fmt.Sprintf("%d", report.Sol(s.MSD))))
	b.WriteString(field("MSD", fmt.Sprintf("%.5f", s.MSD)))
	b.WriteString(field("Ls", fmt.Sprintf("%.2f° (%s)", s.Ls, s.Season)))
	b.WriteString("\n")
	b.WriteString(field("Earth", s.Earth.UTC().Format("2006-01-02 15:04:05 UTC")))
	b.WriteString(field("TAI−UTC", fmt.Sprintf("%ds", s.LeapSeconds)))
	b.WriteString("\n")
	return b.String()
}

func (m ClockModel) renderSun() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sun"))
	b.WriteString("\n")
	b.WriteString(field("Elevation", fmt.Sprintf("%6.2f°", s.SolarElevation)))
	b.WriteString(field("Declination", fmt.Sprintf("%6.2f°", s.SolarDeclination)))
	b.WriteString(field("EOT", fmt.Sprintf("%6.2f°", s.EquationOfTime)))
	b.WriteString("\n")

	switch s.Polar {
	case mars.PolarDay:
		b.WriteString("  " + dayStyle.Render("Polar day: the sun stays up all sol") + "\n")
	case mars.PolarNight:
		b.WriteString("  " + nightStyle.Render("Polar night: the sun stays down all sol") + "\n")
	default:
		b.WriteString(field("Sunrise", localTime(s, s.Events.Sunrise)+" LTST  "+s.Times.Sunrise.UTC().Format("15:04 UTC")))
		b.WriteString("\n")
		b.WriteString(field("Sunset", localTime(s, s.Events.Sunset)+" LTST  "+s.Times.Sunset.UTC().Format("15:04 UTC")))
		b.WriteString("\n")
	}
	b.WriteString(field("Daylight", report.FormatDays(s.Events.DaylightDays())))
	b.WriteString("\n")

	width := m.width - 6
	if width > 72 {
		width = 72
	}
	b.WriteString("  " + m.renderDaylightBar(width) + "\n")
	return b.String()
}

func (m ClockModel) renderEarth() string {
	d := m.day
	var b strings.Builder

	name := d.Site.Name
	if name == "" {
		name = fmt.Sprintf("%.2f, %.2f", d.Site.Lat, d.Site.Lon)
	}
	b.WriteString(titleStyle.Render("Earth · " + name))
	b.WriteString("\n")
	b.WriteString(field("Sun", fmt.Sprintf("el %6.2f°  az %6.2f°", d.Sun.ElDeg, d.Sun.AzDeg)))
	b.WriteString("\n")
	if d.NoCrossing() {
		b.WriteString("  " + labelStyle.Render("no sunrise or sunset today") + "\n")
		return b.String()
	}
	b.WriteString(field("Sunrise", d.Sunrise.UTC().Format("15:04 UTC")))
	b.WriteString(field("Sunset", d.Sunset.UTC().Format("15:04 UTC")))
	b.WriteString(field("Daylight", d.Daylight().Round(time.Minute).String()))
	b.WriteString("\n")
	return b.String()
}

// renderDaylightBar draws the sol from midnight to midnight: day cells,
// night cells and a marker at the current instant.
func (m ClockModel) renderDaylightBar(width int) string {
	if width < 4 {
		width = 4
	}
	s := m.snapshot
	span := float64(s.Midnights.Next - s.Midnights.Previous)
	if span <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	pos := func(j mars.J2kOffset) int {
		i := int(float64(j-s.Midnights.Previous) / span * float64(width))
		if i < 0 {
			i = 0
		}
		if i > width-1 {
			i = width - 1
		}
		return i
	}
	rise, set, now := pos(s.Events.Sunrise), pos(s.Events.Sunset), pos(s.J2k)

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == now:
			b.WriteString(bigClockStyle.Render("│"))
		case s.Polar == mars.PolarDay || (s.Polar == mars.PolarNone && i >= rise && i < set):
			b.WriteString(dayStyle.Render("█"))
		default:
			b.WriteString(nightStyle.Render("░"))
		}
	}
	return "[" + b.String() + "]"
}

func field(label, value string) string {
	return "  " + labelStyle.Render(label+" ") + rowStyle.Render(value) + " "
}

// localTime returns the LTST of j at the snapshot's observer.
func localTime(s mars.Snapshot, j mars.J2kOffset) string {
	return mars.FormatHours(mars.LocalTrueSolarTime(j, s.Observer.LonWestDeg()))[:5]
}

func siteTitle(obs mars.Observer) string {
	coords := fmt.Sprintf("%.2f°E %.2f°N", obs.LonEastDeg, obs.LatNorthDeg)
	if obs.Name == "" {
		return coords
	}
	return obs.Name + " · " + coords
}
