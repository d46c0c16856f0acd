package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-marstime/internal/mars"
)

// siteRow is one rendered line of the sites table.
type siteRow struct {
	obs  mars.Observer
	snap mars.Snapshot
}

// SitesModel lists every configured site at the current instant.
type SitesModel struct {
	width  int
	height int
	cursor int
	active int
	rows   []siteRow
}

// NewSitesModel creates a new sites view.
func NewSitesModel() SitesModel {
	return SitesModel{}
}

// SetSize updates the viewport size.
func (m SitesModel) SetSize(width, height int) SitesModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData snapshots every site with an engine pinned to one instant.
func (m SitesModel) UpdateData(e *mars.Engine, sites []mars.Observer, active int, radius float64) SitesModel {
	rows := make([]siteRow, 0, len(sites))
	for _, obs := range sites {
		rows = append(rows, siteRow{obs: obs, snap: e.For(obs).Snapshot(radius)})
	}
	m.rows = rows
	m.active = active
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// Cursor returns the highlighted row.
func (m SitesModel) Cursor() int {
	return m.cursor
}

// Update handles navigation keys.
func (m SitesModel) Update(msg tea.Msg) (SitesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
		}
	}
	return m, nil
}

// View renders the sites table.
func (m SitesModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sites"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-16s %9s %8s %8s %8s %8s %7s",
		"Site", "Lon E", "Lat N", "LTST", "Sunrise", "Sunset", "Elev")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString("  No sites configured\n")
		return b.String()
	}

	maxRows := m.height - 4
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		r := m.rows[i]
		mark := " "
		if i == m.active {
			mark = "▸"
		}

		rise, set := "--:--", "--:--"
		switch r.snap.Polar {
		case mars.PolarDay:
			rise, set = "day", "day"
		case mars.PolarNight:
			rise, set = "night", "night"
		default:
			rise = localTime(r.snap, r.snap.Events.Sunrise)
			set = localTime(r.snap, r.snap.Events.Sunset)
		}

		line := fmt.Sprintf("%s %-16s %9.3f %8.3f %8s %8s %8s %6.1f°",
			mark,
			truncate(siteName(r.obs), 16),
			r.obs.LonEastDeg,
			r.obs.LatNorthDeg,
			mars.FormatHours(r.snap.LTST),
			rise,
			set,
			r.snap.SolarElevation,
		)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.rows) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d sites", start+1, end, len(m.rows)))
	}
	return b.String()
}

func siteName(obs mars.Observer) string {
	if obs.Name != "" {
		return obs.Name
	}
	return fmt.Sprintf("%.1fE %.1fN", obs.LonEastDeg, obs.LatNorthDeg)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
